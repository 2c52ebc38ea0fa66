// Package export renders ledger entries as downloadable CSV and PDF statements.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stocktrade-simulator/internal/models"
)

// CSVHeader is the first line of every CSV export
var CSVHeader = []string{"Date", "Reference", "Stock", "Type", "Quantity", "Price", "TotalAmount", "Notes"}

// Row is one exported transaction
type Row struct {
	Date        time.Time
	Reference   string
	Symbol      string
	Side        models.TradeSide
	Quantity    int64
	Price       decimal.Decimal
	TotalAmount decimal.Decimal
	Notes       string
}

// RowFromEntry flattens a ledger entry. The entry's Instrument should be preloaded.
func RowFromEntry(e models.LedgerEntry) Row {
	symbol := ""
	if e.Instrument != nil {
		symbol = e.Instrument.Symbol
	}
	return Row{
		Date:        e.CreatedAt.UTC(),
		Reference:   e.Reference,
		Symbol:      symbol,
		Side:        e.Side,
		Quantity:    e.Quantity,
		Price:       e.Price,
		TotalAmount: e.TotalAmount,
		Notes:       e.Notes,
	}
}

// WriteCSV writes entries in the order given
func WriteCSV(w io.Writer, entries []models.LedgerEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, e := range entries {
		r := RowFromEntry(e)
		err := cw.Write([]string{
			r.Date.Format(time.RFC3339Nano),
			r.Reference,
			r.Symbol,
			string(r.Side),
			strconv.FormatInt(r.Quantity, 10),
			r.Price.StringFixed(2),
			r.TotalAmount.StringFixed(2),
			r.Notes,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseCSV reads a file produced by WriteCSV
func ParseCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(CSVHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, name := range CSVHeader {
		if header[i] != name {
			return nil, fmt.Errorf("unexpected column %d: %q", i, header[i])
		}
	}

	var rows []Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		date, err := time.Parse(time.RFC3339Nano, rec[0])
		if err != nil {
			return nil, fmt.Errorf("line %d date: %w", line, err)
		}
		qty, err := strconv.ParseInt(rec[4], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d quantity: %w", line, err)
		}
		price, err := decimal.NewFromString(rec[5])
		if err != nil {
			return nil, fmt.Errorf("line %d price: %w", line, err)
		}
		total, err := decimal.NewFromString(rec[6])
		if err != nil {
			return nil, fmt.Errorf("line %d total: %w", line, err)
		}
		side := models.TradeSide(rec[3])
		if !side.Valid() {
			return nil, fmt.Errorf("line %d type: %q", line, rec[3])
		}

		rows = append(rows, Row{
			Date:        date,
			Reference:   rec[1],
			Symbol:      rec[2],
			Side:        side,
			Quantity:    qty,
			Price:       price,
			TotalAmount: total,
			Notes:       rec[7],
		})
	}
	return rows, nil
}
