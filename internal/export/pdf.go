package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"github.com/stocktrade-simulator/internal/models"
)

// Statement describes the header of a PDF export
type Statement struct {
	Title       string
	AccountName string
	GeneratedAt time.Time
}

var pdfColumns = []struct {
	title string
	width float64
	align string
}{
	{"Date", 40, "L"},
	{"Reference", 58, "L"},
	{"Stock", 22, "L"},
	{"Type", 16, "C"},
	{"Qty", 18, "R"},
	{"Price", 28, "R"},
	{"Total", 32, "R"},
	{"Notes", 63, "L"},
}

const maxPDFNotes = 40

// WritePDF renders entries as a landscape A4 table followed by buy/sell totals
func WritePDF(w io.Writer, st Statement, entries []models.LedgerEntry) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(st.Title, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(st.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if st.AccountName != "" {
		pdf.CellFormat(0, 6, tr("Account: "+st.AccountName), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, "Generated: "+st.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, col := range pdfColumns {
			pdf.CellFormat(col.width, 7, col.title, "1", 0, col.align, true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}
	header()

	bought := decimal.Zero
	sold := decimal.Zero
	for _, e := range entries {
		if pdf.GetY() > 185 {
			pdf.AddPage()
			header()
		}
		r := RowFromEntry(e)
		notes := r.Notes
		if len(notes) > maxPDFNotes {
			notes = notes[:maxPDFNotes-3] + "..."
		}
		cells := []string{
			r.Date.Format("2006-01-02 15:04:05"),
			r.Reference,
			r.Symbol,
			string(r.Side),
			fmt.Sprintf("%d", r.Quantity),
			r.Price.StringFixed(2),
			r.TotalAmount.StringFixed(2),
			tr(notes),
		}
		for i, col := range pdfColumns {
			pdf.CellFormat(col.width, 6, cells[i], "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)

		if r.Side == models.TradeSideBuy {
			bought = bought.Add(r.TotalAmount)
		} else {
			sold = sold.Add(r.TotalAmount)
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Transactions: %d", len(entries)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Total bought: "+bought.StringFixed(2), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Total sold: "+sold.StringFixed(2), "", 1, "L", false, 0, "")

	return pdf.Output(w)
}
