// Package portfolio derives holdings from the trade ledger.
//
// Positions are never stored. They are replayed from ledger entries with a
// running weighted-average cost basis:
//
//	BUY  q @ total:  qty += q; cost += total
//	SELL q @ total:  avg = cost/qty; realized += total - avg*q; cost -= avg*q; qty -= q
//
// When the quantity returns to zero the cost basis resets to zero.
package portfolio

import (
	"log"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/stocktrade-simulator/internal/models"
)

// Position is the derived state of one instrument for one user
type Position struct {
	InstrumentID   uint            `json:"instrument_id"`
	NetQuantity    int64           `json:"net_quantity"`
	AvgBuyPrice    decimal.Decimal `json:"avg_buy_price"`
	InvestedAmount decimal.Decimal `json:"invested_amount"`
	CurrentPrice   decimal.Decimal `json:"current_price"`
	CurrentValue   decimal.Decimal `json:"current_value"`
	RealizedPnL    decimal.Decimal `json:"realized_pnl"`
	UnrealizedPnL  decimal.Decimal `json:"unrealized_pnl"`
}

// Fold replays entries of a single instrument and values the result at price.
// Entries are processed in (CreatedAt, ID) order regardless of input order.
func Fold(entries []models.LedgerEntry, price decimal.Decimal) Position {
	sorted := make([]models.LedgerEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})

	var pos Position
	var qty int64
	cost := decimal.Zero
	realized := decimal.Zero

	for _, e := range sorted {
		if pos.InstrumentID == 0 {
			pos.InstrumentID = e.InstrumentID
		}
		q := decimal.NewFromInt(e.Quantity)
		switch e.Side {
		case models.TradeSideBuy:
			qty += e.Quantity
			cost = cost.Add(e.TotalAmount)
		case models.TradeSideSell:
			if e.Quantity > qty {
				log.Printf("[Portfolio] sell exceeds holdings: entry=%d user=%d instrument=%d held=%d sold=%d",
					e.ID, e.UserID, e.InstrumentID, qty, e.Quantity)
			}
			if qty <= 0 {
				continue
			}
			avg := cost.Div(decimal.NewFromInt(qty))
			basis := avg.Mul(q)
			realized = realized.Add(e.TotalAmount.Sub(basis))
			cost = cost.Sub(basis)
			qty -= e.Quantity
		}
		if qty <= 0 {
			qty = 0
			cost = decimal.Zero
		}
		if cost.IsNegative() {
			cost = decimal.Zero
		}
	}

	pos.NetQuantity = qty
	pos.InvestedAmount = cost
	pos.RealizedPnL = realized
	pos.CurrentPrice = price
	if qty > 0 {
		pos.AvgBuyPrice = cost.Div(decimal.NewFromInt(qty))
	}
	held := decimal.NewFromInt(qty)
	pos.CurrentValue = price.Mul(held)
	pos.UnrealizedPnL = pos.CurrentValue.Sub(pos.AvgBuyPrice.Mul(held))
	return pos
}

// NetQuantity returns only the number of shares held after entries
func NetQuantity(entries []models.LedgerEntry) int64 {
	var qty int64
	for _, e := range entries {
		switch e.Side {
		case models.TradeSideBuy:
			qty += e.Quantity
		case models.TradeSideSell:
			qty -= e.Quantity
		}
	}
	if qty < 0 {
		return 0
	}
	return qty
}

// Rounded returns a copy of p with money fields rounded to 2 dp
func (p Position) Rounded() Position {
	p.AvgBuyPrice = p.AvgBuyPrice.Round(2)
	p.InvestedAmount = p.InvestedAmount.Round(2)
	p.CurrentPrice = p.CurrentPrice.Round(2)
	p.CurrentValue = p.CurrentValue.Round(2)
	p.RealizedPnL = p.RealizedPnL.Round(2)
	p.UnrealizedPnL = p.UnrealizedPnL.Round(2)
	return p
}

// GroupByInstrument splits a user's ledger into per-instrument slices,
// preserving input order inside each group
func GroupByInstrument(entries []models.LedgerEntry) map[uint][]models.LedgerEntry {
	groups := make(map[uint][]models.LedgerEntry)
	for _, e := range entries {
		groups[e.InstrumentID] = append(groups[e.InstrumentID], e)
	}
	return groups
}
