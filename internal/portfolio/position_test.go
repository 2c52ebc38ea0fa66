package portfolio

import (
	"bytes"
	"log"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stocktrade-simulator/internal/models"
	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

func entry(id uint, side models.TradeSide, qty int64, price int64, offset time.Duration) models.LedgerEntry {
	p := decimal.NewFromInt(price)
	return models.LedgerEntry{
		ID:           id,
		InstrumentID: 7,
		Side:         side,
		Quantity:     qty,
		Price:        p,
		TotalAmount:  p.Mul(decimal.NewFromInt(qty)),
		CreatedAt:    t0.Add(offset),
	}
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestFoldWeightedAverage(t *testing.T) {
	entries := []models.LedgerEntry{
		entry(1, models.TradeSideBuy, 10, 100, 0),
	}
	pos := Fold(entries, dec(100))
	assert.Equal(t, int64(10), pos.NetQuantity)
	assert.True(t, pos.AvgBuyPrice.Equal(dec(100)))
	assert.True(t, pos.InvestedAmount.Equal(dec(1000)))

	entries = append(entries, entry(2, models.TradeSideBuy, 10, 200, time.Minute))
	pos = Fold(entries, dec(200))
	assert.Equal(t, int64(20), pos.NetQuantity)
	assert.True(t, pos.AvgBuyPrice.Equal(dec(150)))
	assert.True(t, pos.InvestedAmount.Equal(dec(3000)))

	entries = append(entries, entry(3, models.TradeSideSell, 5, 300, 2*time.Minute))
	pos = Fold(entries, dec(300))
	assert.Equal(t, int64(15), pos.NetQuantity)
	assert.True(t, pos.RealizedPnL.Equal(dec(750)), pos.RealizedPnL.String())
	assert.True(t, pos.InvestedAmount.Equal(dec(2250)), pos.InvestedAmount.String())
	assert.True(t, pos.AvgBuyPrice.Equal(dec(150)))
	assert.True(t, pos.CurrentValue.Equal(dec(4500)))
	assert.True(t, pos.UnrealizedPnL.Equal(dec(2250)))
	assert.Equal(t, uint(7), pos.InstrumentID)
}

func TestFoldZeroQuantityClamp(t *testing.T) {
	entries := []models.LedgerEntry{
		entry(1, models.TradeSideBuy, 10, 50, 0),
		entry(2, models.TradeSideSell, 10, 999, time.Minute),
	}
	pos := Fold(entries, dec(999))

	assert.Equal(t, int64(0), pos.NetQuantity)
	assert.True(t, pos.InvestedAmount.IsZero())
	assert.True(t, pos.AvgBuyPrice.IsZero())
	assert.True(t, pos.UnrealizedPnL.IsZero())
	assert.True(t, pos.RealizedPnL.Equal(dec(9490)))
}

func TestFoldClampsRepeatingDecimalResidue(t *testing.T) {
	entries := []models.LedgerEntry{
		entry(1, models.TradeSideBuy, 1, 10, 0),
		entry(2, models.TradeSideBuy, 1, 10, time.Second),
		entry(3, models.TradeSideBuy, 1, 11, 2*time.Second),
		entry(4, models.TradeSideSell, 1, 12, 3*time.Second),
		entry(5, models.TradeSideSell, 1, 12, 4*time.Second),
		entry(6, models.TradeSideSell, 1, 12, 5*time.Second),
	}
	pos := Fold(entries, dec(12))

	assert.Equal(t, int64(0), pos.NetQuantity)
	assert.True(t, pos.InvestedAmount.IsZero())
	assert.True(t, pos.RealizedPnL.Round(2).Equal(dec(5)))
}

func TestFoldReportsSellWithoutHoldings(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	entries := []models.LedgerEntry{
		entry(1, models.TradeSideSell, 3, 100, 0),
		entry(2, models.TradeSideBuy, 5, 100, time.Minute),
	}
	pos := Fold(entries, dec(100))
	assert.Equal(t, int64(5), pos.NetQuantity)
	assert.Contains(t, buf.String(), "sell exceeds holdings: entry=1")
	assert.Contains(t, buf.String(), "held=0 sold=3")

	buf.Reset()
	Fold([]models.LedgerEntry{entry(1, models.TradeSideBuy, 5, 100, 0), entry(2, models.TradeSideSell, 5, 120, time.Minute)}, dec(100))
	assert.Empty(t, buf.String())
}

func TestFoldOrdersByTimeThenID(t *testing.T) {
	entries := []models.LedgerEntry{
		entry(3, models.TradeSideSell, 5, 300, time.Minute),
		entry(2, models.TradeSideBuy, 10, 200, 0),
		entry(1, models.TradeSideBuy, 10, 100, 0),
	}
	pos := Fold(entries, dec(300))

	assert.Equal(t, int64(15), pos.NetQuantity)
	assert.True(t, pos.RealizedPnL.Equal(dec(750)))
}

func TestFoldEmpty(t *testing.T) {
	pos := Fold(nil, dec(10))
	assert.Equal(t, int64(0), pos.NetQuantity)
	assert.True(t, pos.CurrentValue.IsZero())
}

func TestNetQuantity(t *testing.T) {
	entries := []models.LedgerEntry{
		entry(1, models.TradeSideBuy, 20, 10, 0),
		entry(2, models.TradeSideSell, 15, 10, time.Minute),
	}
	assert.Equal(t, int64(5), NetQuantity(entries))
}

func TestGroupByInstrument(t *testing.T) {
	a := entry(1, models.TradeSideBuy, 1, 10, 0)
	b := entry(2, models.TradeSideBuy, 1, 10, 0)
	b.InstrumentID = 8

	groups := GroupByInstrument([]models.LedgerEntry{a, b})
	assert.Len(t, groups, 2)
	assert.Len(t, groups[8], 1)
}
