package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultHistorySize is the number of price points kept per instrument
const DefaultHistorySize = 50

// PricePoint is one entry of an instrument's rolling price history
type PricePoint struct {
	Price     decimal.Decimal `json:"price"`
	Timestamp time.Time       `json:"timestamp"`
}

// Instrument represents a tradable stock
type Instrument struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Symbol        string          `gorm:"uniqueIndex;size:10;not null" json:"symbol"`
	CompanyName   string          `gorm:"size:200;not null" json:"company_name"`
	Sector        string          `gorm:"size:100;index" json:"sector"`
	LogoURL       string          `gorm:"size:500" json:"logo_url"`
	Price         decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"price"`
	PreviousClose decimal.Decimal `gorm:"type:decimal(20,8);default:0" json:"previous_close"`
	ChangePercent decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"change_percent"`
	Volume        int64           `gorm:"default:0" json:"volume"`
	PERatio       decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"pe_ratio"`
	MarketCap     int64           `gorm:"default:0" json:"market_cap"`
	History       []PricePoint    `gorm:"serializer:json" json:"history"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Instrument model
func (Instrument) TableName() string {
	return "instruments"
}

// Quote is a point-in-time price snapshot of an instrument
type Quote struct {
	InstrumentID  uint            `json:"instrument_id"`
	Symbol        string          `json:"symbol"`
	Price         decimal.Decimal `json:"price"`
	PreviousClose decimal.Decimal `json:"previous_close"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	History       []PricePoint    `json:"history,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Quote returns the current snapshot of i
func (i *Instrument) Quote() Quote {
	history := make([]PricePoint, len(i.History))
	copy(history, i.History)
	return Quote{
		InstrumentID:  i.ID,
		Symbol:        i.Symbol,
		Price:         i.Price,
		PreviousClose: i.PreviousClose,
		ChangePercent: i.ChangePercent,
		History:       history,
		UpdatedAt:     i.UpdatedAt,
	}
}

// ApplyTick moves the instrument to price at time at.
// The first tick records the pre-tick price as PreviousClose; later ticks keep it.
// History stays chronological and holds at most capacity points.
func (i *Instrument) ApplyTick(price decimal.Decimal, at time.Time, capacity int) {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	if i.PreviousClose.IsZero() {
		i.PreviousClose = i.Price
	}

	if n := len(i.History); n > 0 && at.Before(i.History[n-1].Timestamp) {
		at = i.History[n-1].Timestamp
	}
	i.History = append(i.History, PricePoint{Price: price, Timestamp: at})
	if len(i.History) > capacity {
		trimmed := make([]PricePoint, capacity)
		copy(trimmed, i.History[len(i.History)-capacity:])
		i.History = trimmed
	}

	i.Price = price
	i.ChangePercent = ChangePercent(price, i.PreviousClose)
}

// ChangePercent returns the percentage move from prev to price, rounded to 2 dp
func ChangePercent(price, prev decimal.Decimal) decimal.Decimal {
	if prev.IsZero() {
		return decimal.Zero
	}
	return price.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)).Round(2)
}

// NextPrice computes the next simulated price.
// u is a uniform draw in [0,1) mapped onto a move of [-volatility, +volatility).
// The result is rounded to 2 dp and never falls below floor.
func NextPrice(price decimal.Decimal, u, volatility float64, floor decimal.Decimal) decimal.Decimal {
	move := u*2*volatility - volatility
	next := price.Mul(decimal.NewFromFloat(1 + move)).Round(2)
	if next.LessThan(floor) {
		return floor
	}
	return next
}
