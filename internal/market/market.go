// Package market holds the price update contract shared by the simulator and
// its consumers.
package market

import (
	"github.com/shopspring/decimal"
)

// PriceUpdate represents one simulated price move of an instrument
type PriceUpdate struct {
	InstrumentID  uint            `json:"instrument_id"`
	Symbol        string          `json:"symbol"`
	Price         decimal.Decimal `json:"price"`
	PreviousClose decimal.Decimal `json:"previous_close"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	Timestamp     int64           `json:"timestamp"`
}

// PriceSubscriber is an interface for components that receive price updates.
// OnPriceUpdate is called from simulator workers and must not block for long.
type PriceSubscriber interface {
	OnPriceUpdate(update PriceUpdate)
}

// SubscriberFunc adapts a function to PriceSubscriber
type SubscriberFunc func(update PriceUpdate)

// OnPriceUpdate calls f(update)
func (f SubscriberFunc) OnPriceUpdate(update PriceUpdate) {
	f(update)
}
