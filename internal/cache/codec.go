package cache

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stocktrade-simulator/internal/market"
)

// FormatUpdate encodes an update as "id:symbol:price:changePercent:timestamp"
func FormatUpdate(u market.PriceUpdate) string {
	return fmt.Sprintf("%d:%s:%s:%s:%d", u.InstrumentID, u.Symbol, u.Price.StringFixed(2), u.ChangePercent.StringFixed(2), u.Timestamp)
}

// ParseUpdate decodes a payload produced by FormatUpdate
func ParseUpdate(payload string) (*market.PriceUpdate, error) {
	parts := strings.Split(payload, ":")
	if len(parts) != 5 {
		return nil, fmt.Errorf("malformed price update %q", payload)
	}
	id, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("instrument id: %w", err)
	}
	price, err := decimal.NewFromString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}
	change, err := decimal.NewFromString(parts[3])
	if err != nil {
		return nil, fmt.Errorf("change percent: %w", err)
	}
	ts, err := strconv.ParseInt(parts[4], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("timestamp: %w", err)
	}
	return &market.PriceUpdate{
		InstrumentID:  uint(id),
		Symbol:        parts[1],
		Price:         price,
		ChangePercent: change,
		Timestamp:     ts,
	}, nil
}
