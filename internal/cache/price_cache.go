// Package cache keeps the latest simulated quote per instrument outside the
// database. The database stays the source of truth; entries expire quickly.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stocktrade-simulator/internal/market"
)

// PriceUpdatesChannel is the Redis channel every tick is published on
const PriceUpdatesChannel = "price_updates"

// ErrMiss is returned when no fresh quote is cached
var ErrMiss = errors.New("price cache miss")

// PriceCache stores the latest price update per instrument
type PriceCache interface {
	Store(ctx context.Context, update market.PriceUpdate) error
	Load(ctx context.Context, instrumentID uint) (*market.PriceUpdate, error)
}

// RedisPriceCache keeps quotes in Redis hashes and publishes every update
type RedisPriceCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisPriceCache creates a cache whose entries live for ttl
func NewRedisPriceCache(rdb *redis.Client, ttl time.Duration) *RedisPriceCache {
	return &RedisPriceCache{rdb: rdb, ttl: ttl}
}

func priceKey(instrumentID uint) string {
	return fmt.Sprintf("price:stock:%d", instrumentID)
}

// Store writes the update and publishes it on PriceUpdatesChannel
func (c *RedisPriceCache) Store(ctx context.Context, update market.PriceUpdate) error {
	key := priceKey(update.InstrumentID)

	pipe := c.rdb.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"symbol":         update.Symbol,
		"price":          update.Price.String(),
		"previous_close": update.PreviousClose.String(),
		"change_percent": update.ChangePercent.String(),
		"timestamp":      update.Timestamp,
	})
	pipe.Expire(ctx, key, c.ttl)
	pipe.Publish(ctx, PriceUpdatesChannel, FormatUpdate(update))
	_, err := pipe.Exec(ctx)
	return err
}

// Load returns the cached update or ErrMiss
func (c *RedisPriceCache) Load(ctx context.Context, instrumentID uint) (*market.PriceUpdate, error) {
	fields, err := c.rdb.HGetAll(ctx, priceKey(instrumentID)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrMiss
	}
	return parseFields(instrumentID, fields)
}

// Subscribe listens for published updates until ctx is done
func (c *RedisPriceCache) Subscribe(ctx context.Context, sub market.PriceSubscriber) error {
	ps := c.rdb.Subscribe(ctx, PriceUpdatesChannel)
	defer ps.Close()

	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			update, err := ParseUpdate(msg.Payload)
			if err != nil {
				continue
			}
			sub.OnPriceUpdate(*update)
		}
	}
}

func parseFields(instrumentID uint, fields map[string]string) (*market.PriceUpdate, error) {
	price, err := decimal.NewFromString(fields["price"])
	if err != nil {
		return nil, fmt.Errorf("cached price: %w", err)
	}
	prev, _ := decimal.NewFromString(fields["previous_close"])
	change, _ := decimal.NewFromString(fields["change_percent"])
	ts, _ := strconv.ParseInt(fields["timestamp"], 10, 64)

	return &market.PriceUpdate{
		InstrumentID:  instrumentID,
		Symbol:        fields["symbol"],
		Price:         price,
		PreviousClose: prev,
		ChangePercent: change,
		Timestamp:     ts,
	}, nil
}

// MemoryPriceCache is an in-process PriceCache used when Redis is disabled
type MemoryPriceCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[uint]memoryEntry
}

type memoryEntry struct {
	update    market.PriceUpdate
	expiresAt time.Time
}

// NewMemoryPriceCache creates an in-process cache whose entries live for ttl
func NewMemoryPriceCache(ttl time.Duration) *MemoryPriceCache {
	return &MemoryPriceCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[uint]memoryEntry),
	}
}

// Store implements PriceCache
func (c *MemoryPriceCache) Store(_ context.Context, update market.PriceUpdate) error {
	c.mu.Lock()
	c.entries[update.InstrumentID] = memoryEntry{update: update, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

// Load implements PriceCache
func (c *MemoryPriceCache) Load(_ context.Context, instrumentID uint) (*market.PriceUpdate, error) {
	c.mu.RLock()
	entry, ok := c.entries[instrumentID]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expiresAt) {
		return nil, ErrMiss
	}
	update := entry.update
	return &update, nil
}
