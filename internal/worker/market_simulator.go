package worker

import (
	"context"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stocktrade-simulator/internal/config"
	"github.com/stocktrade-simulator/internal/market"
	"github.com/stocktrade-simulator/internal/metrics"
	"github.com/stocktrade-simulator/internal/models"
	"golang.org/x/sync/errgroup"
)

// InstrumentStore is the part of the instrument repository the simulator writes through
type InstrumentStore interface {
	ListAll(ctx context.Context) ([]models.Instrument, error)
	ApplyTick(ctx context.Context, id uint, price decimal.Decimal, at time.Time, historySize int) (*models.Instrument, error)
}

// TickResult summarizes one simulator pass
type TickResult struct {
	Updated int
	Failed  int
}

// MarketSimulator moves every instrument's price on a fixed interval
// and notifies subscribers of each committed move
type MarketSimulator struct {
	store       InstrumentStore
	interval    time.Duration
	volatility  float64
	floor       decimal.Decimal
	historySize int
	workers     int

	rng *rand.Rand
	now func() time.Time

	mu          sync.RWMutex
	subscribers []market.PriceSubscriber

	stopChan chan struct{}
	stopOnce sync.Once
}

// NewMarketSimulator creates a new price simulator
func NewMarketSimulator(store InstrumentStore, cfg config.SimulatorConfig) *MarketSimulator {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	if cfg.Volatility <= 0 {
		cfg.Volatility = 0.005
	}
	if cfg.MinPrice <= 0 {
		cfg.MinPrice = 0.1
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = models.DefaultHistorySize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 8
	}
	return &MarketSimulator{
		store:       store,
		interval:    cfg.Interval,
		volatility:  cfg.Volatility,
		floor:       decimal.NewFromFloat(cfg.MinPrice).Round(2),
		historySize: cfg.HistorySize,
		workers:     cfg.Workers,
		rng:         rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:         time.Now,
		stopChan:    make(chan struct{}),
	}
}

// Subscribe registers a receiver for committed price moves
func (s *MarketSimulator) Subscribe(sub market.PriceSubscriber) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, sub)
	s.mu.Unlock()
}

// Start runs the tick loop until ctx is cancelled or Stop is called
func (s *MarketSimulator) Start(ctx context.Context) {
	log.Printf("[MarketSimulator] started with interval: %v", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			res, err := s.Tick(ctx)
			if err != nil {
				log.Printf("[MarketSimulator] tick failed: %v", err)
				continue
			}
			if res.Failed > 0 {
				log.Printf("[MarketSimulator] tick updated %d instruments, %d failed", res.Updated, res.Failed)
			}
		case <-ctx.Done():
			log.Println("[MarketSimulator] stopped")
			return
		case <-s.stopChan:
			log.Println("[MarketSimulator] stopped")
			return
		}
	}
}

// Stop stops the tick loop
func (s *MarketSimulator) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

type move struct {
	inst  models.Instrument
	price decimal.Decimal
}

// Tick performs one pass over the catalog.
// Each instrument gets exactly one writer; a failed instrument does not stop the others.
func (s *MarketSimulator) Tick(ctx context.Context) (TickResult, error) {
	start := time.Now()
	defer func() {
		metrics.SimulatorTickDuration.Observe(time.Since(start).Seconds())
	}()

	insts, err := s.store.ListAll(ctx)
	if err != nil {
		return TickResult{}, err
	}

	// Draws stay on this goroutine; rand.Rand is not safe for concurrent use.
	moves := make([]move, len(insts))
	for i, inst := range insts {
		moves[i] = move{
			inst:  inst,
			price: models.NextPrice(inst.Price, s.rng.Float64(), s.volatility, s.floor),
		}
	}

	at := s.now().UTC()
	var (
		mu  sync.Mutex
		res TickResult
	)
	g := new(errgroup.Group)
	g.SetLimit(s.workers)
	for _, m := range moves {
		g.Go(func() error {
			updated, err := s.store.ApplyTick(ctx, m.inst.ID, m.price, at, s.historySize)
			if err != nil {
				mu.Lock()
				res.Failed++
				mu.Unlock()
				metrics.SimulatorFailures.Inc()
				log.Printf("[MarketSimulator] failed to update %s (id=%d): %v", m.inst.Symbol, m.inst.ID, err)
				return nil
			}
			mu.Lock()
			res.Updated++
			mu.Unlock()
			s.notify(market.PriceUpdate{
				InstrumentID:  updated.ID,
				Symbol:        updated.Symbol,
				Price:         updated.Price,
				PreviousClose: updated.PreviousClose,
				ChangePercent: updated.ChangePercent,
				Timestamp:     at.UnixMilli(),
			})
			return nil
		})
	}
	_ = g.Wait()

	metrics.SimulatorTicks.Inc()
	return res, nil
}

func (s *MarketSimulator) notify(update market.PriceUpdate) {
	s.mu.RLock()
	subs := s.subscribers
	s.mu.RUnlock()
	for _, sub := range subs {
		sub.OnPriceUpdate(update)
	}
}
