package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stocktrade-simulator/internal/config"
	"github.com/stocktrade-simulator/internal/models"
	"github.com/stocktrade-simulator/internal/repository"
	"github.com/stocktrade-simulator/internal/testutil"
	"github.com/stocktrade-simulator/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type tradingFixture struct {
	db    *gorm.DB
	repos *repository.Repositories
	svc   *TradingService
	user  *models.User
	inst  *models.Instrument
}

func newTradingFixture(t *testing.T, balance, price string) *tradingFixture {
	t.Helper()
	return newTradingFixtureOn(t, testutil.NewTestDB(t), balance, price)
}

// newPooledTradingFixture runs on a database with several connections, so
// trades only serialize if the engine serializes them.
func newPooledTradingFixture(t *testing.T, balance, price string) *tradingFixture {
	t.Helper()
	return newTradingFixtureOn(t, testutil.NewFileTestDB(t, 4), balance, price)
}

func newTradingFixtureOn(t *testing.T, db *gorm.DB, balance, price string) *tradingFixture {
	t.Helper()
	repos := repository.New(db)
	return &tradingFixture{
		db:    db,
		repos: repos,
		svc:   NewTradingService(repos, config.TradingConfig{Timeout: 5 * time.Second}),
		user:  testutil.CreateUser(t, db, "trader@example.com", balance),
		inst:  testutil.CreateInstrument(t, db, "AAPL", "Apple Inc.", "Technology", price),
	}
}

// holdFirstRead parks the first query against table until a second one
// starts or wait elapses. Two unserialized trades are forced to overlap,
// while serialized trades only lose wait.
func holdFirstRead(t *testing.T, db *gorm.DB, table string, wait time.Duration) {
	t.Helper()
	var readers atomic.Int32
	second := make(chan struct{})
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:hold_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table != table {
			return
		}
		switch readers.Add(1) {
		case 1:
			select {
			case <-second:
			case <-time.After(wait):
			}
		case 2:
			close(second)
		}
	}))
}

func (f *tradingFixture) balance(t *testing.T) decimal.Decimal {
	t.Helper()
	user, err := f.repos.Users.GetByID(context.Background(), f.user.ID)
	require.NoError(t, err)
	return user.Balance
}

func (f *tradingFixture) ledgerCount(t *testing.T) int64 {
	t.Helper()
	n, err := f.repos.Ledger.CountByUser(context.Background(), f.user.ID)
	require.NoError(t, err)
	return n
}

func (f *tradingFixture) req(qty int64) *TradeRequest {
	return &TradeRequest{UserID: f.user.ID, InstrumentID: f.inst.ID, Quantity: qty}
}

func TestBuyDebitsBalanceAndRecordsEntry(t *testing.T) {
	f := newTradingFixture(t, "1000", "150.25")

	res, err := f.svc.Buy(context.Background(), &TradeRequest{
		UserID: f.user.ID, InstrumentID: f.inst.ID, Quantity: 4, Notes: "  first buy ",
	})
	require.NoError(t, err)

	assert.True(t, res.Balance.Equal(decimal.RequireFromString("399")))
	assert.True(t, f.balance(t).Equal(decimal.RequireFromString("399")))
	assert.Equal(t, models.TradeSideBuy, res.Transaction.Side)
	assert.True(t, res.Transaction.Price.Equal(decimal.RequireFromString("150.25")))
	assert.True(t, res.Transaction.TotalAmount.Equal(decimal.RequireFromString("601")))
	assert.Equal(t, "first buy", res.Transaction.Notes)
	assert.Len(t, res.Transaction.Reference, 26)
	assert.Equal(t, int64(1), f.ledgerCount(t))
}

func TestBuyInsufficientFunds(t *testing.T) {
	f := newTradingFixture(t, "1000", "150")

	_, err := f.svc.Buy(context.Background(), f.req(10))
	require.ErrorIs(t, err, apperror.ErrInsufficientFunds)
	assert.Contains(t, err.Error(), "required 1500.00")
	assert.Contains(t, err.Error(), "available 1000.00")

	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(1000)))
	assert.Zero(t, f.ledgerCount(t))
}

func TestBuyExactBalanceLeavesZero(t *testing.T) {
	f := newTradingFixture(t, "1500", "150")

	res, err := f.svc.Buy(context.Background(), f.req(10))
	require.NoError(t, err)
	assert.True(t, res.Balance.IsZero())
}

func TestSellCreditsBalance(t *testing.T) {
	f := newTradingFixture(t, "1000", "100")
	ctx := context.Background()

	_, err := f.svc.Buy(ctx, f.req(5))
	require.NoError(t, err)

	_, err = f.repos.Instruments.ApplyTick(ctx, f.inst.ID, decimal.NewFromInt(120), time.Now().UTC(), 50)
	require.NoError(t, err)

	res, err := f.svc.Sell(ctx, f.req(3))
	require.NoError(t, err)
	assert.True(t, res.Transaction.Price.Equal(decimal.NewFromInt(120)))
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(860)))
}

func TestSellInsufficientHoldings(t *testing.T) {
	f := newTradingFixture(t, "10000", "100")
	ctx := context.Background()

	_, err := f.svc.Buy(ctx, f.req(20))
	require.NoError(t, err)

	_, err = f.svc.Sell(ctx, f.req(30))
	require.ErrorIs(t, err, apperror.ErrInsufficientHoldings)
	assert.Equal(t, "insufficient holdings: you own 20 shares, trying to sell 30", err.(*apperror.Error).PublicMessage())
	assert.Equal(t, int64(1), f.ledgerCount(t))
}

func TestSellWithoutPosition(t *testing.T) {
	f := newTradingFixture(t, "10000", "100")

	_, err := f.svc.Sell(context.Background(), f.req(1))
	assert.ErrorIs(t, err, apperror.ErrInsufficientHoldings)
}

func TestTradeValidation(t *testing.T) {
	f := newTradingFixture(t, "10000", "100")
	ctx := context.Background()

	_, err := f.svc.Buy(ctx, f.req(0))
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = f.svc.Buy(ctx, f.req(-3))
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = f.svc.Buy(ctx, &TradeRequest{UserID: f.user.ID, InstrumentID: 9999, Quantity: 1})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(10000)))
}

func TestConcurrentSellsNeverOversell(t *testing.T) {
	f := newPooledTradingFixture(t, "10000", "100")
	ctx := context.Background()

	_, err := f.svc.Buy(ctx, f.req(20))
	require.NoError(t, err)

	// Both sells would see 20 shares if their holdings reads overlapped.
	holdFirstRead(t, f.db, "ledger_entries", 300*time.Millisecond)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Sell(ctx, f.req(15))
		}(i)
	}
	wg.Wait()

	var ok, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, apperror.ErrInsufficientHoldings):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, rejected)

	entries, err := f.repos.Ledger.ListByUserAndInstrument(ctx, f.user.ID, f.inst.ID)
	require.NoError(t, err)
	var sold int64
	for _, e := range entries {
		if e.Side == models.TradeSideSell {
			sold += e.Quantity
		}
	}
	assert.Equal(t, int64(15), sold)
}

func TestConcurrentBuysKeepBalanceSolvent(t *testing.T) {
	f := newPooledTradingFixture(t, "1000", "100")
	ctx := context.Background()
	holdFirstRead(t, f.db, "users", 300*time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 15; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.svc.Buy(ctx, f.req(1))
		}()
	}
	wg.Wait()

	assert.True(t, f.balance(t).IsZero())
	assert.Equal(t, int64(10), f.ledgerCount(t))
}

func TestFailedAppendRollsBackBalance(t *testing.T) {
	f := newTradingFixture(t, "1000", "100")

	require.NoError(t, f.db.Callback().Create().Before("gorm:create").Register("test:fail_ledger", func(tx *gorm.DB) {
		if tx.Statement.Table == "ledger_entries" {
			_ = tx.AddError(errors.New("disk full"))
		}
	}))

	_, err := f.svc.Buy(context.Background(), f.req(2))
	require.ErrorIs(t, err, apperror.ErrInternal)
	assert.Equal(t, "internal server error", err.(*apperror.Error).PublicMessage())

	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(1000)))
	assert.Zero(t, f.ledgerCount(t))
}

func TestCancelledContextLeavesNoState(t *testing.T) {
	f := newTradingFixture(t, "1000", "100")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.Buy(ctx, f.req(2))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(1000)))
	assert.Zero(t, f.ledgerCount(t))
}
