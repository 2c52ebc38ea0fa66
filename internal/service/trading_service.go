package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stocktrade-simulator/internal/config"
	"github.com/stocktrade-simulator/internal/metrics"
	"github.com/stocktrade-simulator/internal/models"
	"github.com/stocktrade-simulator/internal/portfolio"
	"github.com/stocktrade-simulator/internal/repository"
	"github.com/stocktrade-simulator/pkg/apperror"
)

const maxNotesLength = 500

// TradingService executes market orders against a user's cash balance and
// the trade ledger. Each trade commits the balance change and the ledger
// entry together or not at all.
type TradingService struct {
	repos   *repository.Repositories
	locks   *userLocks
	timeout time.Duration
}

// NewTradingService creates a new TradingService
func NewTradingService(repos *repository.Repositories, cfg config.TradingConfig) *TradingService {
	return &TradingService{
		repos:   repos,
		locks:   newUserLocks(),
		timeout: cfg.Timeout,
	}
}

// TradeRequest represents a buy or sell order filled at the current price
type TradeRequest struct {
	UserID       uint   `json:"-"`
	InstrumentID uint   `json:"instrument_id" binding:"required"`
	Quantity     int64  `json:"quantity" binding:"required,gt=0"`
	Notes        string `json:"notes" binding:"max=500"`
}

// TradeResult is an executed trade and the balance it left behind
type TradeResult struct {
	Transaction *models.LedgerEntry `json:"transaction"`
	Balance     decimal.Decimal     `json:"balance"`
}

// Buy purchases shares at the instrument's current price
func (s *TradingService) Buy(ctx context.Context, req *TradeRequest) (*TradeResult, error) {
	return s.execute(ctx, models.TradeSideBuy, req)
}

// Sell disposes of shares at the instrument's current price
func (s *TradingService) Sell(ctx context.Context, req *TradeRequest) (*TradeResult, error) {
	return s.execute(ctx, models.TradeSideSell, req)
}

func (s *TradingService) execute(ctx context.Context, side models.TradeSide, req *TradeRequest) (*TradeResult, error) {
	start := time.Now()
	defer func() {
		metrics.TradeLatency.WithLabelValues(string(side)).Observe(time.Since(start).Seconds())
	}()

	result, err := s.run(ctx, side, req)
	if err != nil {
		metrics.TradeRejections.WithLabelValues(string(side), apperror.KindOf(err).String()).Inc()
		if apperror.KindOf(err) == apperror.KindInternal {
			log.Printf("[TradingService] %s failed: user=%d instrument=%d qty=%d: %v",
				side, req.UserID, req.InstrumentID, req.Quantity, err)
		}
		return nil, err
	}

	metrics.TradesTotal.WithLabelValues(string(side)).Inc()
	log.Printf("[TradingService] %s executed: ref=%s user=%d instrument=%d qty=%d price=%s total=%s",
		side, result.Transaction.Reference, req.UserID, req.InstrumentID, req.Quantity,
		result.Transaction.Price.StringFixed(2), result.Transaction.TotalAmount.StringFixed(2))
	return result, nil
}

func (s *TradingService) run(ctx context.Context, side models.TradeSide, req *TradeRequest) (*TradeResult, error) {
	if err := validateTrade(req); err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	unlock, err := s.locks.Lock(ctx, req.UserID)
	if err != nil {
		return nil, apperror.Internal("trade cancelled", err)
	}
	defer unlock()

	var result *TradeResult
	err = s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		user, err := tx.Users.GetByIDForUpdate(ctx, req.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return apperror.NotFound("user not found")
			}
			return err
		}

		inst, err := tx.Instruments.GetByID(ctx, req.InstrumentID)
		if err != nil {
			if errors.Is(err, repository.ErrInstrumentNotFound) {
				return apperror.NotFound("stock not found")
			}
			return err
		}

		// The price is read once so the check and the ledger agree.
		price := inst.Price
		total := price.Mul(decimal.NewFromInt(req.Quantity))

		var balance decimal.Decimal
		switch side {
		case models.TradeSideBuy:
			if user.Balance.LessThan(total) {
				return apperror.InsufficientFunds(total.StringFixed(2), user.Balance.StringFixed(2))
			}
			balance = user.Balance.Sub(total)
		case models.TradeSideSell:
			entries, err := tx.Ledger.ListByUserAndInstrument(ctx, req.UserID, req.InstrumentID)
			if err != nil {
				return err
			}
			owned := portfolio.Fold(entries, price).NetQuantity
			if owned < req.Quantity {
				return apperror.InsufficientHoldings(owned, req.Quantity)
			}
			balance = user.Balance.Add(total)
		}

		if err := tx.Users.UpdateBalance(ctx, user.ID, balance); err != nil {
			return err
		}

		entry := &models.LedgerEntry{
			UserID:       user.ID,
			InstrumentID: inst.ID,
			Side:         side,
			Quantity:     req.Quantity,
			Price:        price,
			TotalAmount:  total,
			Notes:        strings.TrimSpace(req.Notes),
		}
		if err := tx.Ledger.Append(ctx, entry); err != nil {
			return err
		}
		entry.Instrument = inst

		result = &TradeResult{Transaction: entry, Balance: balance}
		return nil
	})
	if err != nil {
		return nil, classifyTradeError(err)
	}
	return result, nil
}

func validateTrade(req *TradeRequest) error {
	if req == nil {
		return apperror.InvalidArgument("trade request is required")
	}
	if req.UserID == 0 {
		return apperror.InvalidArgument("user is required")
	}
	if req.InstrumentID == 0 {
		return apperror.InvalidArgument("stock id is required")
	}
	if req.Quantity <= 0 {
		return apperror.InvalidArgument("quantity must be a positive integer")
	}
	if len(req.Notes) > maxNotesLength {
		return apperror.InvalidArgument("notes must be at most %d characters", maxNotesLength)
	}
	return nil
}

func classifyTradeError(err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperror.Internal("trade cancelled", err)
	}
	return apperror.Internal("", err)
}
