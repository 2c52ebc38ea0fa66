package service

import (
	"context"
	"errors"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/stocktrade-simulator/internal/models"
	"github.com/stocktrade-simulator/internal/portfolio"
	"github.com/stocktrade-simulator/internal/repository"
	"github.com/stocktrade-simulator/pkg/apperror"
)

var hundred = decimal.NewFromInt(100)

// PortfolioService values holdings replayed from the ledger at live prices
type PortfolioService struct {
	ledgerRepo     *repository.LedgerRepository
	instrumentRepo *repository.InstrumentRepository
}

// NewPortfolioService creates a new PortfolioService
func NewPortfolioService(ledgerRepo *repository.LedgerRepository, instrumentRepo *repository.InstrumentRepository) *PortfolioService {
	return &PortfolioService{
		ledgerRepo:     ledgerRepo,
		instrumentRepo: instrumentRepo,
	}
}

// Holding is an open position joined with its instrument
type Holding struct {
	portfolio.Position
	Symbol               string          `json:"symbol"`
	CompanyName          string          `json:"company_name"`
	Sector               string          `json:"sector"`
	LogoURL              string          `json:"logo_url"`
	ChangePercent        decimal.Decimal `json:"change_percent"`
	UnrealizedPnLPercent decimal.Decimal `json:"unrealized_pnl_percent"`
}

// PortfolioSummary aggregates every open holding
type PortfolioSummary struct {
	TotalHoldings      int             `json:"total_holdings"`
	TotalInvested      decimal.Decimal `json:"total_invested"`
	TotalCurrentValue  decimal.Decimal `json:"total_current_value"`
	TotalUnrealizedPnL decimal.Decimal `json:"total_unrealized_pnl"`
	TotalRealizedPnL   decimal.Decimal `json:"total_realized_pnl"`
	TotalPnL           decimal.Decimal `json:"total_pnl"`
	TotalPnLPercent    decimal.Decimal `json:"total_pnl_percent"`
}

// Portfolio is the full holdings view of a user
type Portfolio struct {
	Holdings []Holding       `json:"holdings"`
	Summary  PortfolioSummary `json:"summary"`
}

// ComputePosition replays one instrument's ledger for a user
func (s *PortfolioService) ComputePosition(ctx context.Context, userID, instrumentID uint) (*Holding, error) {
	inst, err := s.instrumentRepo.GetByID(ctx, instrumentID)
	if err != nil {
		if errors.Is(err, repository.ErrInstrumentNotFound) {
			return nil, apperror.NotFound("stock not found")
		}
		return nil, apperror.Internal("", err)
	}

	entries, err := s.ledgerRepo.ListByUserAndInstrument(ctx, userID, instrumentID)
	if err != nil {
		return nil, apperror.Internal("", err)
	}

	pos := portfolio.Fold(entries, inst.Price)
	pos.InstrumentID = inst.ID
	holding := newHolding(pos, inst)
	return &holding, nil
}

// ComputePortfolio replays the user's whole ledger. Only positions with
// shares still held are returned and summarised.
func (s *PortfolioService) ComputePortfolio(ctx context.Context, userID uint) (*Portfolio, error) {
	entries, err := s.ledgerRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("", err)
	}

	groups := portfolio.GroupByInstrument(entries)
	ids := make([]uint, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}

	insts, err := s.instrumentRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.Internal("", err)
	}

	result := &Portfolio{Holdings: []Holding{}}
	invested := decimal.Zero
	current := decimal.Zero
	unrealized := decimal.Zero
	realized := decimal.Zero

	for id, group := range groups {
		inst, ok := insts[id]
		if !ok {
			continue
		}
		pos := portfolio.Fold(group, inst.Price)
		if pos.NetQuantity <= 0 {
			continue
		}

		invested = invested.Add(pos.InvestedAmount)
		current = current.Add(pos.CurrentValue)
		unrealized = unrealized.Add(pos.UnrealizedPnL)
		realized = realized.Add(pos.RealizedPnL)

		result.Holdings = append(result.Holdings, newHolding(pos, inst))
	}

	sort.Slice(result.Holdings, func(i, j int) bool {
		return result.Holdings[i].Symbol < result.Holdings[j].Symbol
	})

	total := unrealized.Add(realized)
	result.Summary = PortfolioSummary{
		TotalHoldings:      len(result.Holdings),
		TotalInvested:      invested.Round(2),
		TotalCurrentValue:  current.Round(2),
		TotalUnrealizedPnL: unrealized.Round(2),
		TotalRealizedPnL:   realized.Round(2),
		TotalPnL:           total.Round(2),
		TotalPnLPercent:    percentOf(total, invested),
	}
	return result, nil
}

// HoldingsCount returns how many instruments the user currently holds
func (s *PortfolioService) HoldingsCount(ctx context.Context, userID uint) (int, error) {
	entries, err := s.ledgerRepo.ListByUser(ctx, userID)
	if err != nil {
		return 0, apperror.Internal("", err)
	}
	count := 0
	for _, group := range portfolio.GroupByInstrument(entries) {
		if portfolio.NetQuantity(group) > 0 {
			count++
		}
	}
	return count, nil
}

func newHolding(pos portfolio.Position, inst *models.Instrument) Holding {
	return Holding{
		Position:             pos.Rounded(),
		Symbol:               inst.Symbol,
		CompanyName:          inst.CompanyName,
		Sector:               inst.Sector,
		LogoURL:              inst.LogoURL,
		ChangePercent:        inst.ChangePercent,
		UnrealizedPnLPercent: percentOf(pos.UnrealizedPnL, pos.InvestedAmount),
	}
}

func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}
