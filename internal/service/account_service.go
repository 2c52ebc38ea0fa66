package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/stocktrade-simulator/internal/models"
	"github.com/stocktrade-simulator/internal/repository"
	"github.com/stocktrade-simulator/pkg/apperror"
	"golang.org/x/sync/errgroup"
)

// AccountService serves the signed-in user's profile and dashboard
type AccountService struct {
	userRepo   *repository.UserRepository
	ledgerRepo *repository.LedgerRepository
	portfolio  *PortfolioService
	watchlist  *WatchlistService
}

// NewAccountService creates a new AccountService
func NewAccountService(
	userRepo *repository.UserRepository,
	ledgerRepo *repository.LedgerRepository,
	portfolio *PortfolioService,
	watchlist *WatchlistService,
) *AccountService {
	return &AccountService{
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
		portfolio:  portfolio,
		watchlist:  watchlist,
	}
}

// DashboardSummary is the headline view of an account
type DashboardSummary struct {
	Balance           decimal.Decimal `json:"balance"`
	NetInvestedAmount decimal.Decimal `json:"net_invested_amount"`
	HoldingsCount     int             `json:"holdings_count"`
	WatchlistCount    int64           `json:"watchlist_count"`
}

// GetProfile returns the user's profile and balance
func (s *AccountService) GetProfile(ctx context.Context, userID uint) (*models.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, apperror.Internal("", err)
	}
	profile := user.Profile()
	return &profile, nil
}

// GetDashboardSummary gathers balance, net invested cash, and counts.
// Net invested is everything spent on buys minus everything received from sells.
func (s *AccountService) GetDashboardSummary(ctx context.Context, userID uint) (*DashboardSummary, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	var (
		bought, sold decimal.Decimal
		holdings     int
		watching     int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		bought, err = s.ledgerRepo.SumByUserAndSide(gctx, userID, models.TradeSideBuy)
		return err
	})
	g.Go(func() (err error) {
		sold, err = s.ledgerRepo.SumByUserAndSide(gctx, userID, models.TradeSideSell)
		return err
	})
	g.Go(func() (err error) {
		holdings, err = s.portfolio.HoldingsCount(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		watching, err = s.watchlist.Count(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperror.Internal("", err)
	}

	return &DashboardSummary{
		Balance:           profile.Balance,
		NetInvestedAmount: bought.Sub(sold).Round(2),
		HoldingsCount:     holdings,
		WatchlistCount:    watching,
	}, nil
}
