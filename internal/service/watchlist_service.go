package service

import (
	"context"
	"errors"

	"github.com/stocktrade-simulator/internal/models"
	"github.com/stocktrade-simulator/internal/repository"
	"github.com/stocktrade-simulator/pkg/apperror"
)

const (
	defaultWatchlistPageSize = 50
	maxWatchlistPageSize     = 100
)

var (
	ErrAlreadyWatching       = apperror.Conflict("stock already in watchlist")
	ErrWatchlistItemNotFound = apperror.NotFound("watchlist item not found")
)

// WatchlistService manages the stocks a user follows
type WatchlistService struct {
	watchlistRepo  *repository.WatchlistRepository
	instrumentRepo *repository.InstrumentRepository
}

// NewWatchlistService creates a new WatchlistService
func NewWatchlistService(watchlistRepo *repository.WatchlistRepository, instrumentRepo *repository.InstrumentRepository) *WatchlistService {
	return &WatchlistService{
		watchlistRepo:  watchlistRepo,
		instrumentRepo: instrumentRepo,
	}
}

// AddWatchlistRequest represents the add-to-watchlist request
type AddWatchlistRequest struct {
	InstrumentID uint `json:"instrument_id" binding:"required"`
}

// Add puts an instrument on the user's watchlist
func (s *WatchlistService) Add(ctx context.Context, userID, instrumentID uint) (*models.WatchlistEntry, error) {
	inst, err := s.instrumentRepo.GetByID(ctx, instrumentID)
	if err != nil {
		if errors.Is(err, repository.ErrInstrumentNotFound) {
			return nil, apperror.NotFound("stock not found")
		}
		return nil, apperror.Internal("", err)
	}

	exists, err := s.watchlistRepo.Exists(ctx, userID, instrumentID)
	if err != nil {
		return nil, apperror.Internal("", err)
	}
	if exists {
		return nil, ErrAlreadyWatching
	}

	entry := &models.WatchlistEntry{UserID: userID, InstrumentID: instrumentID}
	if err := s.watchlistRepo.Create(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrWatchlistDuplicate) {
			return nil, ErrAlreadyWatching
		}
		return nil, apperror.Internal("", err)
	}
	entry.Instrument = inst
	return entry, nil
}

// List returns a page of the user's watchlist, newest first
func (s *WatchlistService) List(ctx context.Context, userID uint, page, pageSize int) ([]models.WatchlistEntry, int64, int, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultWatchlistPageSize
	}
	if pageSize > maxWatchlistPageSize {
		pageSize = maxWatchlistPageSize
	}

	entries, total, err := s.watchlistRepo.GetByUserIDPaginated(ctx, userID, page, pageSize)
	if err != nil {
		return nil, 0, 0, 0, apperror.Internal("", err)
	}
	return entries, total, page, pageSize, nil
}

// Remove deletes a watchlist entry the user owns
func (s *WatchlistService) Remove(ctx context.Context, userID, entryID uint) error {
	if err := s.watchlistRepo.Delete(ctx, entryID, userID); err != nil {
		if errors.Is(err, repository.ErrWatchlistEntryNotFound) {
			return ErrWatchlistItemNotFound
		}
		return apperror.Internal("", err)
	}
	return nil
}

// Count returns the size of the user's watchlist
func (s *WatchlistService) Count(ctx context.Context, userID uint) (int64, error) {
	n, err := s.watchlistRepo.CountByUserID(ctx, userID)
	if err != nil {
		return 0, apperror.Internal("", err)
	}
	return n, nil
}
