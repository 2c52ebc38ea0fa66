package repository

import (
	"context"
	"errors"

	"github.com/stocktrade-simulator/internal/models"
	"gorm.io/gorm"
)

var (
	ErrWatchlistEntryNotFound = errors.New("watchlist entry not found")
	ErrWatchlistDuplicate     = errors.New("instrument already in watchlist")
)

// WatchlistRepository handles watchlist data access
type WatchlistRepository struct {
	db *gorm.DB
}

// NewWatchlistRepository creates a new WatchlistRepository
func NewWatchlistRepository(db *gorm.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// Create adds an instrument to a user's watchlist
func (r *WatchlistRepository) Create(ctx context.Context, entry *models.WatchlistEntry) error {
	err := r.db.WithContext(ctx).Omit("Instrument").Create(entry).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrWatchlistDuplicate
	}
	return err
}

// Exists reports whether the user already watches the instrument
func (r *WatchlistRepository) Exists(ctx context.Context, userID, instrumentID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.WatchlistEntry{}).
		Where("user_id = ? AND instrument_id = ?", userID, instrumentID).
		Count(&count).Error
	return count > 0, err
}

// GetByIDAndUserID retrieves a watchlist entry owned by the user
func (r *WatchlistRepository) GetByIDAndUserID(ctx context.Context, id, userID uint) (*models.WatchlistEntry, error) {
	var entry models.WatchlistEntry
	result := r.db.WithContext(ctx).Preload("Instrument").
		Where("id = ? AND user_id = ?", id, userID).
		First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrWatchlistEntryNotFound
		}
		return nil, result.Error
	}
	return &entry, nil
}

// GetByUserIDPaginated retrieves a user's watchlist, newest first
func (r *WatchlistRepository) GetByUserIDPaginated(ctx context.Context, userID uint, page, pageSize int) ([]models.WatchlistEntry, int64, error) {
	var entries []models.WatchlistEntry
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.WatchlistEntry{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	result := r.db.WithContext(ctx).Preload("Instrument").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&entries)

	return entries, total, result.Error
}

// Delete removes an entry owned by the user
func (r *WatchlistRepository) Delete(ctx context.Context, id, userID uint) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.WatchlistEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWatchlistEntryNotFound
	}
	return nil
}

// CountByUserID counts a user's watchlist entries
func (r *WatchlistRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.WatchlistEntry{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
