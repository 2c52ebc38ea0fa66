package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stocktrade-simulator/internal/models"
	"github.com/stocktrade-simulator/pkg/id"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultLedgerPageSize = 20
	MaxLedgerPageSize     = 100
)

// LedgerFilter narrows a ledger query. Zero values mean "no constraint".
// To is an inclusive upper bound.
type LedgerFilter struct {
	Side         models.TradeSide
	InstrumentID uint
	Search       string
	From         *time.Time
	To           *time.Time
	Page         int
	PageSize     int
}

// Normalize clamps paging to the supported range
func (f *LedgerFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultLedgerPageSize
	}
	if f.PageSize > MaxLedgerPageSize {
		f.PageSize = MaxLedgerPageSize
	}
}

// LedgerRepository is the append-only store of executed trades.
// There is no update or delete.
type LedgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Append records a new entry and fills in its ID, Reference and CreatedAt
func (r *LedgerRepository) Append(ctx context.Context, entry *models.LedgerEntry) error {
	if entry.ID != 0 {
		return fmt.Errorf("append ledger entry: %w", models.ErrLedgerImmutable)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if entry.Reference == "" {
		ref, err := id.NewReference(entry.CreatedAt)
		if err != nil {
			return fmt.Errorf("generate reference: %w", err)
		}
		entry.Reference = ref
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(entry).Error
}

func (r *LedgerRepository) filtered(ctx context.Context, userID uint, f LedgerFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.LedgerEntry{}).
		Where("ledger_entries.user_id = ?", userID)

	if f.Side != "" {
		query = query.Where("ledger_entries.side = ?", f.Side)
	}
	if f.InstrumentID != 0 {
		query = query.Where("ledger_entries.instrument_id = ?", f.InstrumentID)
	}
	if f.From != nil {
		query = query.Where("ledger_entries.created_at >= ?", f.From.UTC())
	}
	if f.To != nil {
		query = query.Where("ledger_entries.created_at <= ?", f.To.UTC())
	}
	if f.Search != "" {
		pattern := containsPattern(f.Search)
		query = query.
			Joins("JOIN instruments ON instruments.id = ledger_entries.instrument_id").
			Where(`LOWER(instruments.symbol) LIKE ? ESCAPE '\' OR LOWER(instruments.company_name) LIKE ? ESCAPE '\'`, pattern, pattern)
	}
	return query
}

// QueryByUser returns a page of a user's entries, newest first, and the total
// number of entries matching f
func (r *LedgerRepository) QueryByUser(ctx context.Context, userID uint, f LedgerFilter) ([]models.LedgerEntry, int64, error) {
	f.Normalize()

	var total int64
	if err := r.filtered(ctx, userID, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.LedgerEntry
	offset := (f.Page - 1) * f.PageSize
	result := r.filtered(ctx, userID, f).
		Select("ledger_entries.*").
		Preload("Instrument").
		Order("ledger_entries.created_at DESC").
		Order("ledger_entries.id DESC").
		Offset(offset).
		Limit(f.PageSize).
		Find(&entries)

	return entries, total, result.Error
}

// ExportByUser returns every entry matching f, newest first, ignoring paging
func (r *LedgerRepository) ExportByUser(ctx context.Context, userID uint, f LedgerFilter) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	result := r.filtered(ctx, userID, f).
		Select("ledger_entries.*").
		Preload("Instrument").
		Order("ledger_entries.created_at DESC").
		Order("ledger_entries.id DESC").
		Find(&entries)
	return entries, result.Error
}

// ListByUser returns all of a user's entries in execution order
func (r *LedgerRepository) ListByUser(ctx context.Context, userID uint) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&entries)
	return entries, result.Error
}

// ListByUserAndInstrument returns a user's entries for one instrument in execution order
func (r *LedgerRepository) ListByUserAndInstrument(ctx context.Context, userID, instrumentID uint) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND instrument_id = ?", userID, instrumentID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&entries)
	return entries, result.Error
}

// SumByUserAndSide totals the amounts a user traded on one side
func (r *LedgerRepository) SumByUserAndSide(ctx context.Context, userID uint, side models.TradeSide) (decimal.Decimal, error) {
	var total struct {
		Sum decimal.NullDecimal
	}
	err := r.db.WithContext(ctx).Model(&models.LedgerEntry{}).
		Select("SUM(total_amount) as sum").
		Where("user_id = ? AND side = ?", userID, side).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Sum.Valid {
		return decimal.Zero, nil
	}
	return total.Sum.Decimal, nil
}

// CountByUser counts a user's entries
func (r *LedgerRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LedgerEntry{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
