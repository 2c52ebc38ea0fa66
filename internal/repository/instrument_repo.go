package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stocktrade-simulator/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInstrumentNotFound = errors.New("instrument not found")
	ErrInvalidSortField   = errors.New("invalid sort field")
)

// instrumentSortColumns maps API sort fields onto columns
var instrumentSortColumns = map[string]string{
	"symbol":        "symbol",
	"companyName":   "company_name",
	"price":         "price",
	"changePercent": "change_percent",
	"marketCap":     "market_cap",
	"volume":        "volume",
	"sector":        "sector",
}

// ValidInstrumentSort reports whether field can be used to order the catalog
func ValidInstrumentSort(field string) bool {
	_, ok := instrumentSortColumns[field]
	return ok
}

// InstrumentFilter narrows a catalog listing
type InstrumentFilter struct {
	Search   string
	Sector   string
	SortBy   string
	Desc     bool
	Page     int
	PageSize int
}

// InstrumentRepository handles instrument data access
type InstrumentRepository struct {
	db *gorm.DB
}

// NewInstrumentRepository creates a new InstrumentRepository
func NewInstrumentRepository(db *gorm.DB) *InstrumentRepository {
	return &InstrumentRepository{db: db}
}

// Create creates a new instrument
func (r *InstrumentRepository) Create(ctx context.Context, inst *models.Instrument) error {
	return r.db.WithContext(ctx).Create(inst).Error
}

// CreateBatch inserts instruments in batches
func (r *InstrumentRepository) CreateBatch(ctx context.Context, insts []models.Instrument) error {
	if len(insts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(insts, 100).Error
}

// GetByID retrieves an instrument by ID
func (r *InstrumentRepository) GetByID(ctx context.Context, id uint) (*models.Instrument, error) {
	var inst models.Instrument
	result := r.db.WithContext(ctx).First(&inst, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrInstrumentNotFound
		}
		return nil, result.Error
	}
	return &inst, nil
}

// GetByIDs retrieves instruments keyed by ID. Unknown IDs are absent from the map.
func (r *InstrumentRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*models.Instrument, error) {
	out := make(map[uint]*models.Instrument, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var insts []models.Instrument
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&insts).Error; err != nil {
		return nil, err
	}
	for i := range insts {
		out[insts[i].ID] = &insts[i]
	}
	return out, nil
}

// ListAll retrieves every instrument ordered by ID
func (r *InstrumentRepository) ListAll(ctx context.Context) ([]models.Instrument, error) {
	var insts []models.Instrument
	result := r.db.WithContext(ctx).Order("id ASC").Find(&insts)
	return insts, result.Error
}

// List retrieves a filtered, sorted page of the catalog
func (r *InstrumentRepository) List(ctx context.Context, f InstrumentFilter) ([]models.Instrument, int64, error) {
	var insts []models.Instrument
	var total int64

	column := "symbol"
	if f.SortBy != "" {
		c, ok := instrumentSortColumns[f.SortBy]
		if !ok {
			return nil, 0, ErrInvalidSortField
		}
		column = c
	}

	query := r.db.WithContext(ctx).Model(&models.Instrument{})
	if f.Search != "" {
		pattern := containsPattern(f.Search)
		query = query.Where(`LOWER(symbol) LIKE ? ESCAPE '\' OR LOWER(company_name) LIKE ? ESCAPE '\'`, pattern, pattern)
	}
	if f.Sector != "" {
		query = query.Where("sector = ?", f.Sector)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (f.Page - 1) * f.PageSize
	result := query.
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: f.Desc}).
		Order("id ASC").
		Offset(offset).
		Limit(f.PageSize).
		Find(&insts)

	return insts, total, result.Error
}

// ListSectors returns the distinct sectors in alphabetical order
func (r *InstrumentRepository) ListSectors(ctx context.Context) ([]string, error) {
	var sectors []string
	err := r.db.WithContext(ctx).Model(&models.Instrument{}).
		Where("sector <> ''").
		Distinct().
		Order("sector ASC").
		Pluck("sector", &sectors).Error
	return sectors, err
}

// Count returns the number of instruments in the catalog
func (r *InstrumentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Instrument{}).Count(&count).Error
	return count, err
}

// ApplyTick moves an instrument to price under a row lock and returns the
// updated row. Catalog fields are never written by a tick.
func (r *InstrumentRepository) ApplyTick(ctx context.Context, id uint, price decimal.Decimal, at time.Time, historySize int) (*models.Instrument, error) {
	var inst models.Instrument
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&inst, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInstrumentNotFound
			}
			return err
		}

		inst.ApplyTick(price, at, historySize)

		return tx.Model(&inst).
			Select("price", "previous_close", "change_percent", "history", "updated_at").
			Updates(&inst).Error
	})
	if err != nil {
		return nil, err
	}
	return &inst, nil
}
