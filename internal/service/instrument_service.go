package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stocktrade-simulator/internal/cache"
	"github.com/stocktrade-simulator/internal/market"
	"github.com/stocktrade-simulator/internal/models"
	"github.com/stocktrade-simulator/internal/repository"
	"github.com/stocktrade-simulator/pkg/apperror"
)

const (
	defaultCatalogPageSize = 10
	maxCatalogPageSize     = 100
)

// InstrumentService serves the stock catalog and live quotes
type InstrumentService struct {
	instrumentRepo *repository.InstrumentRepository
	priceCache     cache.PriceCache
}

// NewInstrumentService creates a new InstrumentService. priceCache may be nil.
func NewInstrumentService(instrumentRepo *repository.InstrumentRepository, priceCache cache.PriceCache) *InstrumentService {
	return &InstrumentService{
		instrumentRepo: instrumentRepo,
		priceCache:     priceCache,
	}
}

// ListStocksRequest represents catalog query parameters
type ListStocksRequest struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search" binding:"omitempty,max=100"`
	Sector string `form:"sector" binding:"omitempty,max=50"`
	SortBy string `form:"sortBy"`
	Order  string `form:"order" binding:"omitempty,oneof=asc desc"`
}

// List returns a page of the catalog and the total number of matches
func (s *InstrumentService) List(ctx context.Context, req *ListStocksRequest) ([]models.Instrument, int64, error) {
	if req.SortBy != "" && !repository.ValidInstrumentSort(req.SortBy) {
		return nil, 0, apperror.InvalidArgument("invalid sort field %q", req.SortBy)
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = defaultCatalogPageSize
	}
	if req.Limit > maxCatalogPageSize {
		req.Limit = maxCatalogPageSize
	}

	insts, total, err := s.instrumentRepo.List(ctx, repository.InstrumentFilter{
		Search:   strings.TrimSpace(req.Search),
		Sector:   strings.TrimSpace(req.Sector),
		SortBy:   req.SortBy,
		Desc:     req.Order == "desc",
		Page:     req.Page,
		PageSize: req.Limit,
	})
	if err != nil {
		return nil, 0, apperror.Internal("", err)
	}
	return insts, total, nil
}

// ListSectors returns the distinct catalog sectors
func (s *InstrumentService) ListSectors(ctx context.Context) ([]string, error) {
	sectors, err := s.instrumentRepo.ListSectors(ctx)
	if err != nil {
		return nil, apperror.Internal("", err)
	}
	return sectors, nil
}

// GetByID returns an instrument with its price history
func (s *InstrumentService) GetByID(ctx context.Context, id uint) (*models.Instrument, error) {
	inst, err := s.instrumentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrInstrumentNotFound) {
			return nil, apperror.NotFound("stock not found")
		}
		return nil, apperror.Internal("", err)
	}
	return inst, nil
}

// GetPrice returns the current price of an instrument
func (s *InstrumentService) GetPrice(ctx context.Context, id uint) (decimal.Decimal, error) {
	inst, err := s.GetByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	return inst.Price, nil
}

// GetSnapshot returns the current quote of an instrument from the database
func (s *InstrumentService) GetSnapshot(ctx context.Context, id uint) (*models.Quote, error) {
	inst, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	quote := inst.Quote()
	return &quote, nil
}

// GetQuote returns the latest quote, preferring the price cache.
// Cached quotes carry no history.
func (s *InstrumentService) GetQuote(ctx context.Context, id uint) (*models.Quote, error) {
	if s.priceCache != nil {
		update, err := s.priceCache.Load(ctx, id)
		if err == nil {
			return &models.Quote{
				InstrumentID:  update.InstrumentID,
				Symbol:        update.Symbol,
				Price:         update.Price,
				PreviousClose: update.PreviousClose,
				ChangePercent: update.ChangePercent,
				UpdatedAt:     time.UnixMilli(update.Timestamp).UTC(),
			}, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			log.Printf("[InstrumentService] price cache read failed for %d: %v", id, err)
		}
	}
	return s.GetSnapshot(ctx, id)
}

// OnPriceUpdate implements market.PriceSubscriber
func (s *InstrumentService) OnPriceUpdate(update market.PriceUpdate) {
	if s.priceCache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.priceCache.Store(ctx, update); err != nil {
		log.Printf("[InstrumentService] Failed to cache price for %s: %v", update.Symbol, err)
	}
}
