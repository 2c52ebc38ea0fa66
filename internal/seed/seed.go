// Package seed fills the instrument catalog with demo companies and
// randomly generated market data.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/shopspring/decimal"
	"github.com/stocktrade-simulator/internal/models"
	"github.com/stocktrade-simulator/internal/repository"
)

const (
	minPrice        = 50
	maxPrice        = 3500
	maxMarketCap    = 5_000_000_000_000
	logoURLTemplate = "https://cdn.jsdelivr.net/npm/simple-icons@latest/icons/%s.svg"
)

// Seeder inserts catalog instruments
type Seeder struct {
	repo      *repository.InstrumentRepository
	companies []Company
	rng       *rand.Rand
}

// New creates a Seeder over the default company list
func New(repo *repository.InstrumentRepository) *Seeder {
	return &Seeder{
		repo:      repo,
		companies: Companies,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Generate builds an instrument for c with random price, volume, P/E and market cap
func (s *Seeder) Generate(c Company) models.Instrument {
	price := decimal.NewFromFloat(s.rng.Float64()*(maxPrice-minPrice) + minPrice).Round(2)
	if price.LessThan(decimal.NewFromInt(minPrice)) {
		price = decimal.NewFromInt(minPrice)
	}
	sharesOutstanding := s.rng.Int64N(1_000_000_000) + 100_000_000

	marketCap := price.Mul(decimal.NewFromInt(sharesOutstanding)).IntPart()
	if marketCap > maxMarketCap {
		marketCap = maxMarketCap
	}

	return models.Instrument{
		Symbol:      c.Symbol,
		CompanyName: c.CompanyName,
		Sector:      c.Sector,
		LogoURL:     fmt.Sprintf(logoURLTemplate, c.Icon),
		Price:       price,
		Volume:      s.rng.Int64N(5_000_000) + 100_000,
		PERatio:     decimal.NewFromFloat(s.rng.Float64()*30 + 10).Round(2),
		MarketCap:   marketCap,
	}
}

// Seed inserts every company whose symbol is not yet listed and returns how many were added.
// Existing instruments keep their prices and history.
func (s *Seeder) Seed(ctx context.Context) (int, error) {
	existing, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list instruments: %w", err)
	}
	listed := make(map[string]bool, len(existing))
	for _, inst := range existing {
		listed[inst.Symbol] = true
	}

	var insts []models.Instrument
	for _, c := range s.companies {
		if listed[c.Symbol] {
			continue
		}
		insts = append(insts, s.Generate(c))
	}
	if len(insts) == 0 {
		return 0, nil
	}
	if err := s.repo.CreateBatch(ctx, insts); err != nil {
		return 0, fmt.Errorf("insert instruments: %w", err)
	}
	log.Printf("[Seed] %d stocks seeded", len(insts))
	return len(insts), nil
}

// SeedIfEmpty seeds only when the catalog has no instruments
func (s *Seeder) SeedIfEmpty(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count instruments: %w", err)
	}
	if count > 0 {
		return 0, nil
	}
	return s.Seed(ctx)
}
