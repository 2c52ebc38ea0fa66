package seed

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stocktrade-simulator/internal/repository"
	"github.com/stocktrade-simulator/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRanges(t *testing.T) {
	s := New(nil)
	for i := 0; i < 200; i++ {
		inst := s.Generate(Company{Symbol: "AAPL", CompanyName: "Apple Inc.", Sector: "Technology", Icon: "apple"})

		assert.True(t, inst.Price.GreaterThanOrEqual(decimal.NewFromInt(minPrice)), inst.Price.String())
		assert.True(t, inst.Price.LessThanOrEqual(decimal.NewFromInt(maxPrice)), inst.Price.String())
		assert.True(t, inst.Price.Equal(inst.Price.Round(2)))
		assert.GreaterOrEqual(t, inst.Volume, int64(100_000))
		assert.LessOrEqual(t, inst.MarketCap, int64(maxMarketCap))
		assert.True(t, inst.PERatio.GreaterThanOrEqual(decimal.NewFromInt(10)))
		assert.True(t, inst.PERatio.LessThanOrEqual(decimal.NewFromInt(40)))
	}
}

func TestSeedIfEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewInstrumentRepository(db)
	ctx := context.Background()

	n, err := New(repo).SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(Companies), n)

	n, err = New(repo).SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	insts, err := repo.ListAll(ctx)
	require.NoError(t, err)
	logos := make(map[string]string, len(insts))
	for _, inst := range insts {
		logos[inst.Symbol] = inst.LogoURL
	}
	assert.Equal(t, "https://cdn.jsdelivr.net/npm/simple-icons@latest/icons/apple.svg", logos["AAPL"])
}

func TestSeedAddsOnlyMissingSymbols(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewInstrumentRepository(db)
	existing := testutil.CreateInstrument(t, db, "AAPL", "Apple Inc.", "Technology", "123.45")

	n, err := New(repo).Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(Companies)-1, n)

	got, err := repo.GetByID(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("123.45")))
}
