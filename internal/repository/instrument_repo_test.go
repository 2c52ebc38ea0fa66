package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stocktrade-simulator/internal/repository"
	"github.com/stocktrade-simulator/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentListFiltersAndSorts(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	testutil.CreateInstrument(t, db, "AAPL", "Apple Inc.", "Technology", "180")
	testutil.CreateInstrument(t, db, "JPM", "JPMorgan Chase & Co.", "Financial Services", "150")
	testutil.CreateInstrument(t, db, "MSFT", "Microsoft Corporation", "Technology", "400")
	repo := repository.NewInstrumentRepository(db)

	insts, total, err := repo.List(ctx, repository.InstrumentFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, insts, 3)
	assert.Equal(t, "AAPL", insts[0].Symbol)

	insts, total, err = repo.List(ctx, repository.InstrumentFilter{Sector: "Technology", SortBy: "price", Desc: true, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, insts, 2)
	assert.Equal(t, "MSFT", insts[0].Symbol)

	insts, total, err = repo.List(ctx, repository.InstrumentFilter{Search: "morgan", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, insts, 1)
	assert.Equal(t, "JPM", insts[0].Symbol)

	for _, wildcard := range []string{"_", "%", `\`} {
		insts, total, err = repo.List(ctx, repository.InstrumentFilter{Search: wildcard, Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Zero(t, total, "search %q", wildcard)
		assert.Empty(t, insts, "search %q", wildcard)
	}

	insts, total, err = repo.List(ctx, repository.InstrumentFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, insts, 1)
	assert.Equal(t, "MSFT", insts[0].Symbol)

	_, _, err = repo.List(ctx, repository.InstrumentFilter{SortBy: "password_hash", Page: 1, PageSize: 10})
	assert.ErrorIs(t, err, repository.ErrInvalidSortField)
}

func TestInstrumentListSectors(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.CreateInstrument(t, db, "AAPL", "Apple Inc.", "Technology", "180")
	testutil.CreateInstrument(t, db, "JPM", "JPMorgan Chase & Co.", "Financial Services", "150")
	testutil.CreateInstrument(t, db, "MSFT", "Microsoft Corporation", "Technology", "400")

	sectors, err := repository.NewInstrumentRepository(db).ListSectors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Financial Services", "Technology"}, sectors)
}

func TestInstrumentApplyTickPersists(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	inst := testutil.CreateInstrument(t, db, "AAPL", "Apple Inc.", "Technology", "100")
	repo := repository.NewInstrumentRepository(db)

	at := time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC)
	updated, err := repo.ApplyTick(ctx, inst.ID, decimal.NewFromInt(102), at, 50)
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(102)))

	reloaded, err := repo.GetByID(ctx, inst.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Price.Equal(decimal.NewFromInt(102)))
	assert.True(t, reloaded.PreviousClose.Equal(decimal.NewFromInt(100)))
	assert.True(t, reloaded.ChangePercent.Equal(decimal.NewFromInt(2)))
	require.Len(t, reloaded.History, 1)
	assert.True(t, reloaded.History[0].Timestamp.Equal(at))
	assert.Equal(t, "Apple Inc.", reloaded.CompanyName)

	_, err = repo.ApplyTick(ctx, 9999, decimal.NewFromInt(1), at, 50)
	assert.ErrorIs(t, err, repository.ErrInstrumentNotFound)
}

func TestInstrumentGetByIDs(t *testing.T) {
	db := testutil.NewTestDB(t)
	a := testutil.CreateInstrument(t, db, "AAPL", "Apple Inc.", "Technology", "180")
	m := testutil.CreateInstrument(t, db, "MSFT", "Microsoft Corporation", "Technology", "400")

	got, err := repository.NewInstrumentRepository(db).GetByIDs(context.Background(), []uint{a.ID, m.ID, 999})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "MSFT", got[m.ID].Symbol)
}
