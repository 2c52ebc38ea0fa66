// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stocktrade-simulator/internal/models"
	"github.com/stocktrade-simulator/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9_]+`)

// NewTestDB opens a migrated in-memory SQLite database private to t.
// It has a single connection, so transactions never overlap.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", unsafeName.ReplaceAllString(t.Name(), "_"))
	return openTestDB(t, dsn, 1)
}

// NewFileTestDB opens a migrated WAL-mode SQLite file under t.TempDir() with
// a pool of conns connections, so concurrent transactions really interleave.
func NewFileTestDB(t testing.TB, conns int) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_journal_mode=WAL&_busy_timeout=5000"
	return openTestDB(t, dsn, conns)
}

func openTestDB(t testing.TB, dsn string, conns int) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(conns)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := repository.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// CreateUser inserts a user holding balance
func CreateUser(t testing.TB, db *gorm.DB, email string, balance string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         "Test User",
		Email:        email,
		Mobile:       "9876543210",
		PasswordHash: "x",
		Balance:      decimal.RequireFromString(balance),
	}
	if err := repository.NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// CreateInstrument inserts an instrument trading at price
func CreateInstrument(t testing.TB, db *gorm.DB, symbol, company, sector, price string) *models.Instrument {
	t.Helper()

	inst := &models.Instrument{
		Symbol:      symbol,
		CompanyName: company,
		Sector:      sector,
		Price:       decimal.RequireFromString(price),
	}
	if err := repository.NewInstrumentRepository(db).Create(context.Background(), inst); err != nil {
		t.Fatalf("create instrument: %v", err)
	}
	return inst
}
