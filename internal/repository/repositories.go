package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// Repositories bundles every repository bound to the same *gorm.DB,
// either the pool or an open transaction.
type Repositories struct {
	db          *gorm.DB
	Users       *UserRepository
	Instruments *InstrumentRepository
	Ledger      *LedgerRepository
	Watchlist   *WatchlistRepository
}

// New creates the repository bundle for db
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		db:          db,
		Users:       NewUserRepository(db),
		Instruments: NewInstrumentRepository(db),
		Ledger:      NewLedgerRepository(db),
		Watchlist:   NewWatchlistRepository(db),
	}
}

// DB returns the underlying connection
func (r *Repositories) DB() *gorm.DB {
	return r.db
}

// Transaction runs fn inside a database transaction.
// fn receives repositories bound to the transaction; returning an error rolls it back.
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern builds a case-insensitive LIKE pattern matching s literally.
// Queries using it must declare ESCAPE '\'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
