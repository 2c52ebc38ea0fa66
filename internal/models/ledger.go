package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TradeSide represents the direction of a ledger entry
type TradeSide string

const (
	TradeSideBuy  TradeSide = "BUY"
	TradeSideSell TradeSide = "SELL"
)

// Valid reports whether s is a known side
func (s TradeSide) Valid() bool {
	return s == TradeSideBuy || s == TradeSideSell
}

// ErrLedgerImmutable is returned when anything tries to modify a ledger entry
var ErrLedgerImmutable = errors.New("ledger entries are immutable")

// LedgerEntry records one executed trade. Entries are append-only.
type LedgerEntry struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Reference    string          `gorm:"uniqueIndex;size:26;not null" json:"reference"`
	UserID       uint            `gorm:"not null;index:idx_ledger_user_created,priority:1;index:idx_ledger_user_instrument,priority:1" json:"user_id"`
	InstrumentID uint            `gorm:"not null;index:idx_ledger_user_instrument,priority:2" json:"instrument_id"`
	Side         TradeSide       `gorm:"size:4;not null" json:"type"`
	Quantity     int64           `gorm:"not null" json:"quantity"`
	Price        decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"price"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"total_amount"`
	Notes        string          `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt    time.Time       `gorm:"index:idx_ledger_user_created,priority:2" json:"created_at"`

	// Relations
	Instrument *Instrument `gorm:"foreignKey:InstrumentID" json:"instrument,omitempty"`
}

// TableName specifies the table name for LedgerEntry model
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}

// BeforeUpdate rejects every update
func (e *LedgerEntry) BeforeUpdate(tx *gorm.DB) error {
	return ErrLedgerImmutable
}

// BeforeDelete rejects every delete
func (e *LedgerEntry) BeforeDelete(tx *gorm.DB) error {
	return ErrLedgerImmutable
}
