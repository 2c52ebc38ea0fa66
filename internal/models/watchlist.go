package models

import (
	"time"
)

// WatchlistEntry is a stock a user follows
type WatchlistEntry struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_watchlist_user_instrument,priority:1" json:"user_id"`
	InstrumentID uint      `gorm:"not null;uniqueIndex:idx_watchlist_user_instrument,priority:2" json:"instrument_id"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Instrument *Instrument `gorm:"foreignKey:InstrumentID" json:"instrument,omitempty"`
}

// TableName specifies the table name for WatchlistEntry model
func (WatchlistEntry) TableName() string {
	return "watchlist_entries"
}
