package repository

import (
	"github.com/stocktrade-simulator/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the service owns
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Instrument{},
		&models.LedgerEntry{},
		&models.WatchlistEntry{},
	)
}
