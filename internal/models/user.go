package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User represents a registered trader with a virtual cash balance
type User struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"size:100;not null" json:"name"`
	Email        string          `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Mobile       string          `gorm:"size:20" json:"mobile"`
	PasswordHash string          `gorm:"size:255;not null" json:"-"`
	Balance      decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0" json:"balance"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// UserProfile is the public view of a user
type UserProfile struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Mobile    string          `json:"mobile"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// Profile returns the public view of u
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Mobile:    u.Mobile,
		Balance:   u.Balance.Round(2),
		CreatedAt: u.CreatedAt,
	}
}
