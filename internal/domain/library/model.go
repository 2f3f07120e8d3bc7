package library

import (
	"sheet2bill/internal/domain/users"
	"time"
)

// Item is a reusable line item a freelancer keeps in their library
// and drops into briefs.
type Item struct {
	ID     uint       `gorm:"primaryKey"`
	UserID uint       `gorm:"index;not null"`
	User   users.User `gorm:"constraint:OnDelete:CASCADE"`

	Description string  `gorm:"not null"`
	UnitPrice   float64 `gorm:"column:unit_price"`
	Unit        string  // "hour" | "day" | "fixed"
	Currency    string  `gorm:"type:varchar(3);default:'EUR'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
