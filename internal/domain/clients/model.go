package clients

import (
	"sheet2bill/internal/domain/users"
	"time"
)

type Client struct {
	ID     uint       `gorm:"primaryKey"`
	UserID uint       `gorm:"index;not null"`
	User   users.User `gorm:"constraint:OnDelete:CASCADE"`

	Name    string `gorm:"not null"`
	Company string
	Email   string `gorm:"not null"`
	Address string
	TaxID   string `gorm:"column:tax_id"`
	Notes   string

	CreatedAt time.Time
	UpdatedAt time.Time
}
