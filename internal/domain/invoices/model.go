package invoices

import (
	"sheet2bill/internal/domain/briefs"
	"sheet2bill/internal/domain/clients"
	"sheet2bill/internal/domain/users"
	"time"
)

type Invoice struct {
	ID     uint       `gorm:"primaryKey"`
	UserID uint       `gorm:"not null;uniqueIndex:idx_invoices_user_number,priority:1"`
	User   users.User `gorm:"constraint:OnDelete:CASCADE"`

	BriefID *uint `gorm:"uniqueIndex:idx_invoices_brief_id"`
	Brief   *briefs.Brief

	ClientID uint `gorm:"index;not null"`
	Client   clients.Client

	// Per-user sequential number, e.g. "INV-2026-0007". The number is
	// unique per user, not globally: every user's first invoice of a year
	// is INV-YYYY-0001. Two concurrent conversions by the same user can
	// draw the same number; the composite index turns that into a
	// retryable conflict instead of a duplicate invoice.
	Number   string `gorm:"not null;uniqueIndex:idx_invoices_user_number,priority:2"`
	Currency string `gorm:"type:varchar(3);default:'EUR'"`
	Total    float64

	IssueDate time.Time `gorm:"column:issue_date"`
	DueDate   time.Time `gorm:"column:due_date"`
	PaidAt    *time.Time

	Lines []InvoiceLine `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type InvoiceLine struct {
	ID        uint `gorm:"primaryKey"`
	InvoiceID uint `gorm:"index;not null"`

	Description string  `gorm:"not null"`
	Quantity    float64 `gorm:"default:1"`
	UnitPrice   float64 `gorm:"column:unit_price"`
	SortIndex   int     `gorm:"column:sort_index"`
}
