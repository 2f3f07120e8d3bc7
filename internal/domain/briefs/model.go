package briefs

import (
	"sheet2bill/internal/domain/clients"
	"sheet2bill/internal/domain/users"
	"time"
)

// Brief lifecycle. A brief is only convertible to an invoice once the
// client has approved it through the public approval link.
const (
	StatusDraft    = "draft"
	StatusSent     = "sent"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusInvoiced = "invoiced"
)

type Brief struct {
	ID     uint       `gorm:"primaryKey"`
	UserID uint       `gorm:"index;not null"`
	User   users.User `gorm:"constraint:OnDelete:CASCADE"`

	ClientID uint `gorm:"index;not null"`
	Client   clients.Client

	Title    string `gorm:"not null"`
	Notes    string
	Currency string `gorm:"type:varchar(3);default:'EUR'"`
	Status   string `gorm:"type:varchar(20);not null;default:'draft'"`

	// Tokenized public approval link; set when the brief is sent.
	ApprovalToken *string    `gorm:"column:approval_token;uniqueIndex:idx_briefs_approval_token"`
	SentAt        *time.Time `gorm:"column:sent_at"`
	DecidedAt     *time.Time `gorm:"column:decided_at"`
	ClientComment string     `gorm:"column:client_comment"`

	Lines []BriefLine `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type BriefLine struct {
	ID      uint `gorm:"primaryKey"`
	BriefID uint `gorm:"index;not null"`

	Description string  `gorm:"not null"`
	Quantity    float64 `gorm:"default:1"`
	UnitPrice   float64 `gorm:"column:unit_price"`
	SortIndex   int     `gorm:"column:sort_index"`
}

// Total sums the brief's lines.
func (b Brief) Total() float64 {
	var total float64
	for _, l := range b.Lines {
		total += l.Quantity * l.UnitPrice
	}
	return total
}
