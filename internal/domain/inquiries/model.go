package inquiries

import (
	"sheet2bill/internal/domain/users"
	"time"
)

// Inquiry is an inbound request submitted by an (unauthenticated) visitor
// on a freelancer's public page. Quota counts against the recipient.
type Inquiry struct {
	ID          uint       `gorm:"primaryKey"`
	RecipientID uint       `gorm:"column:recipient_id;index;not null"`
	Recipient   users.User `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE"`

	SenderName  string `gorm:"not null"`
	SenderEmail string `gorm:"not null"`
	Subject     string
	Message     string `gorm:"not null"`

	ReadAt *time.Time `gorm:"column:read_at"`

	CreatedAt time.Time
}
