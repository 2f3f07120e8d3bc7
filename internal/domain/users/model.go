package users

import (
	"sheet2bill/internal/domain/plans"
	"time"
)

// Subscription status values stored on the user row.
// "trialing" is pro-equivalent while subscription_ends_at is in the future;
// the entitlement resolver lazily downgrades it to "free" once expired.
const (
	StatusFree     = "free"
	StatusTrialing = "trialing"
	StatusPro      = "pro"
)

type User struct {
	ID           uint `gorm:"primaryKey"`
	Name         string
	Lastname     string
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	Role         string
	IsVerified   bool

	PlanID *uint
	Plan   *plans.Plan

	// PlanType is an informational label ("Pro Monthly" etc.); quota
	// decisions never read it, they go through SubscriptionStatus.
	PlanType           string     `gorm:"column:plan_type"`
	SubscriptionStatus string     `gorm:"column:subscription_status;type:varchar(20);not null;default:'free'"`
	SubscriptionEndsAt *time.Time `gorm:"column:subscription_ends_at"`

	SubscriptionId   *string `gorm:"column:subscription_id;uniqueIndex:idx_users_subscription_id"`
	StripeCustomerID *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_users_stripe_customer_id"`

	// Public freelancer page (inquiries land here)
	ProfileSlug *string `gorm:"column:profile_slug;uniqueIndex:idx_users_profile_slug"`

	// Invoice branding (pro feature)
	LogoURL       *string `gorm:"column:logo_url"`
	InvoiceFooter *string `gorm:"column:invoice_footer"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
