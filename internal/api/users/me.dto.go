package users

import "time"

type MeResponse struct {
	User    UserDTO    `json:"user"`
	Billing BillingDTO `json:"billing"`
	Usage   UsageDTO   `json:"usage"`
	Profile ProfileDTO `json:"profile"`
}

/* ---------- USER ---------- */

type UserDTO struct {
	ID         uint   `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Lastname   string `json:"lastname"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
}

/* ---------- BILLING ---------- */

type BillingDTO struct {
	Plan               *PlanDTO   `json:"plan"`
	PlanType           string     `json:"plan_type"`
	SubscriptionStatus string     `json:"subscription_status"` // free|trialing|pro
	SubscriptionEndsAt *time.Time `json:"subscription_ends_at"`
	TrialDaysLeft      *int       `json:"trial_days_left"`
}

type PlanDTO struct {
	ID            uint    `json:"id"`
	Key           string  `json:"key"`
	Interval      string  `json:"interval"`
	PriceEUR      float64 `json:"price_eur"`
	StripePriceID string  `json:"stripe_price_id"`
}

/* ---------- USAGE ---------- */

// UsageDTO shows each quota next to its effective limit so the client
// can render "3 / 10 briefs" style meters.
type UsageDTO struct {
	Tier      string        `json:"tier"` // effective: free|pro
	Clients   ResourceUsage `json:"clients"`
	Briefs    ResourceUsage `json:"briefs"`
	Items     ResourceUsage `json:"items"`
	Inquiries ResourceUsage `json:"inquiries"`
}

type ResourceUsage struct {
	Used      int64 `json:"used"`
	Limit     int   `json:"limit"`
	Unlimited bool  `json:"unlimited"`
	Monthly   bool  `json:"monthly"`
}

/* ---------- PROFILE ---------- */

type ProfileDTO struct {
	Slug      string `json:"slug"`
	PublicURL string `json:"public_url"`
}
