package stripe

import (
	"strings"

	"sheet2bill/internal/domain/users"
)

// Stripe-ish normalization used ONLY for billing.subscription.status
func NormalizeStripeStatus(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "none"
	}
	switch strings.TrimSpace(*s) {
	case "active":
		return "active"
	case "trialing":
		return "trialing"
	case "past_due", "unpaid":
		return "past_due"
	case "canceled", "incomplete_expired":
		return "canceled"
	default:
		return strings.TrimSpace(*s)
	}
}

// AccountStatusFor maps a Stripe subscription status to the stored
// subscription_status the entitlement gate reads. Anything not clearly
// paid collapses to free; the gate fails toward the narrower tier.
func AccountStatusFor(stripeStatus string) string {
	switch NormalizeStripeStatus(&stripeStatus) {
	case "active", "trialing":
		return users.StatusPro
	default:
		return users.StatusFree
	}
}
