package stripewebhooks

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"sheet2bill/database"
	"sheet2bill/internal/domain/billing"
	"sheet2bill/internal/domain/plans"
	"sheet2bill/internal/domain/users"
	stripeinfra "sheet2bill/internal/infra/stripe"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/subscription"
)

func handleCheckoutSessionCompleted(c *gin.Context, session *stripe.CheckoutSession) error {
	// Fetch full session with expansions
	fullSession, err := checkoutsession.Get(session.ID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Expand: []*string{
				stripe.String("subscription"),
				stripe.String("customer"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to fetch expanded checkout session: %w", err)
	}

	if fullSession.Subscription == nil || fullSession.Subscription.ID == "" {
		return errors.New("checkout session missing subscription")
	}
	subscriptionID := fullSession.Subscription.ID

	subData, err := subscription.Get(subscriptionID, nil)
	if err != nil || subData == nil || subData.Items == nil || len(subData.Items.Data) == 0 || subData.Items.Data[0].Price == nil {
		return fmt.Errorf("failed to fetch subscription items: %w", err)
	}

	// Identify user: metadata.user_id preferred, else ClientReferenceID
	userID, err := userIDFromSubscriptionOrRef(subData, fullSession.ClientReferenceID)
	if err != nil {
		return err
	}

	var user users.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	// Map Stripe price -> Plan
	priceID := subData.Items.Data[0].Price.ID
	var plan plans.Plan
	if err := database.DB.Where("stripe_price_id = ?", priceID).First(&plan).Error; err != nil {
		return fmt.Errorf("plan not found for stripe price_id=%s: %w", priceID, err)
	}

	periodEnd := time.Unix(subData.CurrentPeriodEnd, 0)

	// Paid time never shrinks an account: if the user still has trial or
	// leftover subscription days beyond Stripe's period end, keep the later
	// date.
	endsAt := periodEnd
	if user.SubscriptionEndsAt != nil && user.SubscriptionEndsAt.After(endsAt) {
		endsAt = *user.SubscriptionEndsAt
	}

	updates := map[string]interface{}{
		"plan_id":              plan.ID,
		"plan_type":            plan.Name,
		"subscription_id":      subscriptionID,
		"subscription_status":  stripeinfra.AccountStatusFor(string(subData.Status)),
		"subscription_ends_at": endsAt,
	}

	if fullSession.Customer != nil && fullSession.Customer.ID != "" {
		updates["stripe_customer_id"] = fullSession.Customer.ID
	}

	// Optional: cancel old sub if different (be careful—can surprise users if multi-subscriptions)
	if user.SubscriptionId != nil && *user.SubscriptionId != "" && *user.SubscriptionId != subscriptionID {
		_, _ = subscription.Cancel(*user.SubscriptionId, nil)
	}

	if err := database.DB.Model(&users.User{}).
		Where("id = ?", user.ID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update user after checkout: %w", err)
	}

	// Payment history row. The session id is unique, so Stripe retries of
	// the same event fall through on the index instead of duplicating.
	planID := plan.ID
	subID := subscriptionID
	payment := billing.Payment{
		UserID:               user.ID,
		PlanID:               &planID,
		StripeSessionID:      fullSession.ID,
		StripeSubscriptionID: &subID,
		AmountEUR:            float64(fullSession.AmountTotal) / 100.0,
		Status:               "paid",
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		fmt.Println("⚠️ Failed to record payment (continuing):", err)
	}

	return nil
}

func userIDFromSubscriptionOrRef(sub *stripe.Subscription, clientRef string) (uint, error) {
	userIDStr := ""
	if sub.Metadata != nil {
		userIDStr = sub.Metadata["user_id"]
	}
	if userIDStr == "" {
		userIDStr = clientRef
	}
	if userIDStr == "" {
		return 0, errors.New("missing user_id (metadata.user_id or client_reference_id)")
	}

	uid64, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user_id %q: %w", userIDStr, err)
	}
	return uint(uid64), nil
}
