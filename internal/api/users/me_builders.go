package users

import (
	"time"

	"sheet2bill/database"
	"sheet2bill/internal/domain/briefs"
	"sheet2bill/internal/domain/clients"
	"sheet2bill/internal/domain/entitlement"
	"sheet2bill/internal/domain/inquiries"
	"sheet2bill/internal/domain/library"
	"sheet2bill/internal/domain/plans"
	"sheet2bill/internal/domain/profile"
	"sheet2bill/internal/domain/users"
)

func BuildPlanDTO(p *plans.Plan) *PlanDTO {
	if p == nil {
		return nil
	}
	return &PlanDTO{
		ID:            p.ID,
		Key:           p.Name,
		Interval:      p.Interval,
		PriceEUR:      p.PriceEUR,
		StripePriceID: p.StripePriceID,
	}
}

func BuildBillingDTO(now time.Time, u users.User) BillingDTO {
	dto := BillingDTO{
		Plan:               BuildPlanDTO(u.Plan),
		PlanType:           u.PlanType,
		SubscriptionStatus: u.SubscriptionStatus,
		SubscriptionEndsAt: u.SubscriptionEndsAt,
	}

	if u.SubscriptionStatus == users.StatusTrialing && u.SubscriptionEndsAt != nil {
		d := int(u.SubscriptionEndsAt.Sub(now).Hours() / 24)
		if d < 0 {
			d = 0
		}
		dto.TrialDaysLeft = &d
	}

	return dto
}

// effectiveTier mirrors the gate's read-only view: pro/trialing with a
// future end date gets pro limits, everything else free. The /me read
// never writes; the lazy trial downgrade belongs to the gate.
func effectiveTier(now time.Time, u users.User) string {
	active := u.SubscriptionEndsAt != nil && u.SubscriptionEndsAt.After(now)
	if active && (u.SubscriptionStatus == users.StatusPro || u.SubscriptionStatus == users.StatusTrialing) {
		return plans.TierPro
	}
	return plans.TierFree
}

func BuildUsageDTO(now time.Time, u users.User, table plans.Table) (UsageDTO, error) {
	tier := effectiveTier(now, u)
	monthStart := entitlement.MonthStart(now)

	usage := UsageDTO{Tier: tier}

	var err error
	usage.Clients, err = resourceUsage(tier, table, plans.ResourceClients, func() (int64, error) {
		var n int64
		e := database.DB.Model(&clients.Client{}).Where("user_id = ?", u.ID).Count(&n).Error
		return n, e
	}, false)
	if err != nil {
		return usage, err
	}

	usage.Items, err = resourceUsage(tier, table, plans.ResourceItems, func() (int64, error) {
		var n int64
		e := database.DB.Model(&library.Item{}).Where("user_id = ?", u.ID).Count(&n).Error
		return n, e
	}, false)
	if err != nil {
		return usage, err
	}

	usage.Briefs, err = resourceUsage(tier, table, plans.ResourceBriefs, func() (int64, error) {
		var n int64
		e := database.DB.Model(&briefs.Brief{}).
			Where("user_id = ? AND created_at >= ?", u.ID, monthStart).Count(&n).Error
		return n, e
	}, true)
	if err != nil {
		return usage, err
	}

	usage.Inquiries, err = resourceUsage(tier, table, plans.ResourceInquiries, func() (int64, error) {
		var n int64
		e := database.DB.Model(&inquiries.Inquiry{}).
			Where("recipient_id = ? AND created_at >= ?", u.ID, monthStart).Count(&n).Error
		return n, e
	}, true)

	return usage, err
}

func resourceUsage(tier string, table plans.Table, res plans.Resource, count func() (int64, error), monthly bool) (ResourceUsage, error) {
	used, err := count()
	if err != nil {
		return ResourceUsage{}, err
	}
	limit := table.Limit(tier, res)
	return ResourceUsage{
		Used:      used,
		Limit:     limit.Max,
		Unlimited: limit.Unlimited,
		Monthly:   monthly,
	}, nil
}

func BuildProfileDTO(u users.User) ProfileDTO {
	if u.ProfileSlug == nil || *u.ProfileSlug == "" {
		return ProfileDTO{}
	}
	return ProfileDTO{
		Slug:      *u.ProfileSlug,
		PublicURL: profile.BuildPublicURL(*u.ProfileSlug),
	}
}
