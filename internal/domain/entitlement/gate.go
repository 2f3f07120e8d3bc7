package entitlement

import (
	"context"
	"fmt"
	"time"

	"sheet2bill/internal/domain/plans"
	"sheet2bill/internal/domain/users"

	"gorm.io/gorm"
)

// checkTimeout bounds one gate evaluation. A timed-out check surfaces as
// an error (deny), never as an implicit allow.
const checkTimeout = 3 * time.Second

// Gate is the entitlement check every quota-bounded mutation runs before
// writing: resolve tier -> count usage -> evaluate against the plan table.
//
// The count and the caller's subsequent insert are NOT atomic: two
// concurrent requests can both pass and overshoot the cap by one. That is
// an accepted soft limit here, not a safety property.
type Gate struct {
	profiles ProfileStore
	usage    UsageStore
	plans    plans.Table
	now      func() time.Time
}

func New(profiles ProfileStore, usage UsageStore, table plans.Table) *Gate {
	return NewWithClock(profiles, usage, table, time.Now)
}

// NewWithClock lets tests pin "now" for window and expiry decisions.
func NewWithClock(profiles ProfileStore, usage UsageStore, table plans.Table, now func() time.Time) *Gate {
	return &Gate{profiles: profiles, usage: usage, plans: table, now: now}
}

// Default is the process-wide gate wired to the shared DB handle.
var Default *Gate

func Init(db *gorm.DB, table plans.Table) {
	store := NewGormStore(db)
	Default = New(store, store, table)
}

// Check evaluates the gate through the package default.
func Check(ctx context.Context, userID uint, action Action) (Decision, error) {
	return Default.Check(ctx, userID, action)
}

// Table returns the plan table the gate evaluates against.
func (g *Gate) Table() plans.Table {
	return g.plans
}

// PlanTable exposes the default gate's table so read paths (the /me
// usage meters) report the same limits the gate enforces.
func PlanTable() plans.Table {
	return Default.Table()
}

func (g *Gate) Check(ctx context.Context, userID uint, action Action) (Decision, error) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	now := g.now().UTC()

	tier, err := g.resolveTier(ctx, userID, now)
	if err != nil {
		return Decision{}, err
	}

	var since *time.Time
	if monthlyWindow(action) {
		start := MonthStart(now)
		since = &start
	}

	count, err := g.usage.Count(ctx, userID, action, since)
	if err != nil {
		return Decision{}, fmt.Errorf("entitlement: count %s: %w", action.Resource, err)
	}

	return Evaluate(tier, action, count, g.plans.Limit(tier, action.Resource)), nil
}

// resolveTier maps the stored subscription status to an effective tier.
// An active trial gets pro limits. An expired trial is lazily downgraded
// here because no background job exists; the guarded update in the store
// keeps repeated resolutions from writing twice. An expired pro evaluates
// as free without a write: the Stripe webhook owns that status field.
func (g *Gate) resolveTier(ctx context.Context, userID uint, now time.Time) (string, error) {
	sub, err := g.profiles.GetSubscription(ctx, userID)
	if err != nil {
		return "", err
	}

	active := sub.EndsAt != nil && sub.EndsAt.After(now)

	switch sub.Status {
	case users.StatusPro:
		if active {
			return plans.TierPro, nil
		}
		return plans.TierFree, nil

	case users.StatusTrialing:
		if active {
			return plans.TierPro, nil
		}
		if _, err := g.profiles.DowngradeExpiredTrial(ctx, userID, now); err != nil {
			return "", fmt.Errorf("entitlement: downgrade expired trial: %w", err)
		}
		return plans.TierFree, nil

	default:
		return plans.TierFree, nil
	}
}
