package entitlement

import (
	"strings"
	"testing"

	"sheet2bill/internal/domain/plans"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestEvaluate_FiniteLimit(t *testing.T) {
	tests := []struct {
		name    string
		action  Action
		count   int64
		limit   plans.Limit
		allowed bool
	}{
		{name: "UnderLimit", action: CreateClient, count: 2, limit: plans.Limit{Max: 5}, allowed: true},
		{name: "AtLimit", action: CreateClient, count: 5, limit: plans.Limit{Max: 5}, allowed: false},
		{name: "OverLimit", action: CreateClient, count: 9, limit: plans.Limit{Max: 5}, allowed: false},
		{name: "ZeroCount", action: CreateBrief, count: 0, limit: plans.Limit{Max: 10}, allowed: true},
		{name: "ZeroLimit", action: CreateItem, count: 0, limit: plans.Limit{Max: 0}, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := Evaluate(plans.TierFree, tt.action, tt.count, tt.limit)
			assert.Equal(t, tt.allowed, dec.Allowed)
			if !tt.allowed {
				assert.NotEmpty(t, dec.Message)
			}
		})
	}
}

func TestEvaluate_BriefsAtLimitMentionsNumber(t *testing.T) {
	dec := Evaluate(plans.TierFree, CreateBrief, 3, plans.Limit{Max: 3})
	assert.False(t, dec.Allowed)
	assert.Contains(t, dec.Message, "3")
	assert.Contains(t, dec.Message, "Upgrade")
}

func TestEvaluate_AlternateBriefLimitAllows(t *testing.T) {
	dec := Evaluate(plans.TierFree, CreateBrief, 3, plans.Limit{Max: 10})
	assert.True(t, dec.Allowed)
}

// An inquiry denial is shown to an unauthenticated visitor and must not
// leak plan or billing vocabulary.
func TestEvaluate_InquiryDenialIsPublicFacing(t *testing.T) {
	dec := Evaluate(plans.TierPro, ReceiveInquiry, 1000, plans.Limit{Max: 200})
	assert.False(t, dec.Allowed)

	msg := strings.ToLower(dec.Message)
	for _, banned := range []string{"plan", "upgrade", "pro", "billing", "limit", "subscription"} {
		assert.NotContains(t, msg, banned)
	}
}

func TestEvaluate_UnlimitedAlwaysAllows(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.Int64Range(0, 1<<40).Draw(t, "count")
		dec := Evaluate(plans.TierPro, CreateClient, count, plans.Limit{Unlimited: true})
		if !dec.Allowed {
			t.Fatalf("unlimited limit denied at count=%d", count)
		}
	})
}

func TestEvaluate_AllowedIffCountBelowLimit(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		max := rapid.IntRange(0, 1000).Draw(t, "max")
		count := rapid.Int64Range(0, 2000).Draw(t, "count")

		dec := Evaluate(plans.TierFree, CreateBrief, count, plans.Limit{Max: max})
		want := count < int64(max)
		if dec.Allowed != want {
			t.Fatalf("Evaluate(count=%d, max=%d).Allowed = %v, want %v", count, max, dec.Allowed, want)
		}
	})
}

// Once denied at count c, it stays denied for every c' >= c.
func TestEvaluate_MonotonicInCount(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		max := rapid.IntRange(0, 100).Draw(t, "max")
		limit := plans.Limit{Max: max}

		denied := false
		for count := int64(0); count <= int64(max)+5; count++ {
			dec := Evaluate(plans.TierFree, CreateItem, count, limit)
			if denied && dec.Allowed {
				t.Fatalf("allowed again at count=%d after earlier denial (max=%d)", count, max)
			}
			if !dec.Allowed {
				denied = true
			}
		}
	})
}
