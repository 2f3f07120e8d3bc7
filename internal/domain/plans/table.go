package plans

import "fmt"

// Tier constants (single source of truth)
const (
	TierFree = "free"
	TierPro  = "pro"
)

// Resource kinds subject to quota limits.
type Resource string

const (
	ResourceClients   Resource = "clients"
	ResourceBriefs    Resource = "briefs"
	ResourceItems     Resource = "items"
	ResourceInquiries Resource = "inquiries"
)

// Limit is the cap for one resource under one tier.
// Unlimited wins over Max.
type Limit struct {
	Max       int
	Unlimited bool
}

// Table maps tier -> resource -> limit. Built once at startup and
// never mutated afterwards; pass it into the gate instead of reading
// a package global so tests can use synthetic tables.
type Table map[string]map[Resource]Limit

// DefaultTable is the consolidated production table.
// Pro keeps high safety caps on the monthly kinds instead of being
// fully unlimited, so a runaway integration can't flood the DB.
func DefaultTable() Table {
	return Table{
		TierFree: {
			ResourceClients:   {Max: 5},
			ResourceBriefs:    {Max: 10},
			ResourceItems:     {Max: 5},
			ResourceInquiries: {Max: 5},
		},
		TierPro: {
			ResourceClients:   {Unlimited: true},
			ResourceBriefs:    {Max: 200},
			ResourceItems:     {Max: 500},
			ResourceInquiries: {Max: 200},
		},
	}
}

// Limit returns the limit for a tier/resource pair.
// Unknown tiers fall back to free so a bad status can never widen access.
func (t Table) Limit(tier string, res Resource) Limit {
	limits, ok := t[tier]
	if !ok {
		limits = t[TierFree]
	}
	return limits[res]
}

// Validate checks that free never allows more than pro for any resource.
func (t Table) Validate() error {
	free, ok := t[TierFree]
	if !ok {
		return fmt.Errorf("plan table missing %q tier", TierFree)
	}
	pro, ok := t[TierPro]
	if !ok {
		return fmt.Errorf("plan table missing %q tier", TierPro)
	}

	for res, f := range free {
		p := pro[res]
		if f.Unlimited && !p.Unlimited {
			return fmt.Errorf("free tier unlimited but pro capped for %q", res)
		}
		if !p.Unlimited && f.Max > p.Max {
			return fmt.Errorf("free limit %d exceeds pro limit %d for %q", f.Max, p.Max, res)
		}
	}
	return nil
}
