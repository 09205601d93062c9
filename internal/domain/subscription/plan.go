package subscription

import "time"

// PlanID identifies an entitlement tier.
type PlanID string

const (
	PlanFree    PlanID = "free"
	PlanMonthly PlanID = "monthly"
	PlanYearly  PlanID = "yearly"
)

// UnlimitedScans is the sentinel scan limit for paid tiers.
const UnlimitedScans = -1

// DefaultFreeScansPerMonth is the free-tier monthly scan quota.
const DefaultFreeScansPerMonth = 10

// Plan describes one purchasable tier. Prices are INR paise, the unit the
// payment gateway bills in.
type Plan struct {
	ID         PlanID
	Name       string
	PricePaise int64
	Duration   time.Duration
}

var plans = map[PlanID]Plan{
	PlanFree: {
		ID:   PlanFree,
		Name: "Free",
	},
	PlanMonthly: {
		ID:         PlanMonthly,
		Name:       "Monthly",
		PricePaise: 299 * 100,
		Duration:   30 * 24 * time.Hour,
	},
	PlanYearly: {
		ID:         PlanYearly,
		Name:       "Yearly",
		PricePaise: 999 * 100,
		Duration:   365 * 24 * time.Hour,
	},
}

// GetPlan returns the plan for the given ID. Unknown IDs resolve to the free
// plan.
func GetPlan(id PlanID) Plan {
	if p, ok := plans[id]; ok {
		return p
	}
	return plans[PlanFree]
}

// IsValid reports whether the plan ID names a known tier.
func (p PlanID) IsValid() bool {
	_, ok := plans[p]
	return ok
}

// IsPaid reports whether the plan ID names a purchasable tier.
func (p PlanID) IsPaid() bool {
	return p == PlanMonthly || p == PlanYearly
}
