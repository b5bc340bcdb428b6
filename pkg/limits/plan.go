package limits

import (
	"slices"
	"time"
)

// Plan describes a subscription tier: per-resource limits (Unlimited = -1)
// and the feature flags it enables.
type Plan struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Limits      map[Resource]int64 `yaml:"limits"`
	Features    []Feature          `yaml:"features"`
	Public      bool               `yaml:"public"`
	TrialDays   int                `yaml:"trial_days"`
}

// HasFeature reports whether the plan enables the feature.
func (p Plan) HasFeature(f Feature) bool {
	return slices.Contains(p.Features, f)
}

// TrialEndsAt returns when a trial started at the given time expires.
// Plans without a trial return startedAt unchanged.
func (p Plan) TrialEndsAt(startedAt time.Time) time.Time {
	if p.TrialDays <= 0 {
		return startedAt
	}
	return startedAt.AddDate(0, 0, p.TrialDays).UTC()
}

// IsTrialActive reports whether a trial started at the given time is still
// running.
func (p Plan) IsTrialActive(startedAt time.Time) bool {
	if p.TrialDays <= 0 {
		return false
	}
	return time.Now().UTC().Before(p.TrialEndsAt(startedAt))
}

// DefaultPlans is the built-in catalog. Provisioning denormalizes the chosen
// plan's limits and features onto the tenant record; the catalog remains the
// fallback when a tenant carries no overrides.
func DefaultPlans() map[string]Plan {
	return map[string]Plan{
		"free": {
			ID:   "free",
			Name: "Free",
			Limits: map[Resource]int64{
				ResourceUsers:     2,
				ResourceProducts:  20,
				ResourceClients:   20,
				ResourceSuppliers: 10,
				ResourceStorage:   256,
				ResourceAPICalls:  0,
			},
			Features:  []Feature{FeatureInventory, FeatureSales},
			Public:    true,
			TrialDays: 14,
		},
		"basic": {
			ID:   "basic",
			Name: "Basic",
			Limits: map[Resource]int64{
				ResourceUsers:     5,
				ResourceProducts:  200,
				ResourceClients:   200,
				ResourceSuppliers: 50,
				ResourceStorage:   2048,
				ResourceAPICalls:  10000,
			},
			Features:  []Feature{FeatureInventory, FeatureRecipes, FeatureSales, FeaturePurchases},
			Public:    true,
			TrialDays: 14,
		},
		"premium": {
			ID:   "premium",
			Name: "Premium",
			Limits: map[Resource]int64{
				ResourceUsers:     20,
				ResourceProducts:  2000,
				ResourceClients:   Unlimited,
				ResourceSuppliers: Unlimited,
				ResourceStorage:   10240,
				ResourceAPICalls:  100000,
			},
			Features: []Feature{
				FeatureInventory, FeatureRecipes, FeatureSales,
				FeaturePurchases, FeatureReports, FeatureAPI,
			},
			Public:    true,
			TrialDays: 14,
		},
		"enterprise": {
			ID:   "enterprise",
			Name: "Enterprise",
			Limits: map[Resource]int64{
				ResourceUsers:     Unlimited,
				ResourceProducts:  Unlimited,
				ResourceClients:   Unlimited,
				ResourceSuppliers: Unlimited,
				ResourceStorage:   Unlimited,
				ResourceAPICalls:  Unlimited,
			},
			Features: []Feature{
				FeatureInventory, FeatureRecipes, FeatureSales, FeaturePurchases,
				FeatureReports, FeatureAPI, FeatureCustomBranding,
			},
			Public:    false,
			TrialDays: 30,
		},
	}
}
