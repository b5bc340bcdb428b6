package tenant

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ovenkit/ovenkit/pkg/limits"
)

// Status is the tenant lifecycle state.
type Status string

const (
	StatusTrial     Status = "trial"
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusCancelled Status = "cancelled"
)

// CanConnect reports whether the status permits request handlers to obtain a
// database connection. Suspended and cancelled tenants never do.
func (s Status) CanConnect() bool {
	return s == StatusTrial || s == StatusActive
}

// DefaultTrialDays is the evaluation window granted at tenant creation.
const DefaultTrialDays = 14

// Counters are opportunistically maintained aggregates. They back the
// storage and API-call limit checks; they are not safety-critical and may
// lag actual usage.
type Counters struct {
	Users        int64 `json:"users"`
	StorageMB    int64 `json:"storageMb"`
	APICallsUsed int64 `json:"apiCallsUsed"`
}

// Tenant is one customer organization with its own physical database.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Subdomain string    `json:"subdomain"`
	Name      string    `json:"name"`

	// DatabaseName is generated once at creation and never recomputed.
	// DatabaseURI points at a dedicated cluster; empty means the shared one.
	DatabaseName string `json:"-"`
	DatabaseURI  string `json:"-"`

	PlanID string `json:"plan"`
	// Limits and Features are denormalized from the plan catalog at
	// provisioning time. Nil means "use the catalog entry for PlanID".
	Limits   map[limits.Resource]int64 `json:"-"`
	Features map[limits.Feature]bool   `json:"-"`

	Status      Status    `json:"status"`
	TrialEndsAt time.Time `json:"trialEndsAt,omitempty"`

	LastActivityAt time.Time `json:"-"`
	Counters       Counters  `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

// New provisions a fresh tenant on the named plan: normalized subdomain,
// generated database name, trial status with the default window.
func New(subdomain, name, planID string) (*Tenant, error) {
	subdomain = Normalize(subdomain)
	if err := ValidateSubdomain(subdomain); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Tenant{
		ID:           uuid.New(),
		Subdomain:    subdomain,
		Name:         name,
		DatabaseName: DatabaseNameFor(subdomain, now),
		PlanID:       planID,
		Status:       StatusTrial,
		TrialEndsAt:  now.AddDate(0, 0, DefaultTrialDays),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// DatabaseNameFor derives the immutable physical database name for a tenant
// created at the given time.
func DatabaseNameFor(subdomain string, createdAt time.Time) string {
	return fmt.Sprintf("tenant_%s_%d", subdomain, createdAt.Unix())
}

// TrialExpired reports whether the tenant is a trial whose window has ended.
func (t *Tenant) TrialExpired() bool {
	return t.Status == StatusTrial && !t.TrialEndsAt.IsZero() && time.Now().After(t.TrialEndsAt)
}

// DaysExpired returns how many whole days the trial is overdue; a trial
// expired less than a day ago counts as one. Zero when the trial has not
// expired.
func (t *Tenant) DaysExpired() int {
	if !t.TrialExpired() {
		return 0
	}
	days := int(time.Since(t.TrialEndsAt) / (24 * time.Hour))
	if days < 1 {
		days = 1
	}
	return days
}

// AccessURL constructs the tenant's entry URL under the platform base domain.
func (t *Tenant) AccessURL(baseDomain string) string {
	return fmt.Sprintf("https://%s.%s", t.Subdomain, baseDomain)
}

// EnabledFeatures lists the feature flags switched on for this tenant.
func (t *Tenant) EnabledFeatures() []limits.Feature {
	if t.Features == nil {
		return nil
	}
	features := make([]limits.Feature, 0, len(t.Features))
	for f, on := range t.Features {
		if on {
			features = append(features, f)
		}
	}
	return features
}

// PlanResolver adapts the tenant in context to the limits gate. Tenants
// carrying denormalized limits use them directly; tenants without make the
// gate fall back to the catalog entry for their plan ID. No tenant in
// context means no scope: the gate allows everything.
func PlanResolver() limits.PlanResolver {
	return func(ctx context.Context) (limits.Plan, bool) {
		t, ok := FromContext(ctx)
		if !ok || t == nil {
			return limits.Plan{}, false
		}
		return limits.Plan{
			ID:       t.PlanID,
			Limits:   t.Limits,
			Features: t.EnabledFeatures(),
		}, true
	}
}
