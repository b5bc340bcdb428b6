package limits

import (
	"context"
	"errors"
	"fmt"
)

// PlanResolver yields the effective plan for the current request scope.
// Returning ok=false means the request runs outside tenant context (the
// shared/default database), where no limits apply.
type PlanResolver func(ctx context.Context) (Plan, bool)

// Service is the limit/feature gate. It is read-only and side-effect-free:
// callers decide how to surface a rejection.
type Service struct {
	plans    map[string]Plan
	counters CounterRegistry
	resolver PlanResolver
}

// NewService loads the plan catalog from src and builds the gate.
// The resolver supplies the per-request plan; when it returns a plan with no
// limits or features of its own, the catalog entry with the same ID is used.
func NewService(ctx context.Context, src Source, counters CounterRegistry, resolver PlanResolver) (*Service, error) {
	if resolver == nil {
		return nil, ErrNilResolver
	}

	plans, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}
	if plans == nil {
		plans = make(map[string]Plan)
	}
	if err := validatePlans(plans); err != nil {
		return nil, err
	}

	if counters == nil {
		counters = NewRegistry()
	}

	return &Service{plans: plans, counters: counters, resolver: resolver}, nil
}

// CanCreate reports whether one more instance of the resource may be created
// in the current scope. Outside tenant context it always allows. Returns
// ErrLimitExceeded when the plan limit is reached.
func (s *Service) CanCreate(ctx context.Context, res Resource) error {
	plan, scoped, err := s.effectivePlan(ctx)
	if err != nil {
		return err
	}
	if !scoped {
		return nil
	}

	limit, exists := plan.Limits[res]
	if !exists {
		return ErrInvalidResource
	}
	if limit == Unlimited {
		return nil
	}

	current, err := s.count(ctx, res)
	if err != nil {
		return err
	}
	if current >= limit {
		return ErrLimitExceeded
	}
	return nil
}

// HasFeature reports whether the feature is enabled in the current scope.
// Outside tenant context everything is available.
func (s *Service) HasFeature(ctx context.Context, f Feature) bool {
	plan, scoped, err := s.effectivePlan(ctx)
	if err != nil || !scoped {
		return !scoped
	}
	return plan.HasFeature(f)
}

// Usage returns current usage and limit for a resource, for rejection
// payloads and dashboards. Outside tenant context it reports Unlimited.
func (s *Service) Usage(ctx context.Context, res Resource) (UsageInfo, error) {
	plan, scoped, err := s.effectivePlan(ctx)
	if err != nil {
		return UsageInfo{}, err
	}
	if !scoped {
		return UsageInfo{Current: 0, Limit: Unlimited}, nil
	}

	limit, exists := plan.Limits[res]
	if !exists {
		return UsageInfo{}, ErrInvalidResource
	}

	current, err := s.count(ctx, res)
	if err != nil {
		return UsageInfo{}, err
	}
	return UsageInfo{Current: current, Limit: limit}, nil
}

// AllUsage returns usage for every resource the effective plan limits.
// Counter failures leave the resource at zero rather than failing the whole
// report.
func (s *Service) AllUsage(ctx context.Context) (map[Resource]UsageInfo, error) {
	plan, scoped, err := s.effectivePlan(ctx)
	if err != nil {
		return nil, err
	}
	if !scoped {
		return map[Resource]UsageInfo{}, nil
	}

	result := make(map[Resource]UsageInfo, len(plan.Limits))
	for res, limit := range plan.Limits {
		info := UsageInfo{Limit: limit}
		if current, err := s.count(ctx, res); err == nil {
			info.Current = current
		}
		result[res] = info
	}
	return result, nil
}

// PlanID returns the effective plan ID for the current scope, empty outside
// tenant context. Used by callers building rejection payloads.
func (s *Service) PlanID(ctx context.Context) string {
	plan, scoped := s.resolver(ctx)
	if !scoped {
		return ""
	}
	return plan.ID
}

// VerifyPlan checks that a plan ID exists in the catalog.
func (s *Service) VerifyPlan(planID string) error {
	if _, exists := s.plans[planID]; !exists {
		return ErrPlanNotFound
	}
	return nil
}

func (s *Service) effectivePlan(ctx context.Context) (Plan, bool, error) {
	plan, scoped := s.resolver(ctx)
	if !scoped {
		return Plan{}, false, nil
	}

	// Tenants without denormalized overrides fall back to the catalog.
	if plan.Limits == nil && plan.Features == nil {
		catalog, exists := s.plans[plan.ID]
		if !exists {
			return Plan{}, true, ErrPlanNotFound
		}
		return catalog, true, nil
	}
	return plan, true, nil
}

func (s *Service) count(ctx context.Context, res Resource) (int64, error) {
	counter, exists := s.counters[res]
	if !exists {
		return 0, ErrNoCounterRegistered
	}
	current, err := counter(ctx)
	if err != nil {
		return 0, errors.Join(ErrFailedToCountUsage, err)
	}
	return current, nil
}

func validatePlans(plans map[string]Plan) error {
	for planID, plan := range plans {
		if plan.TrialDays < 0 {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("plan %s has negative trial days: %d", planID, plan.TrialDays))
		}
	}
	return nil
}
