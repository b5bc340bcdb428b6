// Package limits enforces plan-based resource limits and feature flags.
//
// Plans declare per-resource limits (Unlimited = -1) and feature flags.
// The Service resolves the effective plan for a request through a
// PlanResolver (the tenant package supplies one reading the tenant record
// from context), counts current usage through registered CounterFunc
// implementations, and answers CanCreate / HasFeature / Usage questions.
//
// Requests outside tenant context are never limited: the resolver reports
// no scope and every check passes.
//
//	svc, err := limits.NewService(ctx, limits.NewInMemSource(limits.DefaultPlans()), counters, tenant.PlanResolver())
//	if err := svc.CanCreate(ctx, limits.ResourceProducts); errors.Is(err, limits.ErrLimitExceeded) {
//		// build LIMIT_EXCEEDED response with svc.Usage(...)
//	}
package limits
