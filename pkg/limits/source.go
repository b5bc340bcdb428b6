package limits

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// Source loads the plan catalog.
type Source interface {
	Load(ctx context.Context) (map[string]Plan, error)
}

type inMemSource struct {
	mu    sync.RWMutex
	plans map[string]Plan
}

// NewInMemSource returns a Source over a deep copy of the given plans.
func NewInMemSource(plans map[string]Plan) Source {
	return &inMemSource{plans: clonePlans(plans)}
}

func (s *inMemSource) Load(ctx context.Context) (map[string]Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePlans(s.plans), nil
}

func clonePlans(plans map[string]Plan) map[string]Plan {
	out := make(map[string]Plan, len(plans))
	for id, plan := range plans {
		plan.Limits = maps.Clone(plan.Limits)
		plan.Features = slices.Clone(plan.Features)
		out[id] = plan
	}
	return out
}
