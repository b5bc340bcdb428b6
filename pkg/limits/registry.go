package limits

import (
	"context"
	"fmt"
)

// CounterFunc returns the current usage for a resource in the calling
// tenant's scope. Counters should be cheap: count through the bound entity
// handle or read a maintained aggregate.
type CounterFunc func(ctx context.Context) (int64, error)

// CounterRegistry maps resources to their counters.
// Not safe for concurrent mutation: register everything during wiring.
type CounterRegistry map[Resource]CounterFunc

// NewRegistry returns an empty CounterRegistry.
func NewRegistry() CounterRegistry {
	return make(CounterRegistry)
}

// Register sets the counter for a resource. Panics on nil counters so a
// wiring mistake surfaces at startup rather than on the first gated request.
func (r CounterRegistry) Register(res Resource, fn CounterFunc) {
	if fn == nil {
		panic(fmt.Sprintf("limits: counter for resource %q cannot be nil", res))
	}
	r[res] = fn
}
