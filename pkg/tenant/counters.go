package tenant

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/ovenkit/ovenkit/pkg/entities"
	"github.com/ovenkit/ovenkit/pkg/limits"
)

// ErrNoEntities is returned by counters invoked outside a tenant-bound
// request, which indicates a wiring bug: the gate passes before counting
// when no tenant is attached.
var ErrNoEntities = errors.New("no bound entities in context")

// EntityCounter builds a limits counter that counts documents of one entity
// through the tenant's bound handle.
func EntityCounter(name entities.Name) limits.CounterFunc {
	return func(ctx context.Context) (int64, error) {
		m, ok := EntitiesFromContext(ctx)
		if !ok {
			return 0, ErrNoEntities
		}
		coll, err := m.Collection(name)
		if err != nil {
			return 0, err
		}
		return coll.CountDocuments(ctx, bson.D{})
	}
}

// SnapshotCounter builds a limits counter reading one of the tenant's
// maintained aggregates, for resources that are not document counts
// (storage, API calls).
func SnapshotCounter(read func(*Tenant) int64) limits.CounterFunc {
	return func(ctx context.Context) (int64, error) {
		t, ok := FromContext(ctx)
		if !ok || t == nil {
			return 0, ErrNoEntities
		}
		return read(t), nil
	}
}
