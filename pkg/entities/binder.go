package entities

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// MongoBinder produces the per-tenant entity map against a mongo database.
type MongoBinder struct{}

// NewMongoBinder returns a binder over the static entity table.
func NewMongoBinder() *MongoBinder {
	return &MongoBinder{}
}

// Bind creates a handle for every entity in the table and ensures its
// indexes. Binding is all-or-nothing: if any entity fails, no map is
// returned and the caller must not cache a partial result.
func (b *MongoBinder) Bind(ctx context.Context, db *mongo.Database) (Map, error) {
	if db == nil {
		return nil, errors.Join(ErrBindFailed, errors.New("nil database"))
	}

	m := make(Map, len(table))
	for _, spec := range table {
		coll := db.Collection(spec.Collection)
		if len(spec.Indexes) > 0 {
			if _, err := coll.Indexes().CreateMany(ctx, spec.Indexes); err != nil {
				return nil, errors.Join(ErrBindFailed, fmt.Errorf("entity %s: %w", spec.Name, err))
			}
		}
		m[spec.Name] = coll
	}

	return m, nil
}
