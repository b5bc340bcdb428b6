package tenant

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ovenkit/ovenkit/pkg/entities"
)

type tenantCtxKey struct{}

type entitiesCtxKey struct{}

// WithTenant attaches the tenant record to the context.
func WithTenant(ctx context.Context, t *Tenant) context.Context {
	return context.WithValue(ctx, tenantCtxKey{}, t)
}

// FromContext returns the tenant attached to the request, if any.
func FromContext(ctx context.Context) (*Tenant, bool) {
	t, ok := ctx.Value(tenantCtxKey{}).(*Tenant)
	return t, ok
}

// IDFromContext returns just the tenant ID.
func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	t, ok := FromContext(ctx)
	if !ok || t == nil {
		return uuid.UUID{}, false
	}
	return t.ID, true
}

// MustFromContext panics when no tenant is attached. For handlers mounted
// behind RequireTenant only.
func MustFromContext(ctx context.Context) *Tenant {
	t, ok := FromContext(ctx)
	if !ok || t == nil {
		panic("tenant: no tenant in context")
	}
	return t
}

// WithEntities attaches the tenant's bound entity map to the context.
func WithEntities(ctx context.Context, m entities.Map) context.Context {
	return context.WithValue(ctx, entitiesCtxKey{}, m)
}

// EntitiesFromContext returns the bound entity map for the request's tenant.
func EntitiesFromContext(ctx context.Context) (entities.Map, bool) {
	m, ok := ctx.Value(entitiesCtxKey{}).(entities.Map)
	return m, ok
}

// LoggerExtractor enriches log records with the tenant ID when present.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return slog.String("tenant_id", id.String()), true
		}
		return slog.Attr{}, false
	}
}
