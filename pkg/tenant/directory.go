package tenant

import (
	"context"

	"github.com/google/uuid"
)

// Directory is the shared store of tenant records. It is read by every
// request; writes happen in external provisioning flows, except for the
// best-effort activity timestamp.
type Directory interface {
	// FindBySubdomain looks up a tenant by normalized subdomain, regardless
	// of lifecycle status. Returns ErrTenantNotFound when absent. Callers
	// apply the lifecycle gates; the registry is the cache boundary, so no
	// caching happens here.
	FindBySubdomain(ctx context.Context, subdomain string) (*Tenant, error)

	// FindByID looks up a tenant by its internal ID, for JWT-derived lookups.
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// TouchActivity updates the tenant's last-activity timestamp.
	// Best-effort: callers run it in the background and ignore failures.
	TouchActivity(ctx context.Context, id uuid.UUID) error
}

// FindActive looks up a tenant by subdomain and filters to connectable
// statuses, collapsing suspended/cancelled into ErrTenantNotFound. For
// callers that do not need to distinguish lifecycle rejections.
func FindActive(ctx context.Context, dir Directory, subdomain string) (*Tenant, error) {
	t, err := dir.FindBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, err
	}
	if !t.Status.CanConnect() {
		return nil, ErrTenantNotFound
	}
	return t, nil
}
