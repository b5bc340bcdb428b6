package tenant

import (
	"context"
	"time"
)

// Cache is an optional short-TTL cache in front of directory lookups.
// The connection registry remains the only cache for connections and entity
// maps; this one merely spares the directory a point read per request.
type Cache interface {
	Get(ctx context.Context, subdomain string) (*Tenant, bool)
	Set(ctx context.Context, subdomain string, t *Tenant, ttl time.Duration)
	Delete(ctx context.Context, subdomain string)
}

// NoopCache disables directory caching. The default.
type NoopCache struct{}

func (NoopCache) Get(ctx context.Context, subdomain string) (*Tenant, bool) { return nil, false }

func (NoopCache) Set(ctx context.Context, subdomain string, t *Tenant, ttl time.Duration) {}

func (NoopCache) Delete(ctx context.Context, subdomain string) {}
