package tenant

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ovenkit/ovenkit/pkg/limits"
)

const cacheKeyPrefix = "tenant:subdomain:"

// RedisCache caches directory lookups in redis. Entries are JSON snapshots
// of the full record so a hit carries the denormalized limits and features
// the gate needs.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps an established redis client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, subdomain string) (*Tenant, bool) {
	raw, err := c.client.Get(ctx, cacheKeyPrefix+subdomain).Bytes()
	if err != nil {
		return nil, false
	}

	var snap cachedTenant
	if err := json.Unmarshal(raw, &snap); err != nil {
		// Poisoned entry, drop it rather than fail lookups forever.
		c.Delete(ctx, subdomain)
		return nil, false
	}
	return snap.toTenant(), true
}

func (c *RedisCache) Set(ctx context.Context, subdomain string, t *Tenant, ttl time.Duration) {
	raw, err := json.Marshal(cachedFromTenant(t))
	if err != nil {
		return
	}
	c.client.Set(ctx, cacheKeyPrefix+subdomain, raw, ttl)
}

func (c *RedisCache) Delete(ctx context.Context, subdomain string) {
	c.client.Del(ctx, cacheKeyPrefix+subdomain)
}

// cachedTenant mirrors Tenant with exported JSON for fields the public
// shape hides.
type cachedTenant struct {
	Tenant
	DatabaseName string                    `json:"databaseName"`
	DatabaseURI  string                    `json:"databaseUri,omitempty"`
	Limits       map[limits.Resource]int64 `json:"limits,omitempty"`
	Features     map[limits.Feature]bool   `json:"features,omitempty"`
}

func cachedFromTenant(t *Tenant) cachedTenant {
	return cachedTenant{
		Tenant:       *t,
		DatabaseName: t.DatabaseName,
		DatabaseURI:  t.DatabaseURI,
		Limits:       t.Limits,
		Features:     t.Features,
	}
}

func (c cachedTenant) toTenant() *Tenant {
	t := c.Tenant
	t.DatabaseName = c.DatabaseName
	t.DatabaseURI = c.DatabaseURI
	t.Limits = c.Limits
	t.Features = c.Features
	return &t
}
