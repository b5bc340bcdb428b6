package tenant

import (
	"log/slog"
	"time"

	"github.com/ovenkit/ovenkit/pkg/jwt"
)

const (
	// DefaultHeader carries the tenant subdomain verbatim.
	DefaultHeader = "X-Tenant-ID"
	// DefaultQueryParam is the fallback query parameter.
	DefaultQueryParam = "tenant"
)

type middlewareConfig struct {
	header          string
	queryParam      string
	tokens          *jwt.Service
	cache           Cache
	cacheTTL        time.Duration
	skipPaths       []string
	logger          *slog.Logger
	activityTimeout time.Duration
}

// Option configures the middleware.
type Option func(*middlewareConfig)

// WithHeader overrides the tenant header name.
func WithHeader(name string) Option {
	return func(c *middlewareConfig) {
		if name != "" {
			c.header = name
		}
	}
}

// WithQueryParam overrides the tenant query parameter name.
func WithQueryParam(name string) Option {
	return func(c *middlewareConfig) {
		if name != "" {
			c.queryParam = name
		}
	}
}

// WithTokenService enables the JWT tenant_id claim path.
func WithTokenService(svc *jwt.Service) Option {
	return func(c *middlewareConfig) { c.tokens = svc }
}

// WithCache installs a directory lookup cache (default: none). Only
// connectable tenants are cached, but a snapshot taken before a status
// change is served until the ttl elapses: a suspension can take effect up
// to ttl late on the request path. Suspension/provisioning flows should
// call Cache.Delete with the tenant's subdomain to invalidate immediately.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *middlewareConfig) {
		if cache != nil {
			c.cache = cache
		}
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// WithSkipPaths lists path prefixes that bypass tenant resolution entirely.
func WithSkipPaths(paths ...string) Option {
	return func(c *middlewareConfig) { c.skipPaths = append(c.skipPaths, paths...) }
}

// WithLogger sets the middleware logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *middlewareConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}
