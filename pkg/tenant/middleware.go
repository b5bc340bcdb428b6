package tenant

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ovenkit/ovenkit/pkg/apierror"
	"github.com/ovenkit/ovenkit/pkg/async"
	"github.com/ovenkit/ovenkit/pkg/entities"
	"github.com/ovenkit/ovenkit/pkg/jwt"
)

// EntityProvider yields the bound entity map for a tenant. Satisfied by
// tenantdb.Registry; the indirection keeps this package free of the
// registry's driver dependencies and lets tests substitute doubles.
type EntityProvider interface {
	Entities(ctx context.Context, t *Tenant) (entities.Map, error)
}

// Middleware resolves the request's tenant and attaches the tenant record
// plus its bound entity map to the context.
//
// Identification order: tenant header, tenant query parameter, JWT tenant_id
// claim. No signal means the request proceeds against the shared database
// with no tenant attached. Lifecycle gates and error codes follow the
// external API contract: TENANT_NOT_FOUND (404), TENANT_SUSPENDED (403),
// TRIAL_EXPIRED (402, with daysExpired), TENANT_ERROR (500) for
// infrastructure failures.
func Middleware(dir Directory, provider EntityProvider, opts ...Option) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		header:          DefaultHeader,
		queryParam:      DefaultQueryParam,
		cache:           NoopCache{},
		cacheTTL:        30 * time.Second,
		logger:          slog.Default(),
		activityTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	m := &middleware{cfg: cfg, dir: dir, provider: provider}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.serve(w, r, next)
		})
	}
}

type middleware struct {
	cfg      *middlewareConfig
	dir      Directory
	provider EntityProvider
}

func (m *middleware) serve(w http.ResponseWriter, r *http.Request, next http.Handler) {
	for _, skip := range m.cfg.skipPaths {
		if strings.HasPrefix(r.URL.Path, skip) {
			next.ServeHTTP(w, r)
			return
		}
	}

	t, apiErr := m.resolve(r)
	if apiErr != nil {
		apierror.Write(w, *apiErr)
		return
	}
	if t == nil {
		// No tenant signal: shared database, no limits.
		next.ServeHTTP(w, r)
		return
	}

	entityMap, err := m.provider.Entities(r.Context(), t)
	if err != nil {
		m.cfg.logger.ErrorContext(r.Context(), "failed to bind tenant entities",
			slog.String("tenant_id", t.ID.String()),
			slog.String("subdomain", t.Subdomain),
			slog.Any("error", err),
		)
		apierror.Write(w, apierror.TenantError)
		return
	}

	ctx := WithTenant(r.Context(), t)
	ctx = WithEntities(ctx, entityMap)

	// Last-activity bookkeeping runs detached from the request: it can never
	// block or fail the response.
	id := t.ID
	async.Fire(m.cfg.logger, m.cfg.activityTimeout, func(ctx context.Context) error {
		return m.dir.TouchActivity(ctx, id)
	})

	next.ServeHTTP(w, r.WithContext(ctx))
}

// resolve walks the identification paths and lifecycle gates. A nil tenant
// with nil error means "no tenant signal".
func (m *middleware) resolve(r *http.Request) (*Tenant, *apierror.Error) {
	ctx := r.Context()

	identifier := r.Header.Get(m.cfg.header)
	if identifier == "" {
		identifier = r.URL.Query().Get(m.cfg.queryParam)
	}

	var t *Tenant
	if identifier != "" {
		subdomain := Normalize(identifier)
		if err := ValidateSubdomain(subdomain); err != nil {
			return nil, errPtr(apierror.TenantNotFound)
		}

		if cached, ok := m.cfg.cache.Get(ctx, subdomain); ok {
			t = cached
		} else {
			found, err := m.dir.FindBySubdomain(ctx, subdomain)
			if err != nil {
				return nil, m.lookupError(ctx, err)
			}
			t = found
		}
	} else if m.cfg.tokens != nil {
		claimed, apiErr := m.fromClaims(r)
		if apiErr != nil {
			return nil, apiErr
		}
		t = claimed
	}

	if t == nil {
		return nil, nil
	}

	switch {
	case t.Status == StatusSuspended || t.Status == StatusCancelled:
		return nil, errPtr(apierror.TenantSuspended)
	case t.TrialExpired():
		return nil, errPtr(apierror.TrialExpired.WithDetails(map[string]any{
			"daysExpired": t.DaysExpired(),
		}))
	}

	// Only connectable tenants are worth caching: a suspended tenant must be
	// re-checked against the directory on every attempt.
	m.cfg.cache.Set(ctx, t.Subdomain, t, m.cfg.cacheTTL)

	return t, nil
}

// fromClaims resolves the JWT tenant_id claim by ID; the record's subdomain
// then drives the rest of the flow, keeping all three paths consistent.
func (m *middleware) fromClaims(r *http.Request) (*Tenant, *apierror.Error) {
	token := jwt.FromBearer(r)
	if token == "" {
		return nil, nil
	}

	var claims jwt.Claims
	if err := m.cfg.tokens.Parse(token, &claims); err != nil {
		// An unverifiable token is the auth layer's problem, not a tenant
		// signal. Proceed without tenant.
		m.cfg.logger.DebugContext(r.Context(), "ignoring unverifiable bearer token", slog.Any("error", err))
		return nil, nil
	}
	if claims.TenantID == "" {
		return nil, nil
	}

	id, err := uuid.Parse(claims.TenantID)
	if err != nil {
		return nil, errPtr(apierror.TenantNotFound)
	}

	t, err := m.dir.FindByID(r.Context(), id)
	if err != nil {
		return nil, m.lookupError(r.Context(), err)
	}
	return t, nil
}

// lookupError separates legitimate tenant-state rejections from
// infrastructure failures so outages never masquerade as 404s.
func (m *middleware) lookupError(ctx context.Context, err error) *apierror.Error {
	if errors.Is(err, ErrTenantNotFound) {
		return errPtr(apierror.TenantNotFound)
	}
	m.cfg.logger.ErrorContext(ctx, "tenant directory lookup failed", slog.Any("error", err))
	return errPtr(apierror.TenantError)
}

func errPtr(e apierror.Error) *apierror.Error {
	return &e
}

// RequireTenant rejects requests that reached a tenant-mandatory route
// without a tenant attached.
func RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			apierror.Write(w, apierror.TenantRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}
