package tenantdb

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/ovenkit/ovenkit/pkg/entities"
	"github.com/ovenkit/ovenkit/pkg/tenant"
)

// DefaultCreateTimeout bounds connection establishment plus entity binding
// for one tenant. Failed attempts are never cached, so a request hitting
// this deadline fails fast and the next request retries cleanly.
const DefaultCreateTimeout = 30 * time.Second

// Registry owns one physical connection and one bound entity map per
// tenant. Entries are created lazily on first access, shared across
// requests, and evicted together on disconnect, explicit close, or
// shutdown. All cache mutation goes through the Registry; nothing else
// touches the entries.
type Registry struct {
	connector     Connector
	binder        Binder
	logger        *slog.Logger
	createTimeout time.Duration

	mu      sync.RWMutex
	entries map[uuid.UUID]*entry
	closed  bool

	// group serializes creation per tenant: concurrent first-requests share
	// one connect+bind attempt instead of leaking duplicate connections.
	group singleflight.Group
}

// entry couples the connection with the entity map bound to it. They share
// a lifetime by construction: eviction removes both.
type entry struct {
	conn      Conn
	entities  entities.Map
	createdAt time.Time
}

// RegistryOption configures the registry.
type RegistryOption func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithCreateTimeout bounds connection creation.
func WithCreateTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) {
		if d > 0 {
			r.createTimeout = d
		}
	}
}

// NewRegistry builds a registry over the given connector and binder.
func NewRegistry(connector Connector, binder Binder, opts ...RegistryOption) *Registry {
	r := &Registry{
		connector:     connector,
		binder:        binder,
		logger:        slog.Default(),
		createTimeout: DefaultCreateTimeout,
		entries:       make(map[uuid.UUID]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the live connection for the tenant, creating it on first
// access. A cached healthy entry is returned without any network round
// trip.
func (r *Registry) Get(ctx context.Context, t *tenant.Tenant) (Conn, error) {
	e, err := r.acquire(ctx, t)
	if err != nil {
		return nil, err
	}
	return e.conn, nil
}

// Entities returns the tenant's bound entity map, creating connection and
// binding together on first access.
func (r *Registry) Entities(ctx context.Context, t *tenant.Tenant) (entities.Map, error) {
	e, err := r.acquire(ctx, t)
	if err != nil {
		return nil, err
	}
	return e.entities, nil
}

func (r *Registry) acquire(ctx context.Context, t *tenant.Tenant) (*entry, error) {
	if !t.Status.CanConnect() {
		return nil, tenant.ErrTenantNotUsable
	}

	r.mu.RLock()
	closed := r.closed
	e := r.entries[t.ID]
	r.mu.RUnlock()
	if closed {
		return nil, ErrRegistryClosed
	}
	if e != nil && e.conn.Healthy() {
		return e, nil
	}

	v, err, _ := r.group.Do(t.ID.String(), func() (any, error) {
		return r.create(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return v.(*entry), nil
}

// create runs inside the single-flight group: exactly one caller per tenant
// executes it while concurrent misses wait for the shared result.
func (r *Registry) create(ctx context.Context, t *tenant.Tenant) (*entry, error) {
	// The flight may have completed while this caller queued up.
	r.mu.RLock()
	e := r.entries[t.ID]
	r.mu.RUnlock()
	if e != nil {
		if e.conn.Healthy() {
			return e, nil
		}
		// Stale entry reported unhealthy at lookup: drop it before
		// recreating so the failed connection is not leaked.
		r.Evict(ctx, t.ID)
	}

	// Creation is detached from the triggering request: waiters sharing the
	// flight must not lose the connection because the first caller went
	// away. The timeout keeps an unreachable database from hanging anyone.
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.createTimeout)
	defer cancel()

	id := t.ID
	conn, err := r.connector.Connect(cctx, t, func() {
		r.handleDisconnect(id)
	})
	if err != nil {
		return nil, errors.Join(ErrConnectionFailure, err)
	}

	entityMap, err := r.binder.Bind(cctx, conn.Database())
	if err != nil {
		// No partial entries: close the fresh connection and cache nothing.
		if cerr := conn.Close(cctx); cerr != nil {
			r.logger.WarnContext(cctx, "failed to close connection after bind failure",
				slog.String("tenant_id", id.String()), slog.Any("error", cerr))
		}
		return nil, errors.Join(ErrBindFailure, err)
	}

	e = &entry{conn: conn, entities: entityMap, createdAt: time.Now()}

	r.mu.Lock()
	if r.closed {
		// The registry drained while this creation was in flight: the fresh
		// connection must not outlive shutdown.
		r.mu.Unlock()
		if cerr := conn.Close(cctx); cerr != nil {
			r.logger.WarnContext(cctx, "failed to close connection created during shutdown",
				slog.String("tenant_id", id.String()), slog.Any("error", cerr))
		}
		return nil, ErrRegistryClosed
	}
	r.entries[id] = e
	r.mu.Unlock()

	r.logger.InfoContext(cctx, "tenant connection established",
		slog.String("tenant_id", id.String()),
		slog.String("database", t.DatabaseName),
	)
	return e, nil
}

func (r *Registry) handleDisconnect(id uuid.UUID) {
	r.logger.Warn("tenant connection reported broken, evicting",
		slog.String("tenant_id", id.String()))
	r.Evict(context.Background(), id)
}

// Evict closes and removes the tenant's entry, connection and entity map
// together. The next access creates a fresh connection.
func (r *Registry) Evict(ctx context.Context, id uuid.UUID) {
	r.mu.Lock()
	e := r.entries[id]
	delete(r.entries, id)
	r.mu.Unlock()

	if e == nil {
		return
	}
	if err := e.conn.Close(ctx); err != nil {
		r.logger.WarnContext(ctx, "failed to close evicted connection",
			slog.String("tenant_id", id.String()), slog.Any("error", err))
	}
}

// CloseAll drains the registry at shutdown: every cached connection is
// closed in parallel and CloseAll waits for all of them. Individual close
// failures are logged, never fatal. Closing is terminal: later acquisitions
// and creations that were in flight when the drain started both get
// ErrRegistryClosed, so no connection can slip past shutdown.
func (r *Registry) CloseAll(ctx context.Context) {
	r.mu.Lock()
	r.closed = true
	drained := r.entries
	r.entries = make(map[uuid.UUID]*entry)
	r.mu.Unlock()

	var wg sync.WaitGroup
	for id, e := range drained {
		wg.Add(1)
		go func(id uuid.UUID, e *entry) {
			defer wg.Done()
			if err := e.conn.Close(ctx); err != nil {
				r.logger.WarnContext(ctx, "failed to close connection at shutdown",
					slog.String("tenant_id", id.String()), slog.Any("error", err))
			}
		}(id, e)
	}
	wg.Wait()
}

// TenantStats is the health snapshot of one cached entry.
type TenantStats struct {
	TenantID    uuid.UUID `json:"tenantId"`
	Healthy     bool      `json:"healthy"`
	ConnectedAt time.Time `json:"connectedAt"`
}

// Stats reports the live entries for operational tooling.
type Stats struct {
	Entries int           `json:"entries"`
	Tenants []TenantStats `json:"tenants"`
}

// Stats returns a point-in-time snapshot of the cache.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Stats{
		Entries: len(r.entries),
		Tenants: make([]TenantStats, 0, len(r.entries)),
	}
	for id, e := range r.entries {
		s.Tenants = append(s.Tenants, TenantStats{
			TenantID:    id,
			Healthy:     e.conn.Healthy(),
			ConnectedAt: e.createdAt,
		})
	}
	return s
}
