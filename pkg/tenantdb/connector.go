package tenantdb

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/ovenkit/ovenkit/pkg/entities"
	"github.com/ovenkit/ovenkit/pkg/tenant"
)

// Conn is one tenant's live database connection as the registry sees it.
type Conn interface {
	// Database returns the handle scoped to the tenant's physical database.
	Database() *mongo.Database

	// Healthy reports the driver-observed connection state. The registry
	// trusts this at lookup time instead of running its own heartbeat; a
	// stale-but-not-yet-notified connection may be handed out once and fail
	// downstream, which evicts it through the disconnect observer.
	Healthy() bool

	// Close tears the connection down.
	Close(ctx context.Context) error
}

// Connector opens physical connections. onDisconnect is the eviction
// observer: implementations must invoke it (at most once) when the driver
// reports the connection broken, so the registry drops the poisoned entry
// off the request path.
type Connector interface {
	Connect(ctx context.Context, t *tenant.Tenant, onDisconnect func()) (Conn, error)
}

// Binder produces the entity map bound to a tenant's database.
// All-or-nothing: implementations never return partial maps.
type Binder interface {
	Bind(ctx context.Context, db *mongo.Database) (entities.Map, error)
}
