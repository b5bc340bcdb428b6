package tenantdb

import (
	"context"
	"sync/atomic"

	"go.mongodb.org/mongo-driver/v2/event"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/ovenkit/ovenkit/pkg/tenant"

	mongokit "github.com/ovenkit/ovenkit/pkg/mongo"
)

// MongoConnector opens per-tenant MongoDB connections. Tenants without a
// dedicated URI live on the shared cluster, each in its own database; a
// tenant carrying its own DatabaseURI gets a fully separate deployment.
type MongoConnector struct {
	sharedURI string
	opts      mongokit.TenantOptions
}

// NewMongoConnector builds a connector over the shared cluster URI.
func NewMongoConnector(sharedURI string, opts mongokit.TenantOptions) *MongoConnector {
	return &MongoConnector{sharedURI: sharedURI, opts: opts}
}

// Connect opens a dedicated client for the tenant, pings it, and wires a
// pool monitor so driver-reported pool failures flip the health flag and
// fire onDisconnect exactly once.
func (c *MongoConnector) Connect(ctx context.Context, t *tenant.Tenant, onDisconnect func()) (Conn, error) {
	uri := t.DatabaseURI
	if uri == "" {
		uri = c.sharedURI
	}

	mc := &mongoConn{}
	mc.healthy.Store(true)

	monitor := &event.PoolMonitor{
		Event: func(e *event.PoolEvent) {
			switch e.Type {
			case event.ConnectionPoolCleared, event.ConnectionPoolClosed:
				if mc.healthy.CompareAndSwap(true, false) && onDisconnect != nil {
					onDisconnect()
				}
			}
		},
	}

	client, err := mongo.Connect(
		options.Client().
			ApplyURI(uri).
			SetMaxPoolSize(c.opts.MaxPoolSize).
			SetMinPoolSize(c.opts.MinPoolSize).
			SetServerSelectionTimeout(c.opts.ServerSelectionTimeout).
			SetTimeout(c.opts.SocketTimeout).
			SetConnectTimeout(c.opts.ConnectTimeout).
			SetPoolMonitor(monitor),
	)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	mc.client = client
	mc.db = client.Database(t.DatabaseName)
	return mc, nil
}

type mongoConn struct {
	client  *mongo.Client
	db      *mongo.Database
	healthy atomic.Bool
}

func (c *mongoConn) Database() *mongo.Database { return c.db }

func (c *mongoConn) Healthy() bool { return c.healthy.Load() }

func (c *mongoConn) Close(ctx context.Context) error {
	// Closing flips the flag first so the pool-closed event the disconnect
	// produces does not re-enter the eviction path.
	c.healthy.Store(false)
	return c.client.Disconnect(ctx)
}
