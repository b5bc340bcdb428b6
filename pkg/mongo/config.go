package mongo

import "time"

// Config describes the shared-cluster connection used for the tenant
// directory and the default (no-tenant) database.
type Config struct {
	ConnectionURL   string        `env:"MONGODB_URL,required"`                         // ConnectionURL is the URL of the shared cluster.
	ConnectTimeout  time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`     // ConnectTimeout bounds the initial connection handshake.
	MaxPoolSize     uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"100"`       // MaxPoolSize caps the shared connection pool.
	MinPoolSize     uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"1"`         // MinPoolSize keeps warm connections around.
	MaxConnIdleTime time.Duration `env:"MONGODB_MAX_CONN_IDLE_TIME" envDefault:"300s"` // MaxConnIdleTime recycles idle pool connections.
	RetryWrites     bool          `env:"MONGODB_RETRY_WRITES" envDefault:"true"`       // RetryWrites enables driver-level write retries.
	RetryReads      bool          `env:"MONGODB_RETRY_READS" envDefault:"true"`        // RetryReads enables driver-level read retries.
	RetryAttempts   int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`        // RetryAttempts is how many times New retries the initial connect.
	RetryInterval   time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"5s"`       // RetryInterval is the pause between connect retries.
}

// TenantOptions tunes the per-tenant connections opened by the registry.
// Each tenant gets its own pool, so the caps are deliberately far below the
// shared-cluster defaults and both selection and socket I/O are bounded so a
// dead tenant database fails a request fast instead of hanging it.
type TenantOptions struct {
	MaxPoolSize            uint64        `env:"MONGODB_TENANT_MAX_POOL_SIZE" envDefault:"10"`
	MinPoolSize            uint64        `env:"MONGODB_TENANT_MIN_POOL_SIZE" envDefault:"0"`
	ServerSelectionTimeout time.Duration `env:"MONGODB_TENANT_SELECTION_TIMEOUT" envDefault:"5s"`
	SocketTimeout          time.Duration `env:"MONGODB_TENANT_SOCKET_TIMEOUT" envDefault:"45s"`
	ConnectTimeout         time.Duration `env:"MONGODB_TENANT_CONNECT_TIMEOUT" envDefault:"10s"`
}
