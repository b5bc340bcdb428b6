package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ovenkit/ovenkit/modules/catalog"
	"github.com/ovenkit/ovenkit/pkg/config"
	"github.com/ovenkit/ovenkit/pkg/entities"
	"github.com/ovenkit/ovenkit/pkg/httpserver"
	"github.com/ovenkit/ovenkit/pkg/jwt"
	"github.com/ovenkit/ovenkit/pkg/limits"
	"github.com/ovenkit/ovenkit/pkg/logger"
	mongokit "github.com/ovenkit/ovenkit/pkg/mongo"
	rediskit "github.com/ovenkit/ovenkit/pkg/redis"
	"github.com/ovenkit/ovenkit/pkg/tenant"
	"github.com/ovenkit/ovenkit/pkg/tenantdb"
)

type appConfig struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"ovenkit"`
	Environment string `env:"APP_ENV" envDefault:"production"` // production or development
	BaseDomain  string `env:"BASE_DOMAIN" envDefault:"ovenkit.app"`
	SharedDB    string `env:"MONGODB_SHARED_DB" envDefault:"ovenkit"`

	JWTSigningKey string `env:"JWT_SIGNING_KEY,required"`

	TenantCacheEnabled bool          `env:"TENANT_CACHE_ENABLED" envDefault:"false"`
	TenantCacheTTL     time.Duration `env:"TENANT_CACHE_TTL" envDefault:"30s"`

	// PlansFile points at a YAML plan catalog; empty means the built-in
	// defaults.
	PlansFile string `env:"PLANS_FILE"`
}

func main() {
	var appCfg appConfig
	config.MustLoad(&appCfg)

	var mongoCfg mongokit.Config
	config.MustLoad(&mongoCfg)

	var tenantOpts mongokit.TenantOptions
	config.MustLoad(&tenantOpts)

	var httpCfg httpserver.Config
	config.MustLoad(&httpCfg)

	logOpts := []logger.Option{
		logger.WithProduction(appCfg.ServiceName),
		logger.WithContextExtractors(tenant.LoggerExtractor()),
	}
	if appCfg.Environment == "development" {
		logOpts[0] = logger.WithDevelopment(appCfg.ServiceName)
	}
	log := logger.New(logOpts...)
	logger.SetAsDefault(log)

	if err := run(context.Background(), appCfg, mongoCfg, tenantOpts, httpCfg, log); err != nil {
		log.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(
	ctx context.Context,
	appCfg appConfig,
	mongoCfg mongokit.Config,
	tenantOpts mongokit.TenantOptions,
	httpCfg httpserver.Config,
	log *slog.Logger,
) error {
	sharedClient, err := mongokit.New(ctx, mongoCfg)
	if err != nil {
		return err
	}
	defer func() { _ = sharedClient.Disconnect(context.Background()) }()

	sharedDB := sharedClient.Database(appCfg.SharedDB)

	directory := tenant.NewMongoDirectory(sharedDB)
	if err := directory.EnsureIndexes(ctx); err != nil {
		return err
	}

	tokens, err := jwt.New([]byte(appCfg.JWTSigningKey))
	if err != nil {
		return err
	}

	registry := tenantdb.NewRegistry(
		tenantdb.NewMongoConnector(mongoCfg.ConnectionURL, tenantOpts),
		entities.NewMongoBinder(),
		tenantdb.WithLogger(log),
	)

	gate, err := buildGate(ctx, appCfg)
	if err != nil {
		return err
	}

	healthChecks := []func(context.Context) error{mongokit.Healthcheck(sharedClient)}

	tenantMwOpts := []tenant.Option{
		tenant.WithTokenService(tokens),
		tenant.WithLogger(log),
	}
	if appCfg.TenantCacheEnabled {
		var redisCfg rediskit.Config
		config.MustLoad(&redisCfg)

		redisClient, err := rediskit.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer func() { _ = redisClient.Close() }()

		tenantMwOpts = append(tenantMwOpts,
			tenant.WithCache(tenant.NewRedisCache(redisClient), appCfg.TenantCacheTTL))
		healthChecks = append(healthChecks, rediskit.Healthcheck(redisClient))
	}

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", httpserver.HealthCheckHandler(log))
	r.Get("/readyz", httpserver.HealthCheckHandler(log, healthChecks...))
	r.Get("/internal/tenants", statsHandler(registry))

	r.Group(func(r chi.Router) {
		r.Use(tenant.Middleware(directory, registry, tenantMwOpts...))
		r.Use(tenant.RequireTenant)

		r.Get("/api/tenant", whoamiHandler(appCfg.BaseDomain, gate))
		r.Mount("/api/products", catalog.Router(gate, log))
	})

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithDrainHook(func(ctx context.Context) {
			registry.CloseAll(ctx)
		}),
	)
	return srv.Run(ctx, r)
}

// buildGate wires the limit/feature gate: plan catalog from YAML or the
// built-in defaults, document counters through the bound entity handles,
// aggregate counters from the tenant record.
func buildGate(ctx context.Context, appCfg appConfig) (*limits.Service, error) {
	var src limits.Source
	if appCfg.PlansFile != "" {
		src = limits.NewYAMLSource(appCfg.PlansFile)
	} else {
		src = limits.NewInMemSource(limits.DefaultPlans())
	}

	counters := limits.NewRegistry()
	counters.Register(limits.ResourceUsers, tenant.EntityCounter(entities.User))
	counters.Register(limits.ResourceProducts, tenant.EntityCounter(entities.Product))
	counters.Register(limits.ResourceClients, tenant.EntityCounter(entities.Client))
	counters.Register(limits.ResourceSuppliers, tenant.EntityCounter(entities.Supplier))
	counters.Register(limits.ResourceStorage, tenant.SnapshotCounter(func(t *tenant.Tenant) int64 {
		return t.Counters.StorageMB
	}))
	counters.Register(limits.ResourceAPICalls, tenant.SnapshotCounter(func(t *tenant.Tenant) int64 {
		return t.Counters.APICallsUsed
	}))

	return limits.NewService(ctx, src, counters, tenant.PlanResolver())
}

// statsHandler exposes the connection registry snapshot for operators.
func statsHandler(registry *tenantdb.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(registry.Stats())
	}
}

// whoamiHandler reports the resolved tenant, its access URL, and current
// plan usage.
func whoamiHandler(baseDomain string, gate *limits.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := tenant.MustFromContext(r.Context())

		usage, err := gate.AllUsage(r.Context())
		if err != nil {
			usage = nil
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":        t.ID,
			"subdomain": t.Subdomain,
			"name":      t.Name,
			"status":    t.Status,
			"plan":      t.PlanID,
			"url":       t.AccessURL(baseDomain),
			"features":  t.EnabledFeatures(),
			"usage":     usage,
		})
	}
}
