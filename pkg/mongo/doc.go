// Package mongo provides MongoDB connection helpers for the shared cluster
// and the pool profile applied to per-tenant connections.
//
// Configuration is environment-driven via pkg/config:
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	client, err := mongo.New(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Disconnect(context.Background())
//
// TenantOptions is consumed by the connection registry (pkg/tenantdb), which
// opens one bounded pool per tenant database.
package mongo
