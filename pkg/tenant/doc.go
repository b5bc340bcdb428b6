// Package tenant implements tenant identity, the shared tenant directory,
// and per-request tenant resolution.
//
// A Tenant couples a unique subdomain with an immutable physical database
// name, a commercial plan (denormalized limits and feature flags), and a
// lifecycle status. The Middleware resolves the tenant for each request —
// header, query parameter, or JWT claim — applies the lifecycle gates, and
// attaches the tenant record together with its bound entity map to the
// request context. Downstream handlers query "the Product collection"
// without knowing which physical database backs it.
//
//	r.Use(tenant.Middleware(directory, registry,
//		tenant.WithTokenService(tokens),
//		tenant.WithLogger(log),
//	))
//	r.Group(func(r chi.Router) {
//		r.Use(tenant.RequireTenant)
//		r.Mount("/products", catalog.Router(gate, log))
//	})
//
// Suspended and cancelled tenants never reach handlers; expired trials are
// rejected with the number of days overdue. Requests with no tenant signal
// run against the shared database with no tenant attached and no limits
// applied.
package tenant
