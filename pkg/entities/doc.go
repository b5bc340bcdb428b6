// Package entities defines the canonical business entities and binds them to
// a tenant's physical database.
//
// Entity shapes (collection name + indexes) are declared once in a static
// table and reused across every tenant, which keeps business logic
// tenant-agnostic while the backing database provides physical isolation.
// The binder turns the table into a Map of collection handles scoped to one
// tenant's database; the connection registry caches that map together with
// the connection it was bound to.
package entities
