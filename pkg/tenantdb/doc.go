// Package tenantdb caches one live database connection and one bound entity
// map per tenant.
//
// The Registry is the single owner of that cache. First access to a tenant
// connects, binds the entity catalog against the tenant's database, and
// caches both as one entry; concurrent first-requests for the same tenant
// share a single creation attempt. Connections are evicted when the driver
// reports them broken, on explicit Evict, or at shutdown via CloseAll.
// Failed attempts are never cached, so transient outages self-heal on the
// next request.
package tenantdb
