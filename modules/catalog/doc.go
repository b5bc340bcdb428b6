// Package catalog exposes the tenant-scoped product endpoints. It reads
// and writes exclusively through the entity map the tenant middleware
// attaches to the request, and enforces the inventory feature flag and the
// products plan limit before any write.
package catalog
