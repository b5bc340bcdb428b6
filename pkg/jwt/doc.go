// Package jwt implements HS256 token verification.
//
// Authentication itself lives in an external service; this package only
// verifies tokens and yields the claims the tenancy layer consumes, most
// importantly the tenant_id claim used as the third tenant-identification
// path.
package jwt
