package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when no tenant matches the identifier.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInvalidSubdomain is returned for identifiers that break the
	// subdomain format rules.
	ErrInvalidSubdomain = errors.New("invalid tenant subdomain")

	// ErrTenantNotUsable is returned when a suspended or cancelled tenant is
	// asked for a connection.
	ErrTenantNotUsable = errors.New("tenant is not in a connectable status")
)
