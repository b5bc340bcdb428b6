package tenantdb

import "errors"

var (
	// ErrConnectionFailure wraps a failed connection attempt. Failed
	// attempts are never cached.
	ErrConnectionFailure = errors.New("failed to connect to tenant database")

	// ErrBindFailure wraps a failed entity binding. Treated as a full
	// infrastructure failure: no partial entity map is ever cached.
	ErrBindFailure = errors.New("failed to bind tenant entities")

	// ErrRegistryClosed is returned once CloseAll has run; the registry
	// accepts no further creations.
	ErrRegistryClosed = errors.New("connection registry is closed")
)
