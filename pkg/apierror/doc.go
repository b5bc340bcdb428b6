// Package apierror defines the machine-readable error vocabulary exposed to
// API callers and a JSON writer for it.
//
// Handlers attach diagnostic fields before writing:
//
//	apierror.Write(w, apierror.LimitExceeded.WithDetails(map[string]any{
//		"current": current,
//		"limit":   limit,
//		"plan":    plan,
//	}))
package apierror
