package tenant

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// Subdomain length bounds. The lower bound keeps vanity collisions rare,
	// the upper bound stays well inside the DNS label limit.
	MinSubdomainLength = 3
	MaxSubdomainLength = 30
)

// subdomainPattern: lowercase alphanumeric with inner hyphens, alphanumeric
// at both edges.
var subdomainPattern = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$`)

// reservedSubdomains can never identify a tenant; they collide with
// platform-owned hosts.
var reservedSubdomains = map[string]struct{}{
	"www":     {},
	"api":     {},
	"app":     {},
	"admin":   {},
	"mail":    {},
	"status":  {},
	"support": {},
	"docs":    {},
}

// Normalize case-folds and trims a tenant identifier. Every identification
// path (header, query parameter, JWT claim) goes through Normalize so the
// same tenant never resolves differently depending on transport.
func Normalize(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

// ValidateSubdomain checks a normalized subdomain against the format rules.
func ValidateSubdomain(subdomain string) error {
	if len(subdomain) < MinSubdomainLength || len(subdomain) > MaxSubdomainLength {
		return fmt.Errorf("%w: %q must be %d-%d characters", ErrInvalidSubdomain, subdomain, MinSubdomainLength, MaxSubdomainLength)
	}
	if !subdomainPattern.MatchString(subdomain) {
		return fmt.Errorf("%w: %q", ErrInvalidSubdomain, subdomain)
	}
	if _, reserved := reservedSubdomains[subdomain]; reserved {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidSubdomain, subdomain)
	}
	return nil
}
