package jwt

import (
	"net/http"
	"strings"
)

// FromBearer extracts the compact token from an "Authorization: Bearer"
// header. Returns an empty string when no bearer token is present.
func FromBearer(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
