package apierror

import (
	"encoding/json"
	"net/http"
)

// Error is a machine-readable API error: a stable code paired with an HTTP
// status and optional detail fields that are flattened into the response body.
type Error struct {
	Status  int            `json:"-"`
	Code    string         `json:"error"`
	Message string         `json:"message"`
	Details map[string]any `json:"-"`
}

// Error implements the error interface.
func (e Error) Error() string {
	return e.Code
}

// WithMessage returns a copy with a different human-readable message.
func (e Error) WithMessage(msg string) Error {
	e.Message = msg
	return e
}

// WithDetails returns a copy carrying extra response fields. Keys collide
// with nothing: "error" and "message" are reserved and skipped.
func (e Error) WithDetails(details map[string]any) Error {
	merged := make(map[string]any, len(e.Details)+len(details))
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		if k == "error" || k == "message" {
			continue
		}
		merged[k] = v
	}
	e.Details = merged
	return e
}

// MarshalJSON flattens Details next to the code and message.
func (e Error) MarshalJSON() ([]byte, error) {
	body := make(map[string]any, len(e.Details)+2)
	for k, v := range e.Details {
		body[k] = v
	}
	body["error"] = e.Code
	body["message"] = e.Message
	return json.Marshal(body)
}

// Predefined tenancy error codes. Status classes are part of the contract:
// lookup failures are 404/403/402, infrastructure failures are a generic 500
// so callers can tell tenant-state rejections from outages.
var (
	TenantNotFound      = Error{Status: http.StatusNotFound, Code: "TENANT_NOT_FOUND", Message: "tenant not found"}
	TenantSuspended     = Error{Status: http.StatusForbidden, Code: "TENANT_SUSPENDED", Message: "tenant account is suspended"}
	TrialExpired        = Error{Status: http.StatusPaymentRequired, Code: "TRIAL_EXPIRED", Message: "trial period has expired"}
	TenantRequired      = Error{Status: http.StatusBadRequest, Code: "TENANT_REQUIRED", Message: "request requires a tenant"}
	LimitExceeded       = Error{Status: http.StatusForbidden, Code: "LIMIT_EXCEEDED", Message: "plan limit reached"}
	FeatureNotAvailable = Error{Status: http.StatusForbidden, Code: "FEATURE_NOT_AVAILABLE", Message: "feature is not available on the current plan"}
	TenantError         = Error{Status: http.StatusInternalServerError, Code: "TENANT_ERROR", Message: "internal error"}
)

// New builds a custom error value.
func New(status int, code, message string) Error {
	return Error{Status: status, Code: code, Message: message}
}

// Write renders the error as a JSON response.
func Write(w http.ResponseWriter, e Error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}
