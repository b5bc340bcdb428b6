package apierror_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovenkit/ovenkit/pkg/apierror"
)

func TestMarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("flattens details", func(t *testing.T) {
		t.Parallel()

		e := apierror.TrialExpired.WithDetails(map[string]any{"daysExpired": 3})

		raw, err := json.Marshal(e)
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "TRIAL_EXPIRED", body["error"])
		assert.Equal(t, "trial period has expired", body["message"])
		assert.Equal(t, float64(3), body["daysExpired"])
	})

	t.Run("reserved keys cannot be overwritten", func(t *testing.T) {
		t.Parallel()

		e := apierror.TenantNotFound.WithDetails(map[string]any{
			"error":   "SOMETHING_ELSE",
			"message": "spoofed",
			"hint":    "check the subdomain",
		})

		raw, err := json.Marshal(e)
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "TENANT_NOT_FOUND", body["error"])
		assert.Equal(t, "tenant not found", body["message"])
		assert.Equal(t, "check the subdomain", body["hint"])
	})
}

func TestWithMessage(t *testing.T) {
	t.Parallel()

	e := apierror.TenantError.WithMessage("directory unavailable")
	assert.Equal(t, "directory unavailable", e.Message)
	// The original is untouched.
	assert.Equal(t, "internal error", apierror.TenantError.Message)
}

func TestWrite(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	apierror.Write(rec, apierror.LimitExceeded.WithDetails(map[string]any{
		"current": 5,
		"limit":   5,
		"plan":    "free",
	}))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "LIMIT_EXCEEDED", body["error"])
	assert.Equal(t, float64(5), body["current"])
	assert.Equal(t, float64(5), body["limit"])
	assert.Equal(t, "free", body["plan"])
}

func TestStatusCodes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusNotFound, apierror.TenantNotFound.Status)
	assert.Equal(t, http.StatusForbidden, apierror.TenantSuspended.Status)
	assert.Equal(t, http.StatusPaymentRequired, apierror.TrialExpired.Status)
	assert.Equal(t, http.StatusBadRequest, apierror.TenantRequired.Status)
	assert.Equal(t, http.StatusForbidden, apierror.LimitExceeded.Status)
	assert.Equal(t, http.StatusForbidden, apierror.FeatureNotAvailable.Status)
	assert.Equal(t, http.StatusInternalServerError, apierror.TenantError.Status)
}
