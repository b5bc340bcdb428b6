package jwt_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovenkit/ovenkit/pkg/jwt"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := jwt.New(nil)
	assert.ErrorIs(t, err, jwt.ErrMissingSigningKey)

	svc, err := jwt.New(testKey)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateAndParse(t *testing.T) {
	t.Parallel()

	svc, err := jwt.New(testKey)
	require.NoError(t, err)

	t.Run("round trip preserves claims", func(t *testing.T) {
		t.Parallel()

		issued := jwt.Claims{
			Subject:   "user-1",
			TenantID:  "3f6f0f74-6dcb-4d5e-a6bb-5a2a5a0f8f11",
			Issuer:    "auth.ovenkit.app",
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
			IssuedAt:  time.Now().Unix(),
		}
		token, err := svc.Generate(issued)
		require.NoError(t, err)

		var parsed jwt.Claims
		require.NoError(t, svc.Parse(token, &parsed))
		assert.Equal(t, issued, parsed)
	})

	t.Run("tampered payload is rejected", func(t *testing.T) {
		t.Parallel()

		token, err := svc.Generate(jwt.Claims{Subject: "user-1"})
		require.NoError(t, err)

		var parsed jwt.Claims
		err = svc.Parse(token+"x", &parsed)
		assert.ErrorIs(t, err, jwt.ErrInvalidSignature)
	})

	t.Run("wrong key is rejected", func(t *testing.T) {
		t.Parallel()

		other, err := jwt.New([]byte("ffffffffffffffffffffffffffffffff"))
		require.NoError(t, err)

		token, err := other.Generate(jwt.Claims{Subject: "user-1"})
		require.NoError(t, err)

		var parsed jwt.Claims
		assert.ErrorIs(t, svc.Parse(token, &parsed), jwt.ErrInvalidSignature)
	})

	t.Run("malformed token is rejected", func(t *testing.T) {
		t.Parallel()

		var parsed jwt.Claims
		assert.ErrorIs(t, svc.Parse("definitely-not-a-jwt", &parsed), jwt.ErrInvalidToken)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		t.Parallel()

		token, err := svc.Generate(jwt.Claims{
			Subject:   "user-1",
			ExpiresAt: time.Now().Add(-time.Minute).Unix(),
		})
		require.NoError(t, err)

		var parsed jwt.Claims
		assert.ErrorIs(t, svc.Parse(token, &parsed), jwt.ErrExpiredToken)
	})

	t.Run("not yet valid token is rejected", func(t *testing.T) {
		t.Parallel()

		token, err := svc.Generate(jwt.Claims{
			Subject:   "user-1",
			NotBefore: time.Now().Add(time.Hour).Unix(),
		})
		require.NoError(t, err)

		var parsed jwt.Claims
		assert.ErrorIs(t, svc.Parse(token, &parsed), jwt.ErrInvalidToken)
	})
}

func TestFromBearer(t *testing.T) {
	t.Parallel()

	t.Run("extracts the token", func(t *testing.T) {
		t.Parallel()

		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer abc.def.ghi")
		assert.Equal(t, "abc.def.ghi", jwt.FromBearer(req))
	})

	t.Run("empty without header", func(t *testing.T) {
		t.Parallel()

		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		assert.Empty(t, jwt.FromBearer(req))
	})

	t.Run("empty for non-bearer schemes", func(t *testing.T) {
		t.Parallel()

		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		assert.Empty(t, jwt.FromBearer(req))
	})
}
