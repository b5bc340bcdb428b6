package tenant_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ovenkit/ovenkit/pkg/tenant"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "acme", tenant.Normalize("  ACME "))
	assert.Equal(t, "my-shop", tenant.Normalize("My-Shop"))
}

func TestValidateSubdomain(t *testing.T) {
	t.Parallel()

	valid := []string{
		"acme",
		"my-shop",
		"a1b",
		"shop123",
		strings.Repeat("a", 30),
	}
	for _, sub := range valid {
		sub := sub
		t.Run("valid "+sub, func(t *testing.T) {
			t.Parallel()
			assert.NoError(t, tenant.ValidateSubdomain(sub))
		})
	}

	invalid := map[string]string{
		"empty":            "",
		"too short":        "ab",
		"too long":         strings.Repeat("a", 31),
		"leading hyphen":   "-acme",
		"trailing hyphen":  "acme-",
		"underscore":       "my_shop",
		"uppercase":        "Acme",
		"space":            "my shop",
		"special chars":    "shop!",
		"reserved www":     "www",
		"reserved api":     "api",
		"reserved admin":   "admin",
		"reserved status":  "status",
		"reserved support": "support",
	}
	for name, sub := range invalid {
		sub := sub
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, tenant.ValidateSubdomain(sub), tenant.ErrInvalidSubdomain)
		})
	}
}
