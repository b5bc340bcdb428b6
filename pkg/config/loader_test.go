package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovenkit/ovenkit/pkg/config"
)

// Each test uses its own struct type: parsed configs are cached per type for
// the lifetime of the process.

func TestLoad(t *testing.T) {
	type serviceConfig struct {
		URL     string        `env:"LOADER_TEST_URL,required"`
		Timeout time.Duration `env:"LOADER_TEST_TIMEOUT" envDefault:"5s"`
		Debug   bool          `env:"LOADER_TEST_DEBUG" envDefault:"false"`
	}

	t.Setenv("LOADER_TEST_URL", "mongodb://localhost:27017")

	var cfg serviceConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "mongodb://localhost:27017", cfg.URL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.False(t, cfg.Debug)

	// Later loads observe the cached value, not the mutated environment.
	t.Setenv("LOADER_TEST_URL", "mongodb://elsewhere:27017")
	var again serviceConfig
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "mongodb://localhost:27017", again.URL)
}

func TestLoadMissingRequired(t *testing.T) {
	type strictConfig struct {
		Key string `env:"LOADER_TEST_MISSING_KEY,required"`
	}

	var cfg strictConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoadNilPointer(t *testing.T) {
	t.Parallel()

	var cfg *struct{}
	err := config.Load(cfg)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestMustLoadPanics(t *testing.T) {
	type panicConfig struct {
		Key string `env:"LOADER_TEST_PANIC_KEY,required"`
	}

	assert.Panics(t, func() {
		var cfg panicConfig
		config.MustLoad(&cfg)
	})
}
