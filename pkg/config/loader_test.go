package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stroomai/leadgen/pkg/config"
)

type testConfig struct {
	Operator string        `env:"OPERATOR_EMAIL,required"`
	Window   string        `env:"RESPONSE_WINDOW" envDefault:"2 business days"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"60s"`
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("reads values and defaults", func(t *testing.T) {
		t.Parallel()
		var cfg testConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{
			"OPERATOR_EMAIL": "ops@example.com",
		}))
		require.NoError(t, err)
		assert.Equal(t, "ops@example.com", cfg.Operator)
		assert.Equal(t, "2 business days", cfg.Window)
		assert.Equal(t, 60*time.Second, cfg.Timeout)
	})

	t.Run("missing required value", func(t *testing.T) {
		t.Parallel()
		var cfg testConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{}))
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
		assert.Contains(t, err.Error(), "OPERATOR_EMAIL")
	})

	t.Run("invalid duration", func(t *testing.T) {
		t.Parallel()
		var cfg testConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{
			"OPERATOR_EMAIL": "ops@example.com",
			"TIMEOUT":        "soon",
		}))
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		t.Parallel()
		var cfg *testConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})
}
