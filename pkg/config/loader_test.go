package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BryanPMX/CAF-sub004/pkg/config"
	"github.com/BryanPMX/CAF-sub004/pkg/session"
)

type testConfig struct {
	Name    string        `env:"TEST_CFG_NAME" envDefault:"fallback"`
	Count   int           `env:"TEST_CFG_COUNT" envDefault:"3" validate:"gte=1"`
	Timeout time.Duration `env:"TEST_CFG_TIMEOUT" envDefault:"5s"`
}

func TestLoad(t *testing.T) {
	t.Run("applies env defaults", func(t *testing.T) {
		var cfg testConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "fallback", cfg.Name)
		assert.Equal(t, 3, cfg.Count)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
	})

	t.Run("reads environment overrides", func(t *testing.T) {
		t.Setenv("TEST_CFG_NAME", "from-env")
		t.Setenv("TEST_CFG_TIMEOUT", "250ms")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "from-env", cfg.Name)
		assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	})

	t.Run("rejects values failing validate tags", func(t *testing.T) {
		t.Setenv("TEST_CFG_COUNT", "0")

		var cfg testConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrValidation)
	})

	t.Run("rejects nil pointer", func(t *testing.T) {
		err := config.Load[testConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})
}

func TestLoad_SessionPolicy(t *testing.T) {
	t.Run("defaults are a valid policy", func(t *testing.T) {
		var cfg session.Config
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, session.DefaultConfig(), cfg)
	})

	t.Run("inactivity timeout must not exceed session timeout", func(t *testing.T) {
		t.Setenv("SESSION_TIMEOUT", "1h")
		t.Setenv("SESSION_INACTIVITY_TIMEOUT", "2h")

		var cfg session.Config
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrValidation)
	})

	t.Run("session cap must admit at least one session", func(t *testing.T) {
		t.Setenv("SESSION_MAX_CONCURRENT", "0")

		var cfg session.Config
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrValidation)
	})
}
