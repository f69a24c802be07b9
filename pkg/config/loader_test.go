package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/pkg/config"
)

type apiConfig struct {
	BaseURL string        `env:"TEST_NOTIFY_API_URL,required"`
	Timeout time.Duration `env:"TEST_NOTIFY_TIMEOUT" envDefault:"15s"`
}

type storeConfig struct {
	Driver string `env:"TEST_NOTIFY_STORE" envDefault:"file"`
}

func TestLoad(t *testing.T) {
	t.Run("parses env with defaults", func(t *testing.T) {
		config.Reset()
		t.Setenv("TEST_NOTIFY_API_URL", "https://portal.example.com")

		var cfg apiConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "https://portal.example.com", cfg.BaseURL)
		assert.Equal(t, 15*time.Second, cfg.Timeout)
	})

	t.Run("caches per type", func(t *testing.T) {
		config.Reset()
		t.Setenv("TEST_NOTIFY_API_URL", "https://first.example.com")

		var first apiConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("TEST_NOTIFY_API_URL", "https://second.example.com")
		var second apiConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "https://first.example.com", second.BaseURL)

		var other storeConfig
		require.NoError(t, config.Load(&other))
		assert.Equal(t, "file", other.Driver)
	})

	t.Run("missing required", func(t *testing.T) {
		config.Reset()
		os.Unsetenv("TEST_NOTIFY_API_URL")

		var cfg apiConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		var cfg *apiConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})

	t.Run("must load panics", func(t *testing.T) {
		config.Reset()
		os.Unsetenv("TEST_NOTIFY_API_URL")

		var cfg apiConfig
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})
}

func TestLoadEnv(t *testing.T) {
	config.Reset()
	os.Unsetenv("TEST_NOTIFY_STORE")
	t.Cleanup(func() { os.Unsetenv("TEST_NOTIFY_STORE") })

	path := filepath.Join(t.TempDir(), "custom.env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_NOTIFY_STORE=redis\n"), 0o600))

	require.NoError(t, config.LoadEnv(path))

	var cfg storeConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "redis", cfg.Driver)

	assert.ErrorIs(t, config.LoadEnv(filepath.Join(t.TempDir(), "missing.env")), config.ErrLoadingEnvFile)
}
