package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.ExpiryPeriod)
	assert.Equal(t, "auth-token", cfg.Session.CookieName)
	assert.Equal(t, "none", cfg.Email.Provider)
	assert.Equal(t, 1024, cfg.AppCache.Size)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("APP_CACHE_SIZE", "0")
	t.Setenv("EMAIL_PROVIDER", "smtp")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpiryPeriod)
	assert.Zero(t, cfg.AppCache.Size)
	assert.Equal(t, "smtp", cfg.Email.Provider)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("DB_NAME: from_file\nGENAI_MODEL: test-model\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("GENAI_MODEL", "env-model")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from_file", cfg.Database.Name)
	assert.Equal(t, "env-model", cfg.GenAI.Model, "environment wins over the file")
}

func TestProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", EnvProduction)

	_, err := Load()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
