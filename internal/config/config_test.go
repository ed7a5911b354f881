package config_test

import (
	"testing"

	"github.com/nearby-labs/waypost/internal/config"
	"github.com/stretchr/testify/assert"
)

func Test_MustLoadFromEnv(t *testing.T) {
	t.Setenv("WAYPOST_ENV", "local")
	t.Setenv("WAYPOST_PROVIDER_TYPE", "google")
	t.Setenv("WAYPOST_PROVIDER_KEY", "testAPIKey")
	t.Setenv("WAYPOST_NOTIFY_URL", "https://push.example.com/waypost")
	t.Setenv("DB_HOST", "testHost")
	t.Setenv("DB_PORT", "12345")
	t.Setenv("DB_USERNAME", "admin")
	t.Setenv("DB_PASSWORD", "adminpass")
	t.Setenv("DB_NAME", "testName")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "testHost", cfg.Database.Host)
	assert.Equal(t, "12345", cfg.Database.Port)
	assert.Equal(t, "admin", cfg.Database.User)
	assert.Equal(t, "adminpass", cfg.Database.Password)
	assert.Equal(t, "testName", cfg.Database.Name)
	assert.Equal(t, 8080, cfg.APIPort)
	assert.Equal(t, 9090, cfg.HealthPort)
	assert.Equal(t, "google", cfg.ProviderType)
	assert.Equal(t, "testAPIKey", cfg.APIKey)
	assert.Equal(t, "https://push.example.com/waypost", cfg.NotifyURL)
}

func TestMustLoad_APIPortError(t *testing.T) {
	t.Setenv("WAYPOST_API_PORT", "error_value")

	assert.PanicsWithValue(t, "failed to parse port for API server from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_HealthPortError(t *testing.T) {
	t.Setenv("WAYPOST_HEALTH_PORT", "error_value")

	assert.PanicsWithValue(t, "failed to parse port for monitoring server from configuration", func() {
		config.MustLoad()
	})
}
