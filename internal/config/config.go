package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the reminder service.
// It includes the environment, server ports, geocoding provider selection,
// notification gateway address, and database configuration.
//
// Fields:
// - Env: The current environment (e.g., local, dev, prod).
// - APIPort: The port for the reminder HTTP API.
// - HealthPort: The port for the monitoring (health/metrics) server.
// - ProviderType: The type of geocoding provider to use (google, nominatim).
// - APIKey: The API key for accessing external services (required for Google).
// - NotifyURL: The push gateway endpoint notifications are posted to.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env          string         `yaml:"env"`              // Env is the current environment: local, dev, prod.
	APIPort      int            `yaml:"api.port"`         // APIPort is the reminder HTTP API port.
	HealthPort   int            `yaml:"health.port"`      // HealthPort is the monitoring server port.
	ProviderType string         `yaml:"provider.type"`    // ProviderType specifies which geocoding provider to use.
	APIKey       string         `yaml:"provider.api_key"` // The API key for accessing external services.
	NotifyURL    string         `yaml:"notify.url"`       // The push gateway endpoint for notifications.
	Database     PostgresConfig `yaml:"postgres"`         // Database holds the postgres database configuration.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`                        // Host is the database server address.
	Port     string `yaml:"port"     env-default:"5432"` // Port is the database server port.
	User     string `yaml:"user"`                        // User is the database user.
	Password string `yaml:"password"`                    // Password is the database user's password.
	Name     string `yaml:"db_name"`                     // Name is the name of the database.
}

// MustLoad loads the configuration from the environment and returns a Config struct.
func MustLoad() *Config {
	_ = godotenv.Load()

	apiPort, err := strconv.Atoi(setDefaultEnv("WAYPOST_API_PORT", "8080"))
	if err != nil {
		panic("failed to parse port for API server from configuration")
	}

	healthPort, err := strconv.Atoi(setDefaultEnv("WAYPOST_HEALTH_PORT", "9090"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	return &Config{
		Env:          setDefaultEnv("WAYPOST_ENV", "production"),
		APIPort:      apiPort,
		HealthPort:   healthPort,
		ProviderType: setDefaultEnv("WAYPOST_PROVIDER_TYPE", "nominatim"),
		APIKey:       os.Getenv("WAYPOST_PROVIDER_KEY"),
		NotifyURL:    os.Getenv("WAYPOST_NOTIFY_URL"),
		Database: PostgresConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USERNAME"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
	}
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
