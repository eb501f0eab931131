package config_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/config"
)

var configKeys = []string{
	"APP_ENV", "LOG_LEVEL", "API_SERVICE_PORT", "API_PREFIX", "DATABASE_DRIVER",
	"SQLITE_PATH", "POSTGRESQL_HOST", "POSTGRESQL_PORT", "REDIS_HOST", "REDIS_PORT",
	"USER_CACHE_TTL", "VALIDATION_LOCALE", "SHUTDOWN_TIMEOUT", "CLIENT_API_URL",
	"CLIENT_TIMEOUT",
}

// clearEnv unsets the config keys for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		if value, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, value) })
		}
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := config.LoadConfig()

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "8000", cfg.ApiServicePort)
	assert.Equal(t, "/api", cfg.ApiPrefix)
	assert.Equal(t, config.DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, "pt_BR", cfg.ValidationLocale)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "http://localhost:8000/api", cfg.ClientAPIURL)
	assert.Equal(t, 30*time.Second, cfg.ClientTimeout)
}

func TestLoadConfig_Success(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_SERVICE_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "sqlite3")
	t.Setenv("SQLITE_PATH", "/tmp/users.db")
	t.Setenv("USER_CACHE_TTL", "60")
	t.Setenv("VALIDATION_LOCALE", "en")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := config.LoadConfig()

	assert.Equal(t, "9090", cfg.ApiServicePort)
	assert.Equal(t, config.DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "/tmp/users.db", cfg.SQLitePath)
	assert.Equal(t, int64(60), cfg.UserCacheTTL)
	assert.Equal(t, "en", cfg.ValidationLocale)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTGRESQL_PORT", "not-a-number")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	t.Setenv("LOG_LEVEL", "loud")

	cfg := config.LoadConfig()

	assert.Equal(t, int64(5432), cfg.PostgreSQLPort)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadConfig_ApiPrefix(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"/api", "/api"},
		{"api", "/api"},
		{"/api/", "/api"},
		{"/v1/api", "/v1/api"},
		{"", ""},
		{"/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("API_PREFIX", tt.value)
			assert.Equal(t, tt.want, config.LoadConfig().ApiPrefix)
		})
	}
}

func TestConfig_Addresses(t *testing.T) {
	cfg := &config.Config{
		PostgreSQLHost:     "db",
		PostgreSQLPort:     5433,
		PostgreSQLUser:     "u",
		PostgreSQLPassword: "p",
		PostgreSQLDatabase: "d",
		RedisHost:          "cache",
		RedisPort:          6380,
	}

	assert.Equal(t, "host=db user=u password=p dbname=d port=5433 sslmode=disable TimeZone=UTC", cfg.PostgresDSN())
	assert.Equal(t, "cache:6380", cfg.RedisAddr())
}
