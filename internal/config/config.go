package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	AppEnv                string
	LogLevel              slog.Level
	ApiServicePort        string
	ApiPrefix             string
	DatabaseDriver        string
	SQLitePath            string
	PostgreSQLHost        string
	PostgreSQLPort        int64
	PostgreSQLUser        string
	PostgreSQLPassword    string
	PostgreSQLDatabase    string
	DatabaseMaxRetries    int64
	JWTSecret             string
	AccessTokenExpiration int64
	RedisHost             string
	RedisPort             int64
	RedisPassword         string
	RedisDB               int64
	UserCacheTTL          int64 // User record cache TTL in seconds
	ValidationLocale      string
	ShutdownTimeout       time.Duration

	// Terminal client
	ClientAPIURL  string
	ClientTimeout time.Duration
	ClientLogFile string
}

// LoadConfig reads the environment, after loading an optional .env file from
// the working directory. Variables already set in the environment win.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:                getEnv("APP_ENV", "development"),                      // Default development
		LogLevel:              getLogLevel(),                                         // Default INFO
		ApiServicePort:        getEnv("API_SERVICE_PORT", "8000"),                    // Default 8000
		ApiPrefix:             normalizePrefix(getEnv("API_PREFIX", "/api")),         // Default /api
		DatabaseDriver:        getDatabaseDriver(),                                   // Default postgres
		SQLitePath:            getEnv("SQLITE_PATH", "usuarios.db"),                  // Default ./usuarios.db
		PostgreSQLHost:        getEnv("POSTGRESQL_HOST", "db"),                       // Default db
		PostgreSQLPort:        getEnvAsInt64("POSTGRESQL_PORT", 5432),                // Default 5432
		PostgreSQLUser:        getEnv("POSTGRESQL_USER", "usuarios_user"),            // Default user
		PostgreSQLPassword:    getEnv("POSTGRESQL_PASSWORD", "usuarios_password"),    // Default password
		PostgreSQLDatabase:    getEnv("POSTGRESQL_DATABASE", "usuarios_db"),          // Default database name
		DatabaseMaxRetries:    getEnvAsInt64("DATABASE_MAX_RETRIES", 30),             // Default 30 attempts
		JWTSecret:             getEnv("JWT_SECRET", "usuarios_secret"),               // Default secret key
		AccessTokenExpiration: getEnvAsInt64("ACCESS_TOKEN_EXPIRATION", 900),         // Default 15 minutes
		RedisHost:             getEnv("REDIS_HOST", "redis"),                         // Default redis
		RedisPort:             getEnvAsInt64("REDIS_PORT", 6379),                     // Default 6379
		RedisPassword:         getEnv("REDIS_PASSWORD", ""),                          // Default empty
		RedisDB:               getEnvAsInt64("REDIS_DATABASE", 0),                    // Default 0
		UserCacheTTL:          getEnvAsInt64("USER_CACHE_TTL", 300),                  // Default 5 minutes
		ValidationLocale:      getEnv("VALIDATION_LOCALE", "pt_BR"),                  // Default pt_BR
		ShutdownTimeout:       getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),  // Default 10s
		ClientAPIURL:          getEnv("CLIENT_API_URL", "http://localhost:8000/api"), // Default local server
		ClientTimeout:         getEnvAsDuration("CLIENT_TIMEOUT", 30*time.Second),    // Default 30s
		ClientLogFile:         getEnv("CLIENT_LOG_FILE", "usuarios-client.log"),      // TUI owns stdout
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
			return value
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := time.ParseDuration(valueStr); err == nil {
			return value
		}
	}
	return fallback
}

func getLogLevel() slog.Level {
	levelStr := getEnv("LOG_LEVEL", "INFO")

	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getDatabaseDriver() string {
	switch strings.ToLower(getEnv("DATABASE_DRIVER", DriverPostgres)) {
	case DriverSQLite, "sqlite3":
		return DriverSQLite
	default:
		return DriverPostgres
	}
}

// normalizePrefix turns "api", "/api/" and "/api" into "/api"; an empty value
// mounts the routes at the root.
func normalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return ""
	}
	return "/" + prefix
}

// PostgresDSN builds the connection string for the postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
		c.PostgreSQLHost,
		c.PostgreSQLUser,
		c.PostgreSQLPassword,
		c.PostgreSQLDatabase,
		c.PostgreSQLPort,
	)
}

// RedisAddr returns host:port for the redis client.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}
