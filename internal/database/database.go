package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/config"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var embedMigrations embed.FS

const retryDelay = 2 * time.Second

// ConnectDatabase opens the configured store, retrying until it answers a
// ping, and applies the embedded migrations.
func ConnectDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	if cfg.DatabaseDriver == config.DriverSQLite {
		logger.Info("🔌 [Database] Opening SQLite...", "path", cfg.SQLitePath)
		return OpenSQLite(ctx, cfg.SQLitePath, logger)
	}

	logger.Info("🔌 [Database] Connecting to PostgreSQL...",
		"host", cfg.PostgreSQLHost,
		"port", cfg.PostgreSQLPort,
		"database", cfg.PostgreSQLDatabase,
	)

	maxRetries := int(cfg.DatabaseMaxRetries)
	if maxRetries < 1 {
		maxRetries = 1
	}

	var db *gorm.DB
	var err error

	for i := 0; i < maxRetries; i++ {
		db, err = gorm.Open(postgres.Open(cfg.PostgresDSN()), gormConfig(logger))
		if err == nil {
			if err = ping(ctx, db); err == nil {
				break
			}
		}

		if i < maxRetries-1 {
			logger.Warn("⏳ [Database] Connection failed, retrying...",
				"attempt", i+1,
				"max_retries", maxRetries,
				"retry_in", retryDelay,
				"error", err,
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryDelay):
			}
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL after %d attempts: %w", maxRetries, err)
	}

	logger.Info("✅ [Database] Database connection established")

	if err := Migrate(ctx, db, config.DriverPostgres, logger); err != nil {
		return nil, err
	}
	return db, nil
}

// OpenSQLite opens a SQLite database (a file path or a "file:...?mode=memory"
// URI) and migrates it. Connections are capped at one: SQLite serializes
// writers anyway and an in-memory database lives only as long as its
// connection.
func OpenSQLite(ctx context.Context, dsn string, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(ctx, db, config.DriverSQLite, logger); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate applies the embedded goose migrations for driver.
func Migrate(ctx context.Context, gormDB *gorm.DB, driver string, logger *slog.Logger) error {
	logger.Info("🔄 [Database] Running migrations...", "driver", driver)

	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	dialect := goose.DialectPostgres
	if driver == config.DriverSQLite {
		dialect = goose.DialectSQLite3
	}

	migrations, err := fs.Sub(embedMigrations, "migrations/"+driver)
	if err != nil {
		return fmt.Errorf("failed to locate %s migrations: %w", driver, err)
	}

	provider, err := goose.NewProvider(dialect, sqlDB, migrations)
	if err != nil {
		return fmt.Errorf("failed to create goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}

	logger.Info("✅ [Database] Migrations completed successfully", "applied", len(results))
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// gormConfig routes gorm's own logging through slog and lets the dialect
// translate constraint violations into gorm.ErrDuplicatedKey.
func gormConfig(logger *slog.Logger) *gorm.Config {
	level := gormlogger.Warn
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		level = gormlogger.Info
	}

	return &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(
			slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
			gormlogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  level,
				IgnoreRecordNotFoundError: true,
			},
		),
	}
}
