package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stwalsh4118/rentdesk/internal/config"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database wraps the gorm handle and, for PostgreSQL, the pgx pool behind it.
type Database struct {
	DB    *gorm.DB
	Pool  *pgxpool.Pool
	sqlDB *sql.DB
}

// Open connects to the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Database, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return NewSQLite(cfg.SQLitePath)
	case config.DriverPostgres, "":
		return NewPostgresPool(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		// duplicate keys and FK violations surface as gorm.ErrDuplicatedKey / ErrForeignKeyViolated
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}
}

// Migrate creates or updates the schema for every model.
func (db *Database) Migrate(ctx context.Context) error {
	if err := db.DB.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Ping checks if the database connection is alive.
func (db *Database) Ping(ctx context.Context) error {
	if db.Pool != nil && db.sqlDB != nil {
		return db.Pool.Ping(ctx)
	}
	if db.sqlDB == nil {
		return fmt.Errorf("database is not open")
	}
	return db.sqlDB.PingContext(ctx)
}

// Close releases the underlying connections. It is safe to call more than once.
func (db *Database) Close() {
	if db.sqlDB != nil {
		_ = db.sqlDB.Close()
		db.sqlDB = nil
	}
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Stats returns statistics about the pgx pool, or nil for SQLite.
func (db *Database) Stats() *pgxpool.Stat {
	if db.Pool == nil {
		return nil
	}
	return db.Pool.Stat()
}
