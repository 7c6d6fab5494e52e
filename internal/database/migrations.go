package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed migrations
var migrationFS embed.FS

func migrationSource(driver string) (source.Driver, error) {
	src, err := iofs.New(migrationFS, "migrations/"+driver)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s migrations: %w", driver, err)
	}
	return src, nil
}

// NewMigrator returns a migrator that opens its own connection from cfg.
// Callers must Close it.
func NewMigrator(cfg *Config) (*migrate.Migrate, error) {
	src, err := migrationSource(cfg.Driver)
	if err != nil {
		return nil, err
	}
	mig, err := migrate.NewWithSourceInstance("iofs", src, cfg.MigrateURL())
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return mig, nil
}

// MigrateSQLite applies the embedded SQLite migrations over an already open
// connection. In-memory databases only exist on their own connection pool, so
// they cannot be migrated through a URL.
func MigrateSQLite(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying DB: %w", err)
	}

	src, err := migrationSource(DriverSQLite)
	if err != nil {
		return err
	}
	// Closing the migrator would close sqlDB as well; only the source is released.
	defer src.Close()

	drv, err := sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite migrate driver: %w", err)
	}

	mig, err := migrate.NewWithInstance("iofs", src, "sqlite3", drv)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
