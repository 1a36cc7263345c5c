package main

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrateLogger adapts the standard logger to migrate.Logger, mirroring
// internal/db's migrateLogger.
type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...interface{}) { log.Printf("[migrate] "+format, v...) }
func (migrateLogger) Verbose() bool                          { return false }

// applyMigrations brings db up to the latest embedded schema version.
//
// The *migrate.Migrate built here must never have Close called on it: its
// sqlite driver was built with WithInstance over db, and that driver's
// Close also closes db itself, which the caller still owns.
func applyMigrations(db *sql.DB) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("dyclee-demo: iofs source driver: %w", err)
	}
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("dyclee-demo: sqlite migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("dyclee-demo: migrate instance: %w", err)
	}
	m.Log = migrateLogger{}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("dyclee-demo: migrate up: %w", err)
	}
	return nil
}
