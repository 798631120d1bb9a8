// Package databasemodule owns schema migrations for all entities, tunes
// the connection pool, and exposes database health routes.
package databasemodule

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/avelar/watchtrack/internal/database"
	"github.com/avelar/watchtrack/internal/events"
	"github.com/avelar/watchtrack/internal/logger"
	"github.com/avelar/watchtrack/internal/modules/modulemanager"
)

// Auto-register the module when imported
func init() {
	Register()
}

const (
	// ModuleID is the unique identifier for the database module
	ModuleID = "system.database"

	// ModuleName is the display name for the database module
	ModuleName = "Database Manager"
)

// Module implements database functionality as a core module
type Module struct {
	db          *gorm.DB
	eventBus    events.EventBus
	initialized bool
}

// Register registers this module with the module system
func Register() {
	modulemanager.Register(&Module{})
}

// ID returns the unique module identifier
func (m *Module) ID() string {
	return ModuleID
}

// Name returns the module display name
func (m *Module) Name() string {
	return ModuleName
}

// Core returns whether this is a core module
func (m *Module) Core() bool {
	return true
}

// Migrate auto-migrates the full entity schema
func (m *Module) Migrate(db *gorm.DB) error {
	logger.Info("Migrating entity schema")

	err := db.AutoMigrate(
		&database.User{},
		&database.Movie{},
		&database.Series{},
		&database.Season{},
		&database.WatchEntry{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate entity schema: %w", err)
	}
	return nil
}

// Init stores handles and applies connection pool settings
func (m *Module) Init(db *gorm.DB, bus events.EventBus) error {
	m.db = db
	m.eventBus = bus

	if err := configureConnectionPool(db); err != nil {
		return fmt.Errorf("failed to configure connection pool: %w", err)
	}

	m.initialized = true
	return nil
}
