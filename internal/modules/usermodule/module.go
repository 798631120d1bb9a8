// Package usermodule exposes user reference data. Users here are plain
// rows the watchlist endpoints resolve X-User-Id against; there is no
// signup, credential, or session handling.
package usermodule

import (
	"gorm.io/gorm"

	"github.com/avelar/watchtrack/internal/events"
	"github.com/avelar/watchtrack/internal/modules/modulemanager"
)

// Auto-register the module when imported
func init() {
	Register()
}

const (
	ModuleID   = "system.users"
	ModuleName = "User Manager"
)

// Module represents the user module
type Module struct {
	db  *gorm.DB
	bus events.EventBus
}

// Register registers this module with the module system
func Register() {
	modulemanager.Register(&Module{})
}

func (m *Module) ID() string {
	return ModuleID
}

func (m *Module) Name() string {
	return ModuleName
}

func (m *Module) Core() bool {
	return false
}

// Migrate is a no-op; the database module owns the entity schema.
func (m *Module) Migrate(db *gorm.DB) error {
	return nil
}

// Init stores handles for the route handlers
func (m *Module) Init(db *gorm.DB, bus events.EventBus) error {
	m.db = db
	m.bus = bus
	return nil
}
