// Package progressmodule tracks per-user watch progress: the watchlist
// of watch entries and the series progress updates.
package progressmodule

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
	ModuleID   = "system.progress"
	ModuleName = "Progress Tracker"
)

// Module represents the progress module
type Module struct {
	service *Service
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
	return true
}

// Migrate is a no-op; the database module owns the entity schema.
func (m *Module) Migrate(db *gorm.DB) error {
	return nil
}

// Init builds the progress service
func (m *Module) Init(db *gorm.DB, bus events.EventBus) error {
	m.service = NewService(db, bus)
	return nil
}
