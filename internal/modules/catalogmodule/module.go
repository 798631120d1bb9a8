// Package catalogmodule manages the movie and series catalog: CRUD for
// both entity kinds plus season registration under a series.
package catalogmodule

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
	ModuleID   = "system.catalog"
	ModuleName = "Catalog Manager"
)

// Module represents the catalog module
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

// Init builds the catalog service
func (m *Module) Init(db *gorm.DB, bus events.EventBus) error {
	m.service = NewService(db, bus)
	return nil
}
