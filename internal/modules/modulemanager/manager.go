// Package modulemanager wires the application together: modules register
// themselves at import time and the manager migrates, initializes, and
// mounts their routes at startup.
package modulemanager

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/avelar/watchtrack/internal/events"
	"github.com/avelar/watchtrack/internal/logger"
)

// Module defines the interface that all modules must implement
type Module interface {
	ID() string                                  // Unique identifier for the module
	Name() string                                // Display name for the module
	Core() bool                                  // Core modules cannot be disabled
	Migrate(db *gorm.DB) error                   // Run database migrations
	Init(db *gorm.DB, bus events.EventBus) error // Initialize the module
}

// RouteRegistrar is an optional interface for modules that register routes
type RouteRegistrar interface {
	RegisterRoutes(router *gin.Engine)
}

// ModuleRegistry manages module registration and initialization
type ModuleRegistry struct {
	modules         map[string]Module
	disabledModules map[string]bool
	mu              sync.RWMutex
	initialized     bool
}

// Registry is the global module registry
var Registry = &ModuleRegistry{
	modules:         make(map[string]Module),
	disabledModules: make(map[string]bool),
}

// Register adds a module to the global registry
func Register(m Module) {
	Registry.Register(m)
}

// Register adds a module to the registry
func (r *ModuleRegistry) Register(m Module) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		logger.Warn("Module %s (%s) registered after initialization", m.Name(), m.ID())
	}

	r.modules[m.ID()] = m
	logger.Info("Module registered: %s (%s)", m.Name(), m.ID())
}

// LoadAll migrates and initializes all registered modules
func LoadAll(db *gorm.DB, bus events.EventBus) error {
	return Registry.LoadAll(db, bus)
}

// LoadAll migrates and initializes all registered modules in a stable order
func (r *ModuleRegistry) LoadAll(db *gorm.DB, bus events.EventBus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		logger.Warn("Module system already initialized")
		return nil
	}

	config, err := LoadConfig(GetDefaultConfigPath())
	if err != nil {
		logger.Warn("Failed to load module config, using defaults: %v", err)
		config = &ModuleConfig{}
	}
	for _, moduleID := range config.Modules.Disabled {
		r.disabledModules[moduleID] = true
		logger.Info("Module disabled via configuration: %s", moduleID)
	}

	logger.Info("Loading %d modules...", len(r.modules))

	for _, module := range r.sortedModules() {
		if r.disabledModules[module.ID()] {
			if module.Core() {
				return fmt.Errorf("attempted to disable core module: %s", module.ID())
			}
			logger.Warn("Skipping module %s (disabled)", module.Name())
			continue
		}

		if err := module.Migrate(db); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", module.Name(), err)
		}
		if err := module.Init(db, bus); err != nil {
			return fmt.Errorf("failed to initialize %s: %w", module.Name(), err)
		}
		logger.Info("Module loaded: %s", module.Name())
	}

	r.initialized = true
	return nil
}

// RegisterAllRoutes mounts routes for every enabled module that has them
func RegisterAllRoutes(router *gin.Engine) {
	Registry.RegisterAllRoutes(router)
}

// RegisterAllRoutes mounts routes for every enabled module that has them
func (r *ModuleRegistry) RegisterAllRoutes(router *gin.Engine) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, module := range r.sortedModules() {
		if r.disabledModules[module.ID()] {
			continue
		}
		if registrar, ok := module.(RouteRegistrar); ok {
			registrar.RegisterRoutes(router)
			logger.Debug("Routes registered for module: %s", module.ID())
		}
	}
}

// sortedModules returns modules ordered by ID so load order is stable.
// Caller must hold at least a read lock.
func (r *ModuleRegistry) sortedModules() []Module {
	ids := make([]string, 0, len(r.modules))
	for id := range r.modules {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]Module, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.modules[id])
	}
	return out
}

// ResetForTesting clears registry state. For use in tests only.
func ResetForTesting() {
	Registry.mu.Lock()
	defer Registry.mu.Unlock()
	Registry.modules = make(map[string]Module)
	Registry.disabledModules = make(map[string]bool)
	Registry.initialized = false
}
