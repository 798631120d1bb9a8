package server

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/avelar/watchtrack/internal/config"
	"github.com/avelar/watchtrack/internal/database"
	"github.com/avelar/watchtrack/internal/events"
	"github.com/avelar/watchtrack/internal/logger"
	"github.com/avelar/watchtrack/internal/modules/modulemanager"

	// Import all modules to trigger their registration
	_ "github.com/avelar/watchtrack/internal/modules/catalogmodule"
	_ "github.com/avelar/watchtrack/internal/modules/databasemodule"
	_ "github.com/avelar/watchtrack/internal/modules/progressmodule"
	_ "github.com/avelar/watchtrack/internal/modules/usermodule"
)

var systemEventBus events.EventBus

// SetupRouter configures and returns the main router. The database must
// be initialized before this is called.
func SetupRouter() (*gin.Engine, error) {
	cfg := config.Get()

	r := gin.Default()

	if cfg.Server.EnableCORS {
		r.Use(corsMiddleware())
	}

	bus := events.NewBus(logger.Named("events"), 256)
	if err := bus.Start(context.Background()); err != nil {
		return nil, err
	}
	attachEventLogging(bus)
	systemEventBus = bus

	if err := modulemanager.LoadAll(database.GetDB(), bus); err != nil {
		return nil, err
	}

	setupRoutes(r, bus)
	modulemanager.RegisterAllRoutes(r)

	bus.PublishAsync(events.New(events.EventSystemStarted, "server", nil))
	return r, nil
}

// Shutdown stops the event bus, draining pending events.
func Shutdown(ctx context.Context) error {
	if systemEventBus == nil {
		return nil
	}
	systemEventBus.PublishAsync(events.New(events.EventSystemStopped, "server", nil))
	return systemEventBus.Stop(ctx)
}

// attachEventLogging subscribes a debug log line to every event the bus
// delivers, so /api/events/recent and the logs tell the same story.
func attachEventLogging(bus events.EventBus) {
	bus.Subscribe("", func(e events.Event) {
		logger.Debug("Event processed: %s (id=%s source=%s)", e.Type, e.ID, e.Source)
	})
}

// corsMiddleware allows cross-origin requests from any origin.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-User-Id")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
