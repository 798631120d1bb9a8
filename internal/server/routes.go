package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avelar/watchtrack/internal/apiroutes"
	"github.com/avelar/watchtrack/internal/events"
	"github.com/avelar/watchtrack/internal/server/handlers"
)

// setupRoutes configures the service-level routes. Entity routes are
// mounted by their modules.
func setupRoutes(r *gin.Engine, bus events.EventBus) {
	r.GET("/health", handlers.HandleHealthCheck)

	api := r.Group("/api")
	{
		api.GET("/routes", handlers.HandleRouteList)

		api.GET("/events/stats", func(c *gin.Context) {
			c.JSON(http.StatusOK, bus.GetStats())
		})
		api.GET("/events/recent", func(c *gin.Context) {
			limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
			c.JSON(http.StatusOK, gin.H{"events": bus.Recent(limit)})
		})
	}

	apiroutes.Register("/health", "GET", "Service health check.")
	apiroutes.Register("/api/routes", "GET", "API route discovery.")
	apiroutes.Register("/api/events/stats", "GET", "Event bus counters.")
	apiroutes.Register("/api/events/recent", "GET", "Recently processed events.")
}
