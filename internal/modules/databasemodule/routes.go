package databasemodule

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelar/watchtrack/internal/apiroutes"
	"github.com/avelar/watchtrack/internal/config"
	"github.com/avelar/watchtrack/internal/database"
)

// RegisterRoutes mounts the database health endpoints.
func (m *Module) RegisterRoutes(router *gin.Engine) {
	db := router.Group("/api/database")
	{
		db.GET("/status", m.getStatus)
		db.GET("/stats", m.getStats)
	}

	apiroutes.Register("/api/database/status", "GET", "Database connectivity check.")
	apiroutes.Register("/api/database/stats", "GET", "Connection pool statistics.")
}

// getStatus pings the database and reports connectivity.
func (m *Module) getStatus(c *gin.Context) {
	sqlDB, err := m.db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Failed to get database instance: " + err.Error(),
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Database ping failed: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "connected",
		"database": config.DatabaseURL(config.Get().Database),
	})
}

// getStats returns connection pool statistics.
func (m *Module) getStats(c *gin.Context) {
	sqlDB, err := m.db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get connection pool stats: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pool": database.ConnStats(sqlDB),
	})
}
