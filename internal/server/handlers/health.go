// Package handlers contains the service-level HTTP handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelar/watchtrack/internal/apiroutes"
)

// HandleHealthCheck returns the basic health status of the service
func HandleHealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "watchtrack",
	})
}

// HandleRouteList returns every route registered in the API registry
func HandleRouteList(c *gin.Context) {
	routes := apiroutes.Get()
	c.JSON(http.StatusOK, gin.H{
		"count":  len(routes),
		"routes": routes,
	})
}
