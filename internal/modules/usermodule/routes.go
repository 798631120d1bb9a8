package usermodule

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelar/watchtrack/internal/apiroutes"
	"github.com/avelar/watchtrack/internal/database"
	"github.com/avelar/watchtrack/internal/events"
)

type userCreate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RegisterRoutes mounts the user endpoints.
func (m *Module) RegisterRoutes(router *gin.Engine) {
	users := router.Group("/users")
	{
		users.GET("/", m.listUsers)
		users.POST("/", m.createUser)
	}

	apiroutes.Register("/users/", "GET", "List all users.")
	apiroutes.Register("/users/", "POST", "Create a user.")
}

func (m *Module) listUsers(c *gin.Context) {
	var users []database.User
	if err := m.db.Find(&users).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (m *Module) createUser(c *gin.Context) {
	var payload userCreate
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if payload.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	user := database.User{Name: payload.Name, Email: payload.Email}
	if err := m.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if m.bus != nil {
		m.bus.PublishAsync(events.New(events.EventUserCreated, ModuleID, map[string]interface{}{
			"id":   user.ID,
			"name": user.Name,
		}))
	}
	c.JSON(http.StatusCreated, user)
}
