package apiroutes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterAndGet(t *testing.T) {
	ClearForTesting()

	Register("/movies/", "GET", "List all movies.")
	Register("/movies/", "POST", "Create a movie.")

	routes := Get()
	assert.Len(t, routes, 2)
	assert.Equal(t, "/movies/", routes[0].Path)
	assert.Equal(t, "GET", routes[0].Method)
}

func TestRegisterDedupesMethodAndPath(t *testing.T) {
	ClearForTesting()

	Register("/health", "GET", "old")
	Register("/health", "GET", "new")

	routes := Get()
	assert.Len(t, routes, 1)
	assert.Equal(t, "new", routes[0].Description)
}

func TestGetReturnsCopy(t *testing.T) {
	ClearForTesting()

	Register("/health", "GET", "Service health check.")
	routes := Get()
	routes[0].Description = "mutated"

	assert.Equal(t, "Service health check.", Get()[0].Description)
}
