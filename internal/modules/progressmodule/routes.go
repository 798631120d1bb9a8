package progressmodule

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avelar/watchtrack/internal/apiroutes"
	"github.com/avelar/watchtrack/internal/database"
)

// entryResponse decorates a watch entry with its derived percentage,
// which is recomputed on every serialization and never stored.
type entryResponse struct {
	database.WatchEntry
	PercentageWatched float64 `json:"percentage_watched"`
}

func newEntryResponse(e database.WatchEntry) entryResponse {
	return entryResponse{WatchEntry: e, PercentageWatched: e.PercentageWatched()}
}

// RegisterRoutes mounts the watchlist and progress endpoints. Every route
// requires the X-User-Id header, and every failure (lookups included)
// reports 400.
func (m *Module) RegisterRoutes(router *gin.Engine) {
	router.GET("/me/watchlist", RequireUser(), m.getWatchlist)

	watchlist := router.Group("/watchlist", RequireUser())
	{
		watchlist.POST("/movies/:id", m.addMovie)
		watchlist.POST("/series/:id", m.addSeries)
	}

	router.PATCH("/progress/series/:id", RequireUser(), m.updateSeriesProgress)

	apiroutes.Register("/me/watchlist", "GET", "List the caller's watch entries.")
	apiroutes.Register("/watchlist/movies/:id", "POST", "Add a movie to the caller's watchlist.")
	apiroutes.Register("/watchlist/series/:id", "POST", "Add a series to the caller's watchlist.")
	apiroutes.Register("/progress/series/:id", "PATCH", "Update the caller's progress on a series.")
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes the request body into dst. A missing or empty body is
// treated as an empty payload, not an error.
func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (m *Module) getWatchlist(c *gin.Context) {
	entries, err := m.service.ListWatchlist(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, newEntryResponse(e))
	}
	c.JSON(http.StatusOK, out)
}

func (m *Module) addMovie(c *gin.Context) {
	movieID, ok := parseID(c)
	if !ok {
		return
	}

	entry, err := m.service.AddMovie(currentUserID(c), movieID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, newEntryResponse(*entry))
}

func (m *Module) addSeries(c *gin.Context) {
	seriesID, ok := parseID(c)
	if !ok {
		return
	}

	entry, err := m.service.AddSeries(currentUserID(c), seriesID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, newEntryResponse(*entry))
}

func (m *Module) updateSeriesProgress(c *gin.Context) {
	seriesID, ok := parseID(c)
	if !ok {
		return
	}
	var payload ProgressPatch
	if err := bindJSON(c, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := m.service.UpdateSeriesProgress(currentUserID(c), seriesID, payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, newEntryResponse(*entry))
}
