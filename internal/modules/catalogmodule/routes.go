package catalogmodule

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avelar/watchtrack/internal/apiroutes"
	"github.com/avelar/watchtrack/internal/database"
	"github.com/avelar/watchtrack/internal/svcerr"
)

// seriesDetail embeds the season list in a series response. Create and
// update responses return the bare Series instead.
type seriesDetail struct {
	database.Series
	Seasons []database.Season `json:"seasons"`
}

func newSeriesDetail(s database.Series) seriesDetail {
	seasons := s.Seasons
	if seasons == nil {
		seasons = []database.Season{}
	}
	return seriesDetail{Series: s, Seasons: seasons}
}

// RegisterRoutes mounts the catalog endpoints.
func (m *Module) RegisterRoutes(router *gin.Engine) {
	movies := router.Group("/movies")
	{
		movies.GET("/", m.listMovies)
		movies.POST("/", m.createMovie)
		movies.GET("/:id", m.getMovie)
		movies.PUT("/:id", m.updateMovie)
		movies.DELETE("/:id", m.deleteMovie)
	}

	series := router.Group("/series")
	{
		series.GET("/", m.listSeries)
		series.POST("/", m.createSeries)
		series.GET("/:id", m.getSeries)
		series.PUT("/:id", m.updateSeries)
		series.DELETE("/:id", m.deleteSeries)
		series.POST("/:id/seasons", m.addSeason)
	}

	apiroutes.Register("/movies/", "GET", "List all movies.")
	apiroutes.Register("/movies/", "POST", "Create a movie.")
	apiroutes.Register("/movies/:id", "GET", "Get a movie by id.")
	apiroutes.Register("/movies/:id", "PUT", "Update a movie.")
	apiroutes.Register("/movies/:id", "DELETE", "Delete a movie.")
	apiroutes.Register("/series/", "GET", "List all series with seasons.")
	apiroutes.Register("/series/", "POST", "Create a series.")
	apiroutes.Register("/series/:id", "GET", "Get a series with seasons.")
	apiroutes.Register("/series/:id", "PUT", "Update a series.")
	apiroutes.Register("/series/:id", "DELETE", "Delete a series.")
	apiroutes.Register("/series/:id/seasons", "POST", "Add a season to a series.")
}

// errorResponse translates a service failure into an HTTP response.
// NotFound maps to notFoundStatus; validation, conflict, and unknown
// failures all map to 400.
func errorResponse(c *gin.Context, err error, notFoundStatus int) {
	status := http.StatusBadRequest
	if svcerr.IsNotFound(err) {
		status = notFoundStatus
	}
	c.JSON(status, gin.H{"error": err.Error()})
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

func (m *Module) listMovies(c *gin.Context) {
	movies, err := m.service.ListMovies()
	if err != nil {
		errorResponse(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, movies)
}

func (m *Module) createMovie(c *gin.Context) {
	var payload MovieCreate
	if err := bindJSON(c, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	movie, err := m.service.CreateMovie(payload)
	if err != nil {
		errorResponse(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusCreated, movie)
}

func (m *Module) getMovie(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	movie, err := m.service.GetMovie(id)
	if err != nil {
		errorResponse(c, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, movie)
}

func (m *Module) updateMovie(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var payload MoviePatch
	if err := bindJSON(c, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	movie, err := m.service.UpdateMovie(id, payload)
	if err != nil {
		errorResponse(c, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, movie)
}

func (m *Module) deleteMovie(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := m.service.DeleteMovie(id); err != nil {
		errorResponse(c, err, http.StatusNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

func (m *Module) listSeries(c *gin.Context) {
	series, err := m.service.ListSeries()
	if err != nil {
		errorResponse(c, err, http.StatusBadRequest)
		return
	}

	out := make([]seriesDetail, 0, len(series))
	for _, s := range series {
		out = append(out, newSeriesDetail(s))
	}
	c.JSON(http.StatusOK, out)
}

func (m *Module) createSeries(c *gin.Context) {
	var payload SeriesCreate
	if err := bindJSON(c, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	series, err := m.service.CreateSeries(payload)
	if err != nil {
		errorResponse(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusCreated, series)
}

func (m *Module) getSeries(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	series, err := m.service.GetSeries(id)
	if err != nil {
		errorResponse(c, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, newSeriesDetail(*series))
}

func (m *Module) updateSeries(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var payload SeriesPatch
	if err := bindJSON(c, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	series, err := m.service.UpdateSeries(id, payload)
	if err != nil {
		errorResponse(c, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, series)
}

func (m *Module) deleteSeries(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := m.service.DeleteSeries(id); err != nil {
		errorResponse(c, err, http.StatusNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

// addSeason reports every failure as 400, including a missing series.
func (m *Module) addSeason(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var payload SeasonCreate
	if err := bindJSON(c, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	season, err := m.service.AddSeason(id, payload)
	if err != nil {
		errorResponse(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusCreated, season)
}
