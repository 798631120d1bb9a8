package progressmodule

import (
	"errors"

	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/avelar/watchtrack/internal/database"
	"github.com/avelar/watchtrack/internal/events"
	"github.com/avelar/watchtrack/internal/logger"
	"github.com/avelar/watchtrack/internal/svcerr"
)

// ProgressPatch is the payload for a series progress update. Absent
// fields keep their prior values.
type ProgressPatch struct {
	WatchedEpisodes *int    `json:"watched_episodes"`
	TotalEpisodes   *int    `json:"total_episodes"`
	Status          *string `json:"status"`
}

// Service holds the watchlist and progress business logic.
type Service struct {
	db  *gorm.DB
	bus events.EventBus
	log hclog.Logger
}

// NewService creates a progress service
func NewService(db *gorm.DB, bus events.EventBus) *Service {
	return &Service{
		db:  db,
		bus: bus,
		log: logger.Named("progress"),
	}
}

func (s *Service) publish(eventType events.EventType, data map[string]interface{}) {
	if s.bus == nil {
		return
	}
	s.bus.PublishAsync(events.New(eventType, ModuleID, data))
}

// ListWatchlist returns every watch entry belonging to the user.
func (s *Service) ListWatchlist(userID uint) ([]database.WatchEntry, error) {
	var entries []database.WatchEntry
	if err := s.db.Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return nil, svcerr.Wrap(svcerr.Unknown, "failed to list watchlist", err)
	}
	return entries, nil
}

// AddMovie creates a watch entry linking the user to a movie. A movie is
// a single unit of consumption, so total episodes starts at 1. Adding the
// same movie twice creates two entries.
func (s *Service) AddMovie(userID, movieID uint) (*database.WatchEntry, error) {
	var user database.User
	var movie database.Movie
	userErr := s.db.First(&user, userID).Error
	movieErr := s.db.First(&movie, movieID).Error
	if errors.Is(userErr, gorm.ErrRecordNotFound) || errors.Is(movieErr, gorm.ErrRecordNotFound) {
		return nil, svcerr.NewNotFound("user or movie not found")
	}
	if userErr != nil {
		return nil, svcerr.Wrap(svcerr.Unknown, "failed to get user", userErr)
	}
	if movieErr != nil {
		return nil, svcerr.Wrap(svcerr.Unknown, "failed to get movie", movieErr)
	}

	entry := database.WatchEntry{
		UserID:        userID,
		MovieID:       &movieID,
		Status:        database.StatusInProgress,
		TotalEpisodes: 1,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, svcerr.Wrap(svcerr.Unknown, "failed to add movie to watchlist", err)
	}

	s.log.Debug("movie added to watchlist", "user_id", userID, "movie_id", movieID)
	s.publish(events.EventWatchlistMovieAdded, map[string]interface{}{
		"user_id":  userID,
		"movie_id": movieID,
		"entry_id": entry.ID,
	})
	return &entry, nil
}

// AddSeries creates a watch entry linking the user to a series. Total
// episodes starts at 0 until a progress update supplies it.
func (s *Service) AddSeries(userID, seriesID uint) (*database.WatchEntry, error) {
	var user database.User
	var series database.Series
	userErr := s.db.First(&user, userID).Error
	seriesErr := s.db.First(&series, seriesID).Error
	if errors.Is(userErr, gorm.ErrRecordNotFound) || errors.Is(seriesErr, gorm.ErrRecordNotFound) {
		return nil, svcerr.NewNotFound("user or series not found")
	}
	if userErr != nil {
		return nil, svcerr.Wrap(svcerr.Unknown, "failed to get user", userErr)
	}
	if seriesErr != nil {
		return nil, svcerr.Wrap(svcerr.Unknown, "failed to get series", seriesErr)
	}

	entry := database.WatchEntry{
		UserID:   userID,
		SeriesID: &seriesID,
		Status:   database.StatusInProgress,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, svcerr.Wrap(svcerr.Unknown, "failed to add series to watchlist", err)
	}

	s.log.Debug("series added to watchlist", "user_id", userID, "series_id", seriesID)
	s.publish(events.EventWatchlistSeriesAdded, map[string]interface{}{
		"user_id":   userID,
		"series_id": seriesID,
		"entry_id":  entry.ID,
	})
	return &entry, nil
}

// UpdateSeriesProgress updates the entry for (user, series).
//
// The clamp ceiling is the stored total from BEFORE this update; only
// when that stored total is zero does the ceiling fall back to the
// incoming total (or zero). The new total is assigned after the clamp,
// so the stored total can end up larger than the ceiling that was used.
// This ordering is part of the contract; do not fold the two steps.
func (s *Service) UpdateSeriesProgress(userID, seriesID uint, payload ProgressPatch) (*database.WatchEntry, error) {
	var entry database.WatchEntry
	err := s.db.Where("user_id = ? AND series_id = ?", userID, seriesID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, svcerr.NewNotFound("watch entry not found")
		}
		return nil, svcerr.Wrap(svcerr.Unknown, "failed to get watch entry", err)
	}

	ceiling := entry.TotalEpisodes
	if ceiling == 0 && payload.TotalEpisodes != nil {
		ceiling = *payload.TotalEpisodes
	}

	watched := entry.WatchedEpisodes
	if payload.WatchedEpisodes != nil {
		watched = *payload.WatchedEpisodes
	}
	if watched > ceiling {
		watched = ceiling
	}
	entry.WatchedEpisodes = watched

	if payload.TotalEpisodes != nil {
		entry.TotalEpisodes = *payload.TotalEpisodes
	}
	if payload.Status != nil {
		entry.Status = *payload.Status
	}

	if err := s.db.Save(&entry).Error; err != nil {
		return nil, svcerr.Wrap(svcerr.Unknown, "failed to update progress", err)
	}

	s.publish(events.EventProgressUpdated, map[string]interface{}{
		"user_id":   userID,
		"series_id": seriesID,
		"watched":   entry.WatchedEpisodes,
		"total":     entry.TotalEpisodes,
	})
	return &entry, nil
}
