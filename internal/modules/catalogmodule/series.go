package catalogmodule

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/avelar/watchtrack/internal/database"
	"github.com/avelar/watchtrack/internal/events"
	"github.com/avelar/watchtrack/internal/svcerr"
)

// SeriesCreate is the payload for creating a series.
type SeriesCreate struct {
	Title        string `json:"title"`
	Synopsis     string `json:"synopsis"`
	Genres       string `json:"genres"`
	ImageURL     string `json:"image_url"`
	TotalSeasons int    `json:"total_seasons"`
}

// SeriesPatch is the payload for a partial series update.
type SeriesPatch struct {
	Title        *string `json:"title"`
	Synopsis     *string `json:"synopsis"`
	Genres       *string `json:"genres"`
	ImageURL     *string `json:"image_url"`
	TotalSeasons *int    `json:"total_seasons"`
}

// SeasonCreate is the payload for adding a season to a series.
type SeasonCreate struct {
	Number        int `json:"number"`
	EpisodesCount int `json:"episodes_count"`
}

// ListSeries returns all series with their seasons embedded.
func (s *Service) ListSeries() ([]database.Series, error) {
	var series []database.Series
	if err := s.db.Preload("Seasons").Find(&series).Error; err != nil {
		return nil, svcerr.Wrap(svcerr.Unknown, "failed to list series", err)
	}
	return series, nil
}

// CreateSeries validates and inserts a new series.
func (s *Service) CreateSeries(payload SeriesCreate) (*database.Series, error) {
	if payload.Title == "" {
		return nil, svcerr.NewValidation("title is required")
	}

	series := database.Series{
		Title:        payload.Title,
		Synopsis:     payload.Synopsis,
		Genres:       payload.Genres,
		ImageURL:     payload.ImageURL,
		TotalSeasons: payload.TotalSeasons,
	}
	if err := s.db.Create(&series).Error; err != nil {
		return nil, svcerr.Wrap(svcerr.Unknown, "failed to create series", err)
	}

	s.log.Debug("series created", "id", series.ID, "title", series.Title)
	s.publish(events.EventSeriesCreated, map[string]interface{}{"id": series.ID, "title": series.Title})
	return &series, nil
}

// GetSeries returns a series by id with its seasons embedded.
func (s *Service) GetSeries(id uint) (*database.Series, error) {
	var series database.Series
	if err := s.db.Preload("Seasons").First(&series, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, svcerr.NewNotFound("series not found")
		}
		return nil, svcerr.Wrap(svcerr.Unknown, "failed to get series", err)
	}
	return &series, nil
}

// UpdateSeries applies only the fields present in the payload.
func (s *Service) UpdateSeries(id uint, payload SeriesPatch) (*database.Series, error) {
	var series database.Series
	if err := s.db.First(&series, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, svcerr.NewNotFound("series not found")
		}
		return nil, svcerr.Wrap(svcerr.Unknown, "failed to get series", err)
	}

	if payload.Title != nil {
		series.Title = *payload.Title
	}
	if payload.Synopsis != nil {
		series.Synopsis = *payload.Synopsis
	}
	if payload.Genres != nil {
		series.Genres = *payload.Genres
	}
	if payload.ImageURL != nil {
		series.ImageURL = *payload.ImageURL
	}
	if payload.TotalSeasons != nil {
		series.TotalSeasons = *payload.TotalSeasons
	}
	if err := s.db.Save(&series).Error; err != nil {
		return nil, svcerr.Wrap(svcerr.Unknown, "failed to update series", err)
	}

	s.publish(events.EventSeriesUpdated, map[string]interface{}{"id": series.ID})
	return &series, nil
}

// DeleteSeries removes a series; its seasons and watch entries cascade.
func (s *Service) DeleteSeries(id uint) error {
	var series database.Series
	if err := s.db.First(&series, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return svcerr.NewNotFound("series not found")
		}
		return svcerr.Wrap(svcerr.Unknown, "failed to get series", err)
	}
	if err := s.db.Delete(&series).Error; err != nil {
		return svcerr.Wrap(svcerr.Unknown, "failed to delete series", err)
	}

	s.publish(events.EventSeriesDeleted, map[string]interface{}{"id": id})
	return nil
}

// AddSeason creates a season under a series. The (series_id, number) pair
// is unique; the storage layer's duplicate-key error is translated to a
// conflict.
func (s *Service) AddSeason(seriesID uint, payload SeasonCreate) (*database.Season, error) {
	var series database.Series
	if err := s.db.First(&series, seriesID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, svcerr.NewNotFound("series not found")
		}
		return nil, svcerr.Wrap(svcerr.Unknown, "failed to get series", err)
	}

	if payload.Number == 0 {
		return nil, svcerr.NewValidation("number is required")
	}

	season := database.Season{
		SeriesID:      seriesID,
		Number:        payload.Number,
		EpisodesCount: payload.EpisodesCount,
	}
	if err := s.db.Create(&season).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, svcerr.NewConflict(fmt.Sprintf("season %d already exists for this series", payload.Number))
		}
		return nil, svcerr.Wrap(svcerr.Unknown, "failed to add season", err)
	}

	s.publish(events.EventSeasonAdded, map[string]interface{}{
		"series_id": seriesID,
		"number":    season.Number,
	})
	return &season, nil
}
