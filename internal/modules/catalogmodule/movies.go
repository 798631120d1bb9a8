package catalogmodule

import (
	"errors"

	"gorm.io/gorm"

	"github.com/avelar/watchtrack/internal/database"
	"github.com/avelar/watchtrack/internal/events"
	"github.com/avelar/watchtrack/internal/svcerr"
)

// MovieCreate is the payload for creating a movie.
type MovieCreate struct {
	Title       string `json:"title"`
	Genre       string `json:"genre"`
	ReleaseYear int    `json:"release_year"`
}

// MoviePatch is the payload for a partial movie update. Absent fields
// keep their prior values.
type MoviePatch struct {
	Title       *string `json:"title"`
	Genre       *string `json:"genre"`
	ReleaseYear *int    `json:"release_year"`
}

// ListMovies returns all movies in storage order.
func (s *Service) ListMovies() ([]database.Movie, error) {
	var movies []database.Movie
	if err := s.db.Find(&movies).Error; err != nil {
		return nil, svcerr.Wrap(svcerr.Unknown, "failed to list movies", err)
	}
	return movies, nil
}

// CreateMovie validates and inserts a new movie.
func (s *Service) CreateMovie(payload MovieCreate) (*database.Movie, error) {
	if payload.Title == "" {
		return nil, svcerr.NewValidation("title is required")
	}

	movie := database.Movie{
		Title:       payload.Title,
		Genre:       payload.Genre,
		ReleaseYear: payload.ReleaseYear,
	}
	if err := s.db.Create(&movie).Error; err != nil {
		return nil, svcerr.Wrap(svcerr.Unknown, "failed to create movie", err)
	}

	s.log.Debug("movie created", "id", movie.ID, "title", movie.Title)
	s.publish(events.EventMovieCreated, map[string]interface{}{"id": movie.ID, "title": movie.Title})
	return &movie, nil
}

// GetMovie returns a movie by id.
func (s *Service) GetMovie(id uint) (*database.Movie, error) {
	var movie database.Movie
	if err := s.db.First(&movie, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, svcerr.NewNotFound("movie not found")
		}
		return nil, svcerr.Wrap(svcerr.Unknown, "failed to get movie", err)
	}
	return &movie, nil
}

// UpdateMovie applies only the fields present in the payload.
func (s *Service) UpdateMovie(id uint, payload MoviePatch) (*database.Movie, error) {
	movie, err := s.GetMovie(id)
	if err != nil {
		return nil, err
	}

	if payload.Title != nil {
		movie.Title = *payload.Title
	}
	if payload.Genre != nil {
		movie.Genre = *payload.Genre
	}
	if payload.ReleaseYear != nil {
		movie.ReleaseYear = *payload.ReleaseYear
	}
	if err := s.db.Save(movie).Error; err != nil {
		return nil, svcerr.Wrap(svcerr.Unknown, "failed to update movie", err)
	}

	s.publish(events.EventMovieUpdated, map[string]interface{}{"id": movie.ID})
	return movie, nil
}

// DeleteMovie removes a movie; watch entries referencing it cascade away.
func (s *Service) DeleteMovie(id uint) error {
	movie, err := s.GetMovie(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(movie).Error; err != nil {
		return svcerr.Wrap(svcerr.Unknown, "failed to delete movie", err)
	}

	s.publish(events.EventMovieDeleted, map[string]interface{}{"id": id})
	return nil
}
