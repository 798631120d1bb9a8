package database

import (
	"time"

	"gorm.io/gorm"
)

// Watch entry status values.
const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Movie represents a movie in the catalog
type Movie struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Genre       string    `json:"genre"`
	ReleaseYear int       `json:"release_year"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Movie) TableName() string {
	return "movies"
}

// Series represents a series in the catalog. Seasons are loaded on demand
// and serialized separately, so detail responses can embed them while
// create/update responses leave them out.
type Series struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Synopsis     string    `json:"synopsis"`
	Genres       string    `json:"genres"`
	ImageURL     string    `json:"image_url"`
	TotalSeasons int       `gorm:"default:0" json:"total_seasons"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Seasons []Season `gorm:"foreignKey:SeriesID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Series) TableName() string {
	return "series"
}

// Season belongs to a series. (series_id, number) is unique: a series
// cannot have two seasons with the same number.
type Season struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	SeriesID      uint `gorm:"not null;uniqueIndex:idx_seasons_series_number" json:"series_id"`
	Number        int  `gorm:"not null;uniqueIndex:idx_seasons_series_number" json:"number"`
	EpisodesCount int  `gorm:"default:0" json:"episodes_count"`
}

func (Season) TableName() string {
	return "seasons"
}

// User is plain reference data. Identity comes from the X-User-Id request
// header; there are no credentials or sessions.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// WatchEntry links a user to exactly one movie or series and records how
// much of it they have watched. The movie/series exclusivity is enforced
// by the create paths, not by a schema constraint.
type WatchEntry struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null" json:"user_id"`
	MovieID         *uint     `json:"movie_id"`
	SeriesID        *uint     `json:"series_id"`
	Status          string    `gorm:"default:in_progress" json:"status"`
	CurrentSeason   int       `gorm:"default:0" json:"current_season"`
	CurrentEpisode  int       `gorm:"default:0" json:"current_episode"`
	WatchedEpisodes int       `gorm:"default:0" json:"watched_episodes"`
	TotalEpisodes   int       `gorm:"default:0" json:"total_episodes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	User   User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Movie  *Movie  `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE" json:"-"`
	Series *Series `gorm:"foreignKey:SeriesID;constraint:OnDelete:CASCADE" json:"-"`
}

func (WatchEntry) TableName() string {
	return "watch_entries"
}

// PercentageWatched computes how much of the entry has been consumed,
// capped at 100. It is derived on serialization and never stored.
func (e *WatchEntry) PercentageWatched() float64 {
	if e.TotalEpisodes == 0 {
		return 0.0
	}
	percentage := float64(e.WatchedEpisodes) / float64(e.TotalEpisodes) * 100
	if percentage > 100.0 {
		return 100.0
	}
	return percentage
}

// MarkAsWatched completes the entry: watched episodes are forced up to the
// total and the status flips to completed. Persists immediately.
func (e *WatchEntry) MarkAsWatched(db *gorm.DB) error {
	e.Status = StatusCompleted
	e.WatchedEpisodes = e.TotalEpisodes
	e.UpdatedAt = time.Now().UTC()
	return db.Save(e).Error
}
