package progressmodule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/avelar/watchtrack/internal/database"
	"github.com/avelar/watchtrack/internal/svcerr"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	assert.NoError(t, err)

	sqlDB, err := db.DB()
	assert.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	assert.NoError(t, db.AutoMigrate(
		&database.User{},
		&database.Movie{},
		&database.Series{},
		&database.Season{},
		&database.WatchEntry{},
	))
	return NewService(db, nil), db
}

func seed(t *testing.T, db *gorm.DB) (database.User, database.Movie, database.Series) {
	t.Helper()

	user := database.User{Name: "ana"}
	assert.NoError(t, db.Create(&user).Error)
	movie := database.Movie{Title: "Film B"}
	assert.NoError(t, db.Create(&movie).Error)
	series := database.Series{Title: "Show A"}
	assert.NoError(t, db.Create(&series).Error)
	return user, movie, series
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func TestAddMovieSeedsEntry(t *testing.T) {
	svc, db := newTestService(t)
	user, movie, _ := seed(t, db)

	entry, err := svc.AddMovie(user.ID, movie.ID)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, entry.UserID)
	assert.NotNil(t, entry.MovieID)
	assert.Equal(t, movie.ID, *entry.MovieID)
	assert.Nil(t, entry.SeriesID)
	assert.Equal(t, 1, entry.TotalEpisodes)
	assert.Equal(t, 0, entry.WatchedEpisodes)
	assert.Equal(t, database.StatusInProgress, entry.Status)
	assert.Equal(t, 0.0, entry.PercentageWatched())
}

func TestAddMovieMissingUserOrMovie(t *testing.T) {
	svc, db := newTestService(t)
	user, movie, _ := seed(t, db)

	_, err := svc.AddMovie(999, movie.ID)
	assert.True(t, svcerr.IsNotFound(err))

	_, err = svc.AddMovie(user.ID, 999)
	assert.True(t, svcerr.IsNotFound(err))
}

func TestAddMovieTwiceCreatesTwoEntries(t *testing.T) {
	svc, db := newTestService(t)
	user, movie, _ := seed(t, db)

	first, err := svc.AddMovie(user.ID, movie.ID)
	assert.NoError(t, err)
	second, err := svc.AddMovie(user.ID, movie.ID)
	assert.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	entries, err := svc.ListWatchlist(user.ID)
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestAddSeriesSeedsEntry(t *testing.T) {
	svc, db := newTestService(t)
	user, _, series := seed(t, db)

	entry, err := svc.AddSeries(user.ID, series.ID)
	assert.NoError(t, err)
	assert.NotNil(t, entry.SeriesID)
	assert.Equal(t, series.ID, *entry.SeriesID)
	assert.Nil(t, entry.MovieID)
	assert.Equal(t, 0, entry.TotalEpisodes)
	assert.Equal(t, 0, entry.WatchedEpisodes)
	assert.Equal(t, 0.0, entry.PercentageWatched())
}

func TestListWatchlistScopedToUser(t *testing.T) {
	svc, db := newTestService(t)
	user, movie, _ := seed(t, db)
	other := database.User{Name: "bruno"}
	assert.NoError(t, db.Create(&other).Error)

	_, err := svc.AddMovie(user.ID, movie.ID)
	assert.NoError(t, err)

	entries, err := svc.ListWatchlist(other.ID)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUpdateProgressCeilingFallsBackToPayloadTotal(t *testing.T) {
	svc, db := newTestService(t)
	user, _, series := seed(t, db)

	_, err := svc.AddSeries(user.ID, series.ID)
	assert.NoError(t, err)

	// Stored total is 0, so the clamp ceiling falls back to the incoming
	// total: watched = min(5, 10).
	entry, err := svc.UpdateSeriesProgress(user.ID, series.ID, ProgressPatch{
		WatchedEpisodes: intPtr(5),
		TotalEpisodes:   intPtr(10),
	})
	assert.NoError(t, err)
	assert.Equal(t, 5, entry.WatchedEpisodes)
	assert.Equal(t, 10, entry.TotalEpisodes)
	assert.Equal(t, 50.0, entry.PercentageWatched())
}

func TestUpdateProgressClampsToOldTotal(t *testing.T) {
	svc, db := newTestService(t)
	user, _, series := seed(t, db)

	_, err := svc.AddSeries(user.ID, series.ID)
	assert.NoError(t, err)

	_, err = svc.UpdateSeriesProgress(user.ID, series.ID, ProgressPatch{TotalEpisodes: intPtr(10)})
	assert.NoError(t, err)

	// Old total (10) is the ceiling even though the payload raises the
	// total to 20, so watched clamps to 10 while total becomes 20.
	entry, err := svc.UpdateSeriesProgress(user.ID, series.ID, ProgressPatch{
		WatchedEpisodes: intPtr(15),
		TotalEpisodes:   intPtr(20),
	})
	assert.NoError(t, err)
	assert.Equal(t, 10, entry.WatchedEpisodes)
	assert.Equal(t, 20, entry.TotalEpisodes)
}

func TestUpdateProgressPartialFields(t *testing.T) {
	svc, db := newTestService(t)
	user, _, series := seed(t, db)

	_, err := svc.AddSeries(user.ID, series.ID)
	assert.NoError(t, err)
	_, err = svc.UpdateSeriesProgress(user.ID, series.ID, ProgressPatch{
		WatchedEpisodes: intPtr(3),
		TotalEpisodes:   intPtr(10),
	})
	assert.NoError(t, err)

	entry, err := svc.UpdateSeriesProgress(user.ID, series.ID, ProgressPatch{Status: strPtr(database.StatusCompleted)})
	assert.NoError(t, err)
	assert.Equal(t, database.StatusCompleted, entry.Status)
	assert.Equal(t, 3, entry.WatchedEpisodes)
	assert.Equal(t, 10, entry.TotalEpisodes)
}

func TestUpdateProgressMissingEntry(t *testing.T) {
	svc, db := newTestService(t)
	user, _, series := seed(t, db)

	_, err := svc.UpdateSeriesProgress(user.ID, series.ID, ProgressPatch{WatchedEpisodes: intPtr(1)})
	assert.True(t, svcerr.IsNotFound(err))
}

func TestWatchedNeverExceedsTotalAfterUpdate(t *testing.T) {
	svc, db := newTestService(t)
	user, _, series := seed(t, db)

	_, err := svc.AddSeries(user.ID, series.ID)
	assert.NoError(t, err)

	entry, err := svc.UpdateSeriesProgress(user.ID, series.ID, ProgressPatch{
		WatchedEpisodes: intPtr(50),
		TotalEpisodes:   intPtr(10),
	})
	assert.NoError(t, err)
	assert.LessOrEqual(t, entry.WatchedEpisodes, entry.TotalEpisodes)
	assert.Equal(t, 100.0, entry.PercentageWatched())
}
