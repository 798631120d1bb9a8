package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	assert.NoError(t, err)

	sqlDB, err := db.DB()
	assert.NoError(t, err)
	// A single connection keeps every statement on the same in-memory db.
	sqlDB.SetMaxOpenConns(1)

	assert.NoError(t, db.AutoMigrate(&User{}, &Movie{}, &Series{}, &Season{}, &WatchEntry{}))
	return db
}

func TestPercentageWatched(t *testing.T) {
	tests := []struct {
		name    string
		watched int
		total   int
		want    float64
	}{
		{"zero total", 5, 0, 0.0},
		{"nothing watched", 0, 10, 0.0},
		{"half watched", 5, 10, 50.0},
		{"fully watched", 10, 10, 100.0},
		{"over total is capped", 15, 10, 100.0},
		{"movie unit", 1, 1, 100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := WatchEntry{WatchedEpisodes: tt.watched, TotalEpisodes: tt.total}
			assert.Equal(t, tt.want, e.PercentageWatched())
		})
	}
}

func TestMarkAsWatched(t *testing.T) {
	db := newTestDB(t)

	user := User{Name: "ana"}
	assert.NoError(t, db.Create(&user).Error)
	series := Series{Title: "Show A"}
	assert.NoError(t, db.Create(&series).Error)

	entry := WatchEntry{
		UserID:          user.ID,
		SeriesID:        &series.ID,
		Status:          StatusInProgress,
		WatchedEpisodes: 3,
		TotalEpisodes:   10,
	}
	assert.NoError(t, db.Create(&entry).Error)

	assert.NoError(t, entry.MarkAsWatched(db))

	var got WatchEntry
	assert.NoError(t, db.First(&got, entry.ID).Error)
	assert.Equal(t, StatusCompleted, got.Status)
	assert.Equal(t, 10, got.WatchedEpisodes)
	assert.Equal(t, 100.0, got.PercentageWatched())
}

func TestSeasonUniquePerSeries(t *testing.T) {
	db := newTestDB(t)

	series := Series{Title: "Show A"}
	assert.NoError(t, db.Create(&series).Error)

	assert.NoError(t, db.Create(&Season{SeriesID: series.ID, Number: 1, EpisodesCount: 10}).Error)

	err := db.Create(&Season{SeriesID: series.ID, Number: 1, EpisodesCount: 8}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// The same number under another series is fine.
	other := Series{Title: "Show B"}
	assert.NoError(t, db.Create(&other).Error)
	assert.NoError(t, db.Create(&Season{SeriesID: other.ID, Number: 1}).Error)
}
