package databasemodule

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/avelar/watchtrack/internal/config"
	"github.com/avelar/watchtrack/internal/logger"
)

// configureConnectionPool applies pool limits from configuration to the
// underlying sql.DB.
func configureConnectionPool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	cfg := config.Get().Database
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 25
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 5
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	logger.Info("Connection pool configured (max_open=%d max_idle=%d)", maxOpen, maxIdle)
	return nil
}
