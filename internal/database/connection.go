package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chronoguard/chronoguard/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	defaultDBName = "chronoguard.db"
	defaultDBDir  = ".config/chronoguard"
)

type DB struct {
	*gorm.DB
}

func GetDefaultDBPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dbDir := filepath.Join(homeDir, defaultDBDir)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create database directory: %w", err)
	}

	return filepath.Join(dbDir, defaultDBName), nil
}

func Connect(dbPath string) (*DB, error) {
	if dbPath == "" {
		var err error
		dbPath, err = GetDefaultDBPath()
		if err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &DB{db}, nil
}

// Initialize migrates the activity_samples table and (re)creates the
// daily_summary view. The view bakes in the sampling interval so each
// non-AFK sample contributes exactly one interval of active time; it is
// dropped and recreated on startup in case the interval changed.
func (db *DB) Initialize(sampleIntervalSeconds int64) error {
	if err := db.AutoMigrate(&models.ActivitySample{}); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	if err := db.Exec("DROP VIEW IF EXISTS daily_summary").Error; err != nil {
		return fmt.Errorf("failed to drop daily_summary view: %w", err)
	}

	viewSQL := fmt.Sprintf(`
		CREATE VIEW daily_summary AS
		SELECT
			strftime('%%Y-%%m-%%d', timestamp, 'unixepoch', 'localtime') AS day,
			app_name,
			app_bundle_id,
			SUM(CASE WHEN NOT is_afk THEN %d ELSE 0 END) AS seconds_active,
			COUNT(*) AS event_count
		FROM activity_samples
		GROUP BY day, app_bundle_id`, sampleIntervalSeconds)

	if err := db.Exec(viewSQL).Error; err != nil {
		return fmt.Errorf("failed to create daily_summary view: %w", err)
	}

	return nil
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}
