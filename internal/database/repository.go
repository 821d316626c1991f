package database

import (
	"github.com/chronoguard/chronoguard/internal/models"

	"github.com/pkg/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository handles all database operations for activity samples
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// Insert writes a sample unless a row with the same
// (timestamp, app_bundle_id) already exists. Returns whether a new row
// was written; a duplicate is a no-op, never an error. The capture
// engine's poll ticker and the notification path can both observe the
// same second, as can browser message replays, so the conflict is
// routine.
func (r *Repository) Insert(sample *models.ActivitySample) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "timestamp"}, {Name: "app_bundle_id"}},
		DoNothing: true,
	}).Create(sample)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to insert activity sample")
	}
	return result.RowsAffected > 0, nil
}

// DailySummary returns the per-app active seconds for one calendar day
// (YYYY-MM-DD), ordered by seconds descending then app name ascending
// so report output is deterministic.
func (r *Repository) DailySummary(day string) ([]models.AppUsage, error) {
	var usages []models.AppUsage

	result := r.db.Raw(`
		SELECT app_name, seconds_active, event_count
		FROM daily_summary
		WHERE day = ?
		ORDER BY seconds_active DESC, app_name ASC`, day).Scan(&usages)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query daily summary")
	}

	return usages, nil
}

// Count returns the total number of stored samples, for diagnostics.
func (r *Repository) Count() (int64, error) {
	var count int64
	result := r.db.Model(&models.ActivitySample{}).Count(&count)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to count activity samples")
	}
	return count, nil
}

// GetSamplesSince retrieves raw samples at or after a given unix
// timestamp, oldest first.
func (r *Repository) GetSamplesSince(since int64) ([]*models.ActivitySample, error) {
	var samples []*models.ActivitySample
	result := r.db.Where("timestamp >= ?", since).Order("timestamp ASC").Find(&samples)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query activity samples")
	}

	return samples, nil
}

// GetLatest retrieves the most recent sample, or nil when the store is
// empty.
func (r *Repository) GetLatest() (*models.ActivitySample, error) {
	var sample models.ActivitySample
	result := r.db.Order("timestamp DESC").First(&sample)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "failed to get latest sample")
	}
	return &sample, nil
}
