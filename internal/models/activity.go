package models

// ActivitySample is one recorded observation of foreground activity.
// The (Timestamp, AppBundleID) pair is unique; a second insert with the
// same pair is a no-op so that polling, OS notifications, and browser
// message replays can race on the same second without creating
// duplicates.
type ActivitySample struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Timestamp   int64   `gorm:"not null;index;uniqueIndex:idx_sample_identity" json:"timestamp"` // Seconds since epoch (UTC)
	AppBundleID string  `gorm:"not null;index;uniqueIndex:idx_sample_identity" json:"app_bundle_id"`
	AppName     string  `gorm:"not null" json:"app_name"`
	WindowTitle *string `json:"window_title,omitempty"`
	URL         *string `json:"url,omitempty"`
	IsAfk       bool    `gorm:"not null;default:false" json:"is_afk"`
}

// TableName keeps the table name aligned with the daily_summary view.
func (ActivitySample) TableName() string {
	return "activity_samples"
}

// AppInfo identifies a foreground application.
type AppInfo struct {
	BundleID string `json:"bundle_id"`
	Name     string `json:"name"`
}

// AppUsage is one row of the daily_summary view: seconds of non-AFK
// activity for an app on one calendar day.
type AppUsage struct {
	AppName       string `json:"app_name"`
	SecondsActive int64  `json:"seconds_active"`
	EventCount    int    `json:"event_count"`
}
