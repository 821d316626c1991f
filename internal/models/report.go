package models

// AppActivity is one application's share of a daily report.
type AppActivity struct {
	Name    string `json:"name"`
	Seconds int64  `json:"seconds"`
}

// Minutes returns the whole minutes of activity.
func (a AppActivity) Minutes() int64 {
	return a.Seconds / 60
}

// Hours returns the fractional hours of activity.
func (a AppActivity) Hours() float64 {
	return float64(a.Seconds) / 3600.0
}

// DailySummary condenses a daily report for quick display.
type DailySummary struct {
	TotalHours        float64       `json:"total_hours"`
	TopApps           []AppActivity `json:"top_apps"`
	ProductivityScore float64       `json:"productivity_score"`
}

// DailyReport is the per-day projection over the daily aggregate.
type DailyReport struct {
	Date            string        `json:"date"`
	TotalActiveTime int64         `json:"total_active_time"` // Seconds
	AppActivities   []AppActivity `json:"app_activities"`
	Summary         DailySummary  `json:"summary"`
}

// WeeklyReport covers 7 consecutive days starting at WeekStarting.
type WeeklyReport struct {
	WeekStarting string           `json:"week_starting"`
	DailyReports []DailyReport    `json:"daily_reports"`
	WeeklyTotals map[string]int64 `json:"weekly_totals"` // App name -> seconds
}

// ProductivityReport partitions one day's activity by app category.
type ProductivityReport struct {
	Date               string   `json:"date"`
	ProductivityScore  float64  `json:"productivity_score"`
	ProductiveTime     int64    `json:"productive_time"`  // Seconds
	NeutralTime        int64    `json:"neutral_time"`     // Seconds
	DistractingTime    int64    `json:"distracting_time"` // Seconds
	TopProductiveApps  []string `json:"top_productive_apps"`
	TopDistractingApps []string `json:"top_distracting_apps"`
}
