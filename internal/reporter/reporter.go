package reporter

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/chronoguard/chronoguard/internal/models"
)

const dateLayout = "2006-01-02"

// Summarizer is the read-only slice of the store the reporter uses.
type Summarizer interface {
	DailySummary(day string) ([]models.AppUsage, error)
}

// Reporter builds daily, weekly, and productivity reports from the
// daily aggregate. Reports are projections; nothing here writes back.
type Reporter struct {
	repo Summarizer
}

// New creates a new reporter
func New(repo Summarizer) *Reporter {
	return &Reporter{repo: repo}
}

// Daily generates the report for one calendar day (YYYY-MM-DD).
func (r *Reporter) Daily(date string) (*models.DailyReport, error) {
	usages, err := r.repo.DailySummary(date)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily summary: %w", err)
	}

	activities := make([]models.AppActivity, 0, len(usages))
	var totalSeconds int64
	for _, u := range usages {
		activities = append(activities, models.AppActivity{
			Name:    u.AppName,
			Seconds: u.SecondsActive,
		})
		totalSeconds += u.SecondsActive
	}

	topApps := activities
	if len(topApps) > 5 {
		topApps = topApps[:5]
	}

	return &models.DailyReport{
		Date:            date,
		TotalActiveTime: totalSeconds,
		AppActivities:   activities,
		Summary: models.DailySummary{
			TotalHours:        float64(totalSeconds) / 3600.0,
			TopApps:           topApps,
			ProductivityScore: productivityScore(activities, totalSeconds),
		},
	}, nil
}

// Weekly generates 7 consecutive daily reports starting at startDate
// and merges per-app totals across them. An unparsable start date is an
// error, not a silently empty report.
func (r *Reporter) Weekly(startDate string) (*models.WeeklyReport, error) {
	start, err := time.ParseInLocation(dateLayout, startDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid week start date %q: %w", startDate, err)
	}

	report := &models.WeeklyReport{
		WeekStarting: startDate,
		DailyReports: make([]models.DailyReport, 0, 7),
		WeeklyTotals: make(map[string]int64),
	}

	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i).Format(dateLayout)

		daily, err := r.Daily(day)
		if err != nil {
			return nil, err
		}

		report.DailyReports = append(report.DailyReports, *daily)
		for _, activity := range daily.AppActivities {
			report.WeeklyTotals[activity.Name] += activity.Seconds
		}
	}

	return report, nil
}

// Productivity partitions one day's activity by app category.
func (r *Reporter) Productivity(date string) (*models.ProductivityReport, error) {
	daily, err := r.Daily(date)
	if err != nil {
		return nil, err
	}

	// The daily summary arrives sorted by seconds descending, so each
	// partition stays sorted too.
	var productive, neutral, distracting []models.AppActivity
	for _, activity := range daily.AppActivities {
		switch models.Categorize(activity.Name) {
		case models.CategoryProductive:
			productive = append(productive, activity)
		case models.CategoryDistracting:
			distracting = append(distracting, activity)
		default:
			neutral = append(neutral, activity)
		}
	}

	return &models.ProductivityReport{
		Date:               date,
		ProductivityScore:  productivityScore(daily.AppActivities, daily.TotalActiveTime),
		ProductiveTime:     sumSeconds(productive),
		NeutralTime:        sumSeconds(neutral),
		DistractingTime:    sumSeconds(distracting),
		TopProductiveApps:  topNames(productive, 3),
		TopDistractingApps: topNames(distracting, 3),
	}, nil
}

// productivityScore is the productive share of total active time in
// percent; an empty day scores 0 rather than dividing by zero.
func productivityScore(activities []models.AppActivity, totalSeconds int64) float64 {
	if totalSeconds == 0 {
		return 0
	}

	var productiveSeconds int64
	for _, activity := range activities {
		if models.Categorize(activity.Name) == models.CategoryProductive {
			productiveSeconds += activity.Seconds
		}
	}

	return float64(productiveSeconds) / float64(totalSeconds) * 100
}

func sumSeconds(activities []models.AppActivity) int64 {
	var total int64
	for _, activity := range activities {
		total += activity.Seconds
	}
	return total
}

func topNames(activities []models.AppActivity, n int) []string {
	if len(activities) > n {
		activities = activities[:n]
	}
	names := make([]string, 0, len(activities))
	for _, activity := range activities {
		names = append(names, activity.Name)
	}
	return names
}

// ExportCSV renders a daily report as CSV with percentages relative to
// the report's total. Pure function of the report.
func ExportCSV(report *models.DailyReport) string {
	var b strings.Builder
	b.WriteString("App,Minutes,Hours,Percentage\n")

	for _, activity := range report.AppActivities {
		percentage := 0.0
		if report.TotalActiveTime > 0 {
			percentage = float64(activity.Seconds) / float64(report.TotalActiveTime) * 100
		}
		fmt.Fprintf(&b, "%q,%d,%.2f,%.1f\n",
			activity.Name, activity.Minutes(), activity.Hours(), percentage)
	}

	return b.String()
}

// ExportJSON renders any report as indented JSON.
func ExportJSON(report any) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}
