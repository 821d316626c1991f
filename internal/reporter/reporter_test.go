package reporter

import (
	"strings"
	"testing"

	"github.com/chronoguard/chronoguard/internal/models"
)

// fakeSummarizer serves canned daily summaries keyed by day, already in
// the store's order (seconds descending, name ascending).
type fakeSummarizer struct {
	byDay map[string][]models.AppUsage
}

func (f *fakeSummarizer) DailySummary(day string) ([]models.AppUsage, error) {
	return f.byDay[day], nil
}

func TestDailyReport(t *testing.T) {
	rep := New(&fakeSummarizer{byDay: map[string][]models.AppUsage{
		"2026-08-24": {
			{AppName: "Xcode", SecondsActive: 300, EventCount: 60},
			{AppName: "Google Chrome", SecondsActive: 100, EventCount: 20},
		},
	}})

	report, err := rep.Daily("2026-08-24")
	if err != nil {
		t.Fatalf("Daily() error: %v", err)
	}

	if report.TotalActiveTime != 400 {
		t.Errorf("TotalActiveTime = %d, want 400", report.TotalActiveTime)
	}
	if len(report.AppActivities) != 2 {
		t.Fatalf("AppActivities has %d entries, want 2", len(report.AppActivities))
	}
	if report.AppActivities[0].Name != "Xcode" {
		t.Errorf("top app = %s, want Xcode", report.AppActivities[0].Name)
	}

	// 300 productive of 400 total.
	if got := report.Summary.ProductivityScore; got != 75 {
		t.Errorf("ProductivityScore = %v, want 75", got)
	}
}

func TestDailyReportOrderingPreserved(t *testing.T) {
	// Equal seconds, store resolves ties by name ascending: A before B.
	rep := New(&fakeSummarizer{byDay: map[string][]models.AppUsage{
		"2026-08-24": {
			{AppName: "A", SecondsActive: 100},
			{AppName: "B", SecondsActive: 100},
		},
	}})

	report, err := rep.Daily("2026-08-24")
	if err != nil {
		t.Fatalf("Daily() error: %v", err)
	}

	if report.AppActivities[0].Name != "A" || report.AppActivities[1].Name != "B" {
		t.Errorf("tie order = %s,%s, want A,B",
			report.AppActivities[0].Name, report.AppActivities[1].Name)
	}
}

func TestDailyReportEmptyDayScoresZero(t *testing.T) {
	rep := New(&fakeSummarizer{byDay: map[string][]models.AppUsage{}})

	report, err := rep.Daily("2026-01-01")
	if err != nil {
		t.Fatalf("Daily() error: %v", err)
	}

	if report.TotalActiveTime != 0 {
		t.Errorf("TotalActiveTime = %d, want 0", report.TotalActiveTime)
	}
	if report.Summary.ProductivityScore != 0 {
		t.Errorf("ProductivityScore = %v, want 0", report.Summary.ProductivityScore)
	}
}

func TestWeeklyTotals(t *testing.T) {
	byDay := make(map[string][]models.AppUsage)
	days := []string{
		"2026-08-24", "2026-08-25", "2026-08-26", "2026-08-27",
		"2026-08-28", "2026-08-29", "2026-08-30",
	}
	for _, day := range days {
		byDay[day] = []models.AppUsage{{AppName: "A", SecondsActive: 100}}
	}

	rep := New(&fakeSummarizer{byDay: byDay})

	report, err := rep.Weekly("2026-08-24")
	if err != nil {
		t.Fatalf("Weekly() error: %v", err)
	}

	if len(report.DailyReports) != 7 {
		t.Errorf("DailyReports has %d entries, want 7", len(report.DailyReports))
	}
	if got := report.WeeklyTotals["A"]; got != 700 {
		t.Errorf("WeeklyTotals[A] = %d, want 700", got)
	}
}

func TestWeeklyInvalidStartDate(t *testing.T) {
	rep := New(&fakeSummarizer{byDay: map[string][]models.AppUsage{}})

	if _, err := rep.Weekly("not-a-date"); err == nil {
		t.Error("Weekly() with invalid date should return an error")
	}
}

func TestProductivityReport(t *testing.T) {
	rep := New(&fakeSummarizer{byDay: map[string][]models.AppUsage{
		"2026-08-24": {
			{AppName: "Xcode", SecondsActive: 600},
			{AppName: "iTerm2", SecondsActive: 300},
			{AppName: "Google Chrome", SecondsActive: 200},
			{AppName: "Finder", SecondsActive: 100},
		},
	}})

	report, err := rep.Productivity("2026-08-24")
	if err != nil {
		t.Fatalf("Productivity() error: %v", err)
	}

	if report.ProductiveTime != 900 {
		t.Errorf("ProductiveTime = %d, want 900", report.ProductiveTime)
	}
	if report.DistractingTime != 200 {
		t.Errorf("DistractingTime = %d, want 200", report.DistractingTime)
	}
	if report.NeutralTime != 100 {
		t.Errorf("NeutralTime = %d, want 100", report.NeutralTime)
	}

	// 900 of 1200 total.
	if report.ProductivityScore != 75 {
		t.Errorf("ProductivityScore = %v, want 75", report.ProductivityScore)
	}

	wantTop := []string{"Xcode", "iTerm2"}
	if len(report.TopProductiveApps) != len(wantTop) {
		t.Fatalf("TopProductiveApps = %v, want %v", report.TopProductiveApps, wantTop)
	}
	for i := range wantTop {
		if report.TopProductiveApps[i] != wantTop[i] {
			t.Errorf("TopProductiveApps[%d] = %s, want %s", i, report.TopProductiveApps[i], wantTop[i])
		}
	}

	if len(report.TopDistractingApps) != 1 || report.TopDistractingApps[0] != "Google Chrome" {
		t.Errorf("TopDistractingApps = %v, want [Google Chrome]", report.TopDistractingApps)
	}
}

func TestProductivityTopAppsCappedAtThree(t *testing.T) {
	rep := New(&fakeSummarizer{byDay: map[string][]models.AppUsage{
		"2026-08-24": {
			{AppName: "Xcode", SecondsActive: 400},
			{AppName: "iTerm2", SecondsActive: 300},
			{AppName: "Obsidian", SecondsActive: 200},
			{AppName: "Figma", SecondsActive: 100},
		},
	}})

	report, err := rep.Productivity("2026-08-24")
	if err != nil {
		t.Fatalf("Productivity() error: %v", err)
	}

	if len(report.TopProductiveApps) != 3 {
		t.Errorf("TopProductiveApps has %d entries, want 3: %v",
			len(report.TopProductiveApps), report.TopProductiveApps)
	}
}

func TestExportCSV(t *testing.T) {
	report := &models.DailyReport{
		Date:            "2026-08-24",
		TotalActiveTime: 400,
		AppActivities: []models.AppActivity{
			{Name: "Xcode", Seconds: 300},
			{Name: "Google Chrome", Seconds: 100},
		},
	}

	csv := ExportCSV(report)
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")

	if lines[0] != "App,Minutes,Hours,Percentage" {
		t.Errorf("CSV header = %q", lines[0])
	}
	if len(lines) != 3 {
		t.Fatalf("CSV has %d lines, want 3:\n%s", len(lines), csv)
	}
	if lines[1] != `"Xcode",5,0.08,75.0` {
		t.Errorf("CSV row = %q", lines[1])
	}
	if lines[2] != `"Google Chrome",1,0.03,25.0` {
		t.Errorf("CSV row = %q", lines[2])
	}
}

func TestExportCSVEmptyReport(t *testing.T) {
	csv := ExportCSV(&models.DailyReport{Date: "2026-08-24"})
	if csv != "App,Minutes,Hours,Percentage\n" {
		t.Errorf("empty CSV = %q", csv)
	}
}

func TestExportJSON(t *testing.T) {
	report := &models.DailyReport{
		Date:          "2026-08-24",
		AppActivities: []models.AppActivity{{Name: "Xcode", Seconds: 300}},
	}

	out, err := ExportJSON(report)
	if err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}
	if !strings.Contains(out, `"date": "2026-08-24"`) {
		t.Errorf("JSON missing date field:\n%s", out)
	}
	if !strings.Contains(out, `"Xcode"`) {
		t.Errorf("JSON missing app name:\n%s", out)
	}
}
