package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chronoguard/chronoguard/internal/models"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4A90E2")).
			Padding(0, 1)

	productiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	distractingStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF6B6B")).
				Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

func renderDailyReport(report *models.DailyReport) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Daily Report — %s", report.Date)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Total Active Time: %s (%.2fh)\n", formatDuration(report.TotalActiveTime), report.Summary.TotalHours))
	b.WriteString(fmt.Sprintf("Productivity Score: %.1f%%\n\n", report.Summary.ProductivityScore))

	if len(report.AppActivities) == 0 {
		b.WriteString(dimStyle.Render("No activity recorded for this day."))
		return b.String()
	}

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-30s %10s %10s %9s", "Application", "Minutes", "Hours", "Percent")))
	b.WriteString("\n")

	for _, app := range report.AppActivities {
		percentage := 0.0
		if report.TotalActiveTime > 0 {
			percentage = float64(app.Seconds) / float64(report.TotalActiveTime) * 100
		}
		b.WriteString(fmt.Sprintf(" %-30s %10d %10.2f %8.1f%%\n",
			truncate(app.Name, 30), app.Minutes(), app.Hours(), percentage))
	}

	return b.String()
}

func renderWeeklyReport(report *models.WeeklyReport) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Weekly Report — week of %s", report.WeekStarting)))
	b.WriteString("\n\n")

	for _, daily := range report.DailyReports {
		marker := dimStyle.Render("·")
		if daily.TotalActiveTime > 0 {
			marker = productiveStyle.Render("•")
		}
		b.WriteString(fmt.Sprintf("%s %s  %s\n", marker, daily.Date, formatDuration(daily.TotalActiveTime)))
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-30s %12s", "Application", "Total")))
	b.WriteString("\n")

	for _, app := range sortedTotals(report.WeeklyTotals) {
		b.WriteString(fmt.Sprintf(" %-30s %12s\n", truncate(app.Name, 30), formatDuration(app.Seconds)))
	}

	return b.String()
}

func renderProductivityReport(report *models.ProductivityReport) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Productivity Report — %s", report.Date)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Productivity Score: %.1f%%\n\n", report.ProductivityScore))

	b.WriteString(fmt.Sprintf("%s  %s\n", productiveStyle.Render("Productive:"), formatDuration(report.ProductiveTime)))
	b.WriteString(fmt.Sprintf("%s     %s\n", dimStyle.Render("Neutral:"), formatDuration(report.NeutralTime)))
	b.WriteString(fmt.Sprintf("%s %s\n", distractingStyle.Render("Distracting:"), formatDuration(report.DistractingTime)))

	if len(report.TopProductiveApps) > 0 {
		b.WriteString("\nTop productive apps:\n")
		for _, name := range report.TopProductiveApps {
			b.WriteString(fmt.Sprintf("  %s\n", name))
		}
	}

	if len(report.TopDistractingApps) > 0 {
		b.WriteString("\nTop distracting apps:\n")
		for _, name := range report.TopDistractingApps {
			b.WriteString(fmt.Sprintf("  %s\n", name))
		}
	}

	return b.String()
}

// sortedTotals flattens the weekly totals map into descending order,
// names ascending on ties, matching the daily report ordering.
func sortedTotals(totals map[string]int64) []models.AppActivity {
	apps := make([]models.AppActivity, 0, len(totals))
	for name, seconds := range totals {
		apps = append(apps, models.AppActivity{Name: name, Seconds: seconds})
	}

	sort.Slice(apps, func(i, j int) bool {
		if apps[i].Seconds != apps[j].Seconds {
			return apps[i].Seconds > apps[j].Seconds
		}
		return apps[i].Name < apps[j].Name
	})

	return apps
}

func formatDuration(seconds int64) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds < 3600 {
		return fmt.Sprintf("%dm", seconds/60)
	}
	return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
