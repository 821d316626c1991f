package models

import "strings"

// AppCategory classifies an application for productivity reporting.
type AppCategory string

const (
	CategoryProductive  AppCategory = "productive"
	CategoryNeutral     AppCategory = "neutral"
	CategoryDistracting AppCategory = "distracting"
)

var productiveKeywords = []string{
	"xcode", "terminal", "warp", "iterm", "sublime", "code",
	"intellij", "notion", "obsidian", "figma", "sketch",
}

var distractingKeywords = []string{
	"safari", "chrome", "youtube", "netflix", "slack", "discord",
	"telegram", "whatsapp", "twitter", "facebook", "instagram",
}

// Categorize maps an app name to a category by case-insensitive
// substring match. Anything matching neither keyword set is neutral.
func Categorize(appName string) AppCategory {
	lowered := strings.ToLower(appName)

	for _, kw := range productiveKeywords {
		if strings.Contains(lowered, kw) {
			return CategoryProductive
		}
	}

	for _, kw := range distractingKeywords {
		if strings.Contains(lowered, kw) {
			return CategoryDistracting
		}
	}

	return CategoryNeutral
}
