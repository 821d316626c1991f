package models

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		appName string
		want    AppCategory
	}{
		{"Xcode", CategoryProductive},
		{"iTerm2", CategoryProductive},
		{"Visual Studio Code", CategoryProductive},
		{"Obsidian", CategoryProductive},
		{"Google Chrome", CategoryDistracting},
		{"Safari", CategoryDistracting},
		{"Slack", CategoryDistracting},
		{"Finder", CategoryNeutral},
		{"Preview", CategoryNeutral},
		{"", CategoryNeutral},
		// Matching is case-insensitive substring.
		{"XCODE", CategoryProductive},
		{"my-chrome-wrapper", CategoryDistracting},
	}

	for _, tt := range tests {
		t.Run(tt.appName, func(t *testing.T) {
			if got := Categorize(tt.appName); got != tt.want {
				t.Errorf("Categorize(%q) = %s, want %s", tt.appName, got, tt.want)
			}
		})
	}
}
