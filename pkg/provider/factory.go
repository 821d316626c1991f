package provider

import (
	"fmt"
	"os"

	"github.com/chronoguard/chronoguard/pkg/capability"
	"github.com/chronoguard/chronoguard/pkg/integrations/x11"
)

// New returns the capability provider for the current system.
func New() (capability.Provider, error) {
	if DetectDisplayServer() == "x11" {
		p, err := x11.NewProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize x11 provider: %w", err)
		}
		return p, nil
	}

	return nil, fmt.Errorf("no capability provider available for this system")
}

// DetectDisplayServer inspects session environment variables.
func DetectDisplayServer() string {
	sessionType := os.Getenv("XDG_SESSION_TYPE")
	waylandDisplay := os.Getenv("WAYLAND_DISPLAY")
	x11Display := os.Getenv("DISPLAY")

	if sessionType == "wayland" || waylandDisplay != "" {
		return "wayland"
	}

	if sessionType == "x11" || x11Display != "" {
		return "x11"
	}

	return "unknown"
}
