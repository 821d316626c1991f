package nativemsg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	manifestName        = "com.chronoguard.native"
	manifestDescription = "ChronoGuard Native Messaging Host"
)

// Manifest is the Chrome native messaging host registration.
type Manifest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Path           string   `json:"path"`
	Type           string   `json:"type"`
	AllowedOrigins []string `json:"allowed_origins"`
}

// NewManifest builds a manifest pointing at the current executable.
func NewManifest(extensionID string) (*Manifest, error) {
	exePath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable path: %w", err)
	}

	return &Manifest{
		Name:           manifestName,
		Description:    manifestDescription,
		Path:           exePath,
		Type:           "stdio",
		AllowedOrigins: []string{fmt.Sprintf("chrome-extension://%s/", extensionID)},
	}, nil
}

// Install writes the manifest into Chrome's NativeMessagingHosts
// directory so the browser can launch the host over stdio.
func (m *Manifest) Install() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	manifestsDir := filepath.Join(homeDir, ".config", "google-chrome", "NativeMessagingHosts")
	if err := os.MkdirAll(manifestsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create manifests directory: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode manifest: %w", err)
	}

	manifestPath := filepath.Join(manifestsDir, manifestName+".json")
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}

	return manifestPath, nil
}
