package provider

import (
	"os"
	"testing"
)

func TestDetectDisplayServer(t *testing.T) {
	tests := []struct {
		name           string
		sessionType    string
		waylandDisplay string
		x11Display     string
		want           string
	}{
		{
			name:           "Wayland session",
			sessionType:    "wayland",
			waylandDisplay: "wayland-0",
			want:           "wayland",
		},
		{
			name:        "X11 session",
			sessionType: "x11",
			x11Display:  ":0",
			want:        "x11",
		},
		{
			name: "Unknown session",
			want: "unknown",
		},
		{
			name:           "Wayland display set",
			waylandDisplay: "wayland-1",
			want:           "wayland",
		},
		{
			name:       "X11 display set",
			x11Display: ":1",
			want:       "x11",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_SESSION_TYPE", tt.sessionType)
			t.Setenv("WAYLAND_DISPLAY", tt.waylandDisplay)
			t.Setenv("DISPLAY", tt.x11Display)

			if got := DetectDisplayServer(); got != tt.want {
				t.Errorf("DetectDisplayServer() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNewWithoutDisplayServer(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "")
	t.Setenv("WAYLAND_DISPLAY", "")
	t.Setenv("DISPLAY", "")
	os.Unsetenv("XDG_SESSION_TYPE")
	os.Unsetenv("WAYLAND_DISPLAY")
	os.Unsetenv("DISPLAY")

	if _, err := New(); err == nil {
		t.Error("New() should fail when no display server is detected")
	}
}
