package capability

// FrontmostApp describes the application currently holding focus.
type FrontmostApp struct {
	BundleID    string
	Name        string
	WindowTitle string // Empty when the platform cannot supply a title
}

// Provider is the interface every platform integration must satisfy.
// Implementations answer "what is in front right now" and "how long has
// the user been idle"; everything else (dedup, persistence, AFK
// classification) lives in the capture engine.
type Provider interface {
	// GetFrontmostApp returns the currently focused application.
	// The window title is best-effort and may be empty.
	GetFrontmostApp() (*FrontmostApp, error)

	// GetIdleSeconds returns seconds since the last pointer or
	// keyboard input.
	GetIdleSeconds() (int64, error)

	// IsAvailable checks if this provider can run on the current system
	IsAvailable() bool

	// Close cleans up any resources used by the provider
	Close() error
}
