package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	Database DatabaseConfig

	// Capture configuration
	Capture CaptureConfig

	// Daemon configuration
	Daemon DaemonConfig

	// Web server configuration
	Web WebConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path string // Path to SQLite database file
}

// CaptureConfig holds activity capture behavior configuration
type CaptureConfig struct {
	SampleInterval    time.Duration // How often to re-sample the frontmost app
	MinSampleInterval time.Duration // Minimum allowed sampling interval
	MaxSampleInterval time.Duration // Maximum allowed sampling interval
	IdleThreshold     time.Duration // Time without input before the user counts as AFK
}

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	PIDFile string // Path to PID file for daemon management
	LogFile string // Path for daemonized log output
}

// WebConfig holds local report API configuration
type WebConfig struct {
	Host string
	Port int
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "", // Empty means use default ~/.config/chronoguard/chronoguard.db
		},
		Capture: CaptureConfig{
			SampleInterval:    5 * time.Second,
			MinSampleInterval: 1 * time.Second,
			MaxSampleInterval: 300 * time.Second,
			IdleThreshold:     300 * time.Second, // 5 minutes idle threshold
		},
		Daemon: DaemonConfig{
			PIDFile: fmt.Sprintf("/tmp/chronoguard-%d.pid", os.Getuid()),
			LogFile: "/tmp/chronoguard.log",
		},
		Web: WebConfig{
			Host: "localhost",
			Port: 10000 + os.Getuid(),
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Capture.SampleInterval < c.Capture.MinSampleInterval {
		return fmt.Errorf("sample interval (%v) cannot be less than minimum (%v)",
			c.Capture.SampleInterval, c.Capture.MinSampleInterval)
	}

	if c.Capture.SampleInterval > c.Capture.MaxSampleInterval {
		return fmt.Errorf("sample interval (%v) cannot be greater than maximum (%v)",
			c.Capture.SampleInterval, c.Capture.MaxSampleInterval)
	}

	if c.Capture.IdleThreshold < 0 {
		return fmt.Errorf("idle threshold cannot be negative")
	}

	if c.Web.Port < 1 || c.Web.Port > 65535 {
		return fmt.Errorf("web port must be between 1 and 65535, got %d", c.Web.Port)
	}

	if c.Web.Host == "" {
		return fmt.Errorf("web host cannot be empty")
	}

	if c.Daemon.PIDFile == "" {
		return fmt.Errorf("PID file path cannot be empty")
	}

	return nil
}

// SetSampleInterval sets the sampling interval with validation
func (c *Config) SetSampleInterval(interval time.Duration) error {
	if interval < c.Capture.MinSampleInterval {
		return fmt.Errorf("sample interval cannot be less than %v", c.Capture.MinSampleInterval)
	}
	if interval > c.Capture.MaxSampleInterval {
		return fmt.Errorf("sample interval cannot be greater than %v", c.Capture.MaxSampleInterval)
	}
	c.Capture.SampleInterval = interval
	return nil
}

// GetSampleIntervalSeconds returns the sampling interval in seconds
func (c *Config) GetSampleIntervalSeconds() int64 {
	return int64(c.Capture.SampleInterval.Seconds())
}

// GetIdleThresholdSeconds returns the idle threshold in seconds
func (c *Config) GetIdleThresholdSeconds() int64 {
	return int64(c.Capture.IdleThreshold.Seconds())
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  Database:
    Path: %s
  Capture:
    Sample Interval: %v
    Min Interval: %v
    Max Interval: %v
    Idle Threshold: %v
  Daemon:
    PID File: %s
    Log File: %s
  Web:
    Host: %s
    Port: %d`,
		c.Database.Path,
		c.Capture.SampleInterval,
		c.Capture.MinSampleInterval,
		c.Capture.MaxSampleInterval,
		c.Capture.IdleThreshold,
		c.Daemon.PIDFile,
		c.Daemon.LogFile,
		c.Web.Host,
		c.Web.Port,
	)
}
