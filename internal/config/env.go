package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadFromEnv loads configuration from environment variables
// Environment variables override default values
func LoadFromEnv(cfg *Config) {
	// Database configuration
	if dbPath := os.Getenv("CHRONOGUARD_DB_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	// Capture configuration
	if sampleInterval := os.Getenv("CHRONOGUARD_SAMPLE_INTERVAL"); sampleInterval != "" {
		if seconds, err := strconv.Atoi(sampleInterval); err == nil && seconds > 0 {
			interval := time.Duration(seconds) * time.Second
			if interval >= cfg.Capture.MinSampleInterval && interval <= cfg.Capture.MaxSampleInterval {
				cfg.Capture.SampleInterval = interval
			}
		}
	}

	if idleThreshold := os.Getenv("CHRONOGUARD_IDLE_THRESHOLD"); idleThreshold != "" {
		if seconds, err := strconv.Atoi(idleThreshold); err == nil && seconds > 0 {
			cfg.Capture.IdleThreshold = time.Duration(seconds) * time.Second
		}
	}

	// Daemon configuration
	if pidFile := os.Getenv("CHRONOGUARD_PID_FILE"); pidFile != "" {
		cfg.Daemon.PIDFile = pidFile
	}

	if logFile := os.Getenv("CHRONOGUARD_LOG_FILE"); logFile != "" {
		cfg.Daemon.LogFile = logFile
	}

	// Web configuration
	if webHost := os.Getenv("CHRONOGUARD_WEB_HOST"); webHost != "" {
		cfg.Web.Host = webHost
	}

	if webPort := os.Getenv("CHRONOGUARD_WEB_PORT"); webPort != "" {
		if port, err := strconv.Atoi(webPort); err == nil && port > 0 && port <= 65535 {
			cfg.Web.Port = port
		}
	}
}

// New creates a new Config with default values, a .env file if one is
// present in the working directory, and environment variable overrides.
func New() *Config {
	_ = godotenv.Load()

	cfg := Default()
	LoadFromEnv(cfg)
	return cfg
}
