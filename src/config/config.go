package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Fixed at build time.
const (
	WindowTitle   = "kagerou"
	Hotkey        = "Shift+Pause"
	DialogCaption = "kagerou-screenshot"
)

// EnvPathEnvVar names an alternative .env file used when none sits next to
// the executable.
const EnvPathEnvVar = "KAGEROU_SCREENSHOT_ENV"

// Config holds diagnostic settings only; the capture itself is not configurable.
type Config struct {
	WindowTitle       string
	Hotkey            string
	DialogCaption     string
	EnableFileLogging bool
	EnableTray        bool
}

func Load() (*Config, error) {
	// Load configuration from sources in priority order:
	// 1) .env in the application (executable) directory
	// 2) If not found, the file named by KAGEROU_SCREENSHOT_ENV
	if envPath := resolveEnvPath(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	cfg := &Config{
		WindowTitle:       WindowTitle,
		Hotkey:            Hotkey,
		DialogCaption:     DialogCaption,
		EnableFileLogging: strings.ToLower(os.Getenv("ENABLE_FILE_LOGGING")) == "true",
		EnableTray:        strings.ToLower(getEnvWithDefault("ENABLE_TRAY", "true")) != "false",
	}

	return cfg, nil
}

func resolveEnvPath() string {
	if execPath, err := os.Executable(); err == nil {
		exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
		if _, err := os.Stat(exeEnv); err == nil {
			return exeEnv
		}
	}

	if alt := os.Getenv(EnvPathEnvVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return ""
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
