package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Settings are runtime knobs that are not part of the mail configuration.
// Empty strings mean "use the built-in default".
type Settings struct {
	ConfigPath string
	StateFile  string
	Root       string
	NoPrompt   bool
	Debug      bool

	// EnvFileErr is set when the settings file exists but could not be read.
	EnvFileErr error
}

// DefaultSettingsPath returns ~/.config/os-age-report/settings.env.
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "os-age-report", "settings.env")
}

// LoadSettings loads envFile into the process environment (existing variables
// win) and reads the OS_AGE_REPORT_* variables. A missing file is fine.
func LoadSettings(envFile string) Settings {
	var s Settings
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.EnvFileErr = err
		}
	}

	s.ConfigPath = os.Getenv("OS_AGE_REPORT_CONFIG")
	s.StateFile = os.Getenv("OS_AGE_REPORT_STATE_FILE")
	s.Root = os.Getenv("OS_AGE_REPORT_ROOT")
	s.NoPrompt = envBool("OS_AGE_REPORT_NO_PROMPT")
	s.Debug = envBool("OS_AGE_REPORT_DEBUG")
	return s
}

func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
