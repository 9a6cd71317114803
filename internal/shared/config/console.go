package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// ConsoleConfig configures the operator console.
type ConsoleConfig struct {
	ServerURL      string        `yaml:"server_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	LogFile        string        `yaml:"log_file"`
	LogLevel       string        `yaml:"log_level"`
	Username       string        `yaml:"username"`
	Password       string        `yaml:"password"`
	// NoticeLifetime is how long a notification stays before fading.
	NoticeLifetime time.Duration `yaml:"notice_lifetime"`
}

func defaultConsole() ConsoleConfig {
	return ConsoleConfig{
		ServerURL:      "http://localhost:8080/api",
		RequestTimeout: 15 * time.Second,
		LogFile:        "boxoffice-console.log",
		LogLevel:       "info",
		NoticeLifetime: 5 * time.Second,
	}
}

// LoadConsole layers the console configuration: defaults, then the YAML
// file at path (skipped when path is empty or missing), then CONSOLE_*
// environment variables.
func LoadConsole(path string) (ConsoleConfig, error) {
	cfg := defaultConsole()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("reading console config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing console config %s: %w", path, err)
			}
		}
	}

	cfg.ServerURL = getEnv("CONSOLE_SERVER_URL", cfg.ServerURL)
	cfg.RequestTimeout = getDurationEnv("CONSOLE_REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.LogFile = getEnv("CONSOLE_LOG_FILE", cfg.LogFile)
	cfg.LogLevel = getEnv("CONSOLE_LOG_LEVEL", cfg.LogLevel)
	cfg.Username = getEnv("CONSOLE_USERNAME", cfg.Username)
	cfg.Password = getEnv("CONSOLE_PASSWORD", cfg.Password)
	cfg.NoticeLifetime = getDurationEnv("CONSOLE_NOTICE_LIFETIME", cfg.NoticeLifetime)
	return cfg, nil
}

// AddFlags registers command-line overrides on fs. Flags are applied by
// parsing fs after LoadConsole.
func (c *ConsoleConfig) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.ServerURL, "server", c.ServerURL, "base URL of the box office API")
	fs.DurationVar(&c.RequestTimeout, "timeout", c.RequestTimeout, "per-request timeout")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "file to write logs to")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&c.Username, "username", c.Username, "operator username for protected routes")
	fs.DurationVar(&c.NoticeLifetime, "notice-lifetime", c.NoticeLifetime, "how long notifications stay visible")
}
