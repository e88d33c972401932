// Package config handles the configuration directory, file paths and settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the optional settings filename.
	ConfigFile = "config.yaml"

	// EnvFile is the optional dotenv filename.
	EnvFile = ".env"

	// EnvPrefix prefixes environment overrides (TODO_API_URL, ...).
	EnvPrefix = "TODO"

	// DefaultAPIURL is the task API base URL used when none is configured.
	DefaultAPIURL = "http://127.0.0.1:8000"

	// DefaultTimeout bounds each API call.
	DefaultTimeout = 5 * time.Second
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// APIURL is the base URL of the task API.
	APIURL string

	// APIToken, if set, is sent as a bearer token.
	APIToken string

	// Timeout bounds each API call.
	Timeout time.Duration

	// RateLimit caps requests per second. Zero disables throttling.
	RateLimit float64

	// RateBurst is the limiter burst size.
	RateBurst int
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
// Settings start at their defaults; call Load to read file and environment.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:     dir,
		APIURL:  DefaultAPIURL,
		Timeout: DefaultTimeout,
	}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigFilePath returns the path to the settings file.
func (c *Config) ConfigFilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// EnvFilePath returns the path to the dotenv file.
func (c *Config) EnvFilePath() string {
	return filepath.Join(c.Dir, EnvFile)
}

// Load reads settings with precedence: environment (including the
// dotenv file) over config.yaml over defaults. Missing files are not errors.
func (c *Config) Load() error {
	if err := godotenv.Load(c.EnvFilePath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("invalid %s: %w", EnvFile, err)
	}

	v := viper.New()
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("api_token", "")
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("rate_limit", 0.0)
	v.SetDefault("rate_burst", 1)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if _, err := os.Stat(c.ConfigFilePath()); err == nil {
		v.SetConfigFile(c.ConfigFilePath())
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("invalid %s: %w", ConfigFile, err)
		}
	}

	c.APIURL = strings.TrimRight(v.GetString("api_url"), "/")
	c.APIToken = v.GetString("api_token")
	timeout, err := parseTimeout(v.Get("timeout"))
	if err != nil {
		return err
	}
	c.Timeout = timeout
	c.RateLimit = v.GetFloat64("rate_limit")
	c.RateBurst = v.GetInt("rate_burst")

	if c.APIURL == "" {
		return fmt.Errorf("api_url must not be empty")
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RateBurst < 1 {
		c.RateBurst = 1
	}
	return nil
}

// parseTimeout reads a duration setting. Bare numbers, from YAML or the
// environment, are seconds; strings with a unit use time.ParseDuration.
func parseTimeout(raw any) (time.Duration, error) {
	var d time.Duration
	switch t := raw.(type) {
	case nil:
		return DefaultTimeout, nil
	case time.Duration:
		d = t
	case int:
		d = time.Duration(t) * time.Second
	case int64:
		d = time.Duration(t) * time.Second
	case float64:
		d = time.Duration(t * float64(time.Second))
	case string:
		s := strings.TrimSpace(t)
		if secs, err := strconv.ParseFloat(s, 64); err == nil {
			d = time.Duration(secs * float64(time.Second))
			break
		}
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid timeout %q: %w", t, err)
		}
		d = parsed
	default:
		return 0, fmt.Errorf("invalid timeout %v", raw)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %v: must not be negative", raw)
	}
	if d > 0 && d < time.Millisecond {
		return 0, fmt.Errorf("invalid timeout %v: below 1ms", raw)
	}
	return d, nil
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
