// Package config loads reporoulette settings. Environment variables
// (optionally seeded from a .env file) override the TOML config file, which
// overrides the built-in defaults. Nothing is ever written back.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/johanforsgren/reporoulette/internal/logger"
	"github.com/joho/godotenv"
)

const (
	configDir   = ".reporoulette"
	configFile  = "config.toml"
	logFile     = "reporoulette.log"
	defaultAPI  = "https://api.github.com/"
	defaultUA   = "reporoulette"
	defaultWait = 15 * time.Second
)

const (
	EnvAPIBaseURL     = "REPOROULETTE_API_BASE_URL"
	EnvRequestTimeout = "REPOROULETTE_REQUEST_TIMEOUT"
	EnvLogPath        = "REPOROULETTE_LOG"
	EnvHTTPDebug      = "REPOROULETTE_HTTP_DEBUG"
)

// Duration lets request_timeout be written as a Go duration string.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type Config struct {
	APIBaseURL     string   `toml:"api_base_url"`
	RequestTimeout Duration `toml:"request_timeout"`
	UserAgent      string   `toml:"user_agent"`
	// LogPath is the session log file. A nil value means the default
	// location; an empty string disables file logging.
	LogPath   *string `toml:"log_path"`
	HTTPDebug bool    `toml:"http_debug"`
}

func Default() *Config {
	cfg := &Config{
		APIBaseURL:     defaultAPI,
		RequestTimeout: Duration{defaultWait},
		UserAgent:      defaultUA,
	}
	if dir, err := ConfigDir(); err == nil {
		path := filepath.Join(dir, logFile)
		cfg.LogPath = &path
	}
	return cfg
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

func DefaultPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads path on top of the defaults, applies environment overrides and
// validates the result. An empty path means DefaultPath. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	loadDotEnv(".env")

	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnvOverrides(os.LookupEnv); err != nil {
		return nil, err
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	logger.LogFileOpen(path)
	if _, err := toml.DecodeFile(path, c); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Log("No config file at %s, using defaults", path)
			return nil
		}
		logger.LogError("LOAD_CONFIG", path, err)
		return fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	logger.Log("Config loaded successfully from %s", path)
	return nil
}

// loadDotEnv exports variables from an optional .env file in the working
// directory. Variables already set in the environment win.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.LogError("LOAD_DOTENV", path, err)
		}
		return
	}
	logger.Log("Environment loaded from %s", path)
}

// ApplyEnvOverrides replaces file values with any REPOROULETTE_* variables
// found through lookup.
func (c *Config) ApplyEnvOverrides(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAPIBaseURL); ok && v != "" {
		c.APIBaseURL = v
	}

	if v, ok := lookup(EnvRequestTimeout); ok && v != "" {
		if err := c.RequestTimeout.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
	}

	if v, ok := lookup(EnvLogPath); ok {
		c.LogPath = &v
	}

	if v, ok := lookup(EnvHTTPDebug); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHTTPDebug, err)
		}
		c.HTTPDebug = debug
	}

	return nil
}

// SetDefaults fills fields a config file may have blanked.
func (c *Config) SetDefaults() {
	if strings.TrimSpace(c.UserAgent) == "" {
		c.UserAgent = defaultUA
	}
	if strings.TrimSpace(c.APIBaseURL) == "" {
		c.APIBaseURL = defaultAPI
	}
}

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (c *Config) Validate() error {
	var errs []error

	if c.RequestTimeout.Duration <= 0 {
		errs = append(errs, ValidationError{
			Field:   "request_timeout",
			Message: fmt.Sprintf("must be positive, got %s", c.RequestTimeout.Duration),
		})
	}

	u, err := url.Parse(c.APIBaseURL)
	switch {
	case err != nil:
		errs = append(errs, ValidationError{Field: "api_base_url", Message: err.Error()})
	case (u.Scheme != "http" && u.Scheme != "https") || u.Host == "":
		errs = append(errs, ValidationError{
			Field:   "api_base_url",
			Message: fmt.Sprintf("must be an absolute http(s) URL, got %q", c.APIBaseURL),
		})
	}

	return errors.Join(errs...)
}

// LogFile returns the resolved session log path, or "" when file logging is
// disabled.
func (c *Config) LogFile() string {
	if c.LogPath == nil {
		return ""
	}
	return *c.LogPath
}
