package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/gravitrone/ora-response/cli/internal/api"
)

// Environment overrides, applied after the config file.
const (
	EnvBaseURL  = "ORA_BASE_URL"
	EnvAPIKey   = "ORA_API_KEY"
	EnvLogLevel = "ORA_LOG_LEVEL"
)

// Config holds CLI configuration stored at ~/.ora/config.
type Config struct {
	BaseURL  string        `yaml:"base_url"`
	APIKey   string        `yaml:"api_key,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
	LogLevel string        `yaml:"log_level,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		BaseURL:  api.DefaultBaseURL,
		Timeout:  30 * time.Second,
		LogLevel: "info",
	}
}

// Dir returns the directory holding config and logs.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".ora")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "config")
}

// LogPath returns the file the TUI writes its log to.
func LogPath() string {
	return filepath.Join(Dir(), "ora.log")
}

// Load reads and parses the config file. Returns error if missing or insecure.
func Load() (*Config, error) {
	path := Path()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config not found: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("config missing base_url")
	}

	return cfg, nil
}

// Resolve loads the config file when present, falls back to defaults when
// it is missing, and applies .env and environment overrides.
func Resolve(dotenvPath string) (*Config, error) {
	if err := LoadDotenv(dotenvPath); err != nil {
		slog.Warn("failed to load .env", "path", dotenvPath, "error", err)
	}
	cfg, err := Load()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = Default()
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// LoadDotenv loads KEY=VALUE pairs into the environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotenv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// ApplyEnv overrides fields from ORA_* environment variables.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		c.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		c.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
}

// SlogLevel maps LogLevel onto slog levels. Unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}
