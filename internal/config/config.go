package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	appDir          = "workclock"
	defaultDatabase = "data.sqlite"
	logFile         = "workclock.log"
)

// Config holds user settings. Every field is optional in the file.
type Config struct {
	DataDir        string `yaml:"data_dir"`
	Database       string `yaml:"database"`
	LogLevel       string `yaml:"log_level"`
	NoiseThreshold int64  `yaml:"noise_threshold"`
}

// Default returns settings used when no config file exists
func Default() *Config {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = filepath.Join(os.TempDir(), "cache")
	}
	return &Config{
		DataDir:        filepath.Join(dir, appDir),
		Database:       defaultDatabase,
		LogLevel:       "info",
		NoiseThreshold: 120,
	}
}

// DefaultPath returns where the config file lives unless --config says otherwise
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, "config.yaml"), nil
}

// Load reads path over the defaults, then applies environment overrides.
// A missing file is fine unless required is set.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !required:
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("WORKCLOCK_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("WORKCLOCK_DATABASE"); v != "" {
		c.Database = v
	}
	if v := os.Getenv("WORKCLOCK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("WORKCLOCK_NOISE_THRESHOLD"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("WORKCLOCK_NOISE_THRESHOLD: %w", err)
		}
		c.NoiseThreshold = n
	}
	return nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.DataDir) == "" {
		problems = append(problems, "data_dir is required")
	}
	if strings.TrimSpace(c.Database) == "" {
		problems = append(problems, "database is required")
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log_level %q", c.LogLevel))
	}
	if c.NoiseThreshold < 0 {
		problems = append(problems, fmt.Sprintf("invalid noise_threshold %d: must not be negative", c.NoiseThreshold))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// DatabasePath returns the ledger file location. An absolute Database wins over DataDir.
func (c *Config) DatabasePath() string {
	if filepath.IsAbs(c.Database) {
		return c.Database
	}
	return filepath.Join(c.DataDir, c.Database)
}

// LogPath returns the log file location
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, logFile)
}
