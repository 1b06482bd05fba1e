// Package config loads tsvg configuration from file, environment and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the complete application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Preview PreviewConfig `mapstructure:"preview"`
	Watch   WatchConfig   `mapstructure:"watch"`
	Storage StorageConfig `mapstructure:"storage"`
	Output  OutputConfig  `mapstructure:"output"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console, json
}

// PreviewConfig controls the rendering surfaces.
type PreviewConfig struct {
	Host  string `mapstructure:"host"`
	Port  int    `mapstructure:"port"`
	Theme string `mapstructure:"theme"`
}

// WatchConfig controls document change detection.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// StorageConfig locates the presets database.
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// OutputConfig sets the default output format for commands.
type OutputConfig struct {
	Format string `mapstructure:"format"` // human, json, jsonl
}

// EnvPrefix is prepended to every environment override, e.g.
// TSVG_PREVIEW_PORT.
const EnvPrefix = "TSVG"

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"console", "json"}
	validOutputs = []string{"human", "json", "jsonl"}
	validThemes  = []string{"default", "high-contrast"}
)

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Preview: PreviewConfig{
			Host:  "127.0.0.1",
			Port:  7766,
			Theme: "default",
		},
		Watch: WatchConfig{
			Debounce: 100 * time.Millisecond,
		},
		Storage: StorageConfig{
			Path: DefaultDatabasePath(),
		},
		Output: OutputConfig{
			Format: "human",
		},
	}
}

// Load reads configuration from configPath, or from the first file found in
// SearchPaths when configPath is empty. A missing default file is not an
// error; a missing explicit file is.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Storage.Path = expandHome(cfg.Storage.Path)

	return &cfg, nil
}

// Validate checks the configuration for unsupported values.
func (c *Config) Validate() error {
	var errs []error

	if !oneOf(c.Logging.Level, validLevels) {
		errs = append(errs, fmt.Errorf("invalid logging level: %s (must be one of %s)", c.Logging.Level, strings.Join(validLevels, ", ")))
	}
	if !oneOf(c.Logging.Format, validFormats) {
		errs = append(errs, fmt.Errorf("invalid logging format: %s (must be console or json)", c.Logging.Format))
	}
	if c.Preview.Port < 0 || c.Preview.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid preview port: %d", c.Preview.Port))
	}
	if !oneOf(c.Preview.Theme, validThemes) {
		errs = append(errs, fmt.Errorf("invalid theme: %s (must be default or high-contrast)", c.Preview.Theme))
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, fmt.Errorf("watch debounce must not be negative"))
	}
	if !oneOf(c.Output.Format, validOutputs) {
		errs = append(errs, fmt.Errorf("invalid output format: %s (must be human, json or jsonl)", c.Output.Format))
	}

	return errors.Join(errs...)
}

// SearchPaths lists default config file locations in precedence order.
func SearchPaths() []string {
	paths := []string{"tsvg.yaml"}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".config", "tsvg", "config.yaml"))
	}
	return paths
}

// DefaultDatabasePath returns the default presets database location.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".tsvg", "tsvg.db")
	}
	return filepath.Join(home, ".local", "share", "tsvg", "tsvg.db")
}

func findConfigFile() string {
	for _, path := range SearchPaths() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("preview.host", defaults.Preview.Host)
	v.SetDefault("preview.port", defaults.Preview.Port)
	v.SetDefault("preview.theme", defaults.Preview.Theme)
	v.SetDefault("watch.debounce", defaults.Watch.Debounce)
	v.SetDefault("storage.path", defaults.Storage.Path)
	v.SetDefault("output.format", defaults.Output.Format)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
