package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ErrNotFound indicates no config file exists at the given or
// searched locations. Callers typically fall back to DefaultConfig.
var ErrNotFound = errors.New("config file not found")

// Config represents the application configuration
type Config struct {
	OutputDir string       `mapstructure:"output_dir" yaml:"output_dir"`
	DBPath    string       `mapstructure:"db_path" yaml:"db_path"`
	Report    ReportConfig `mapstructure:"report" yaml:"report"`
	Charts    ChartsConfig `mapstructure:"charts" yaml:"charts"`
}

// ReportConfig contains defaults for report processing
type ReportConfig struct {
	Title    string `mapstructure:"title" yaml:"title"`
	TopLimit int    `mapstructure:"top_limit" yaml:"top_limit"`
	Dedup    bool   `mapstructure:"dedup" yaml:"dedup"`
}

// ChartsConfig contains pixel dimensions for the embedded charts
type ChartsConfig struct {
	BarWidth  int `mapstructure:"bar_width" yaml:"bar_width"`
	BarHeight int `mapstructure:"bar_height" yaml:"bar_height"`
	DonutSize int `mapstructure:"donut_size" yaml:"donut_size"`
}

// Load reads and parses configuration from a YAML file.
// If path is empty, searches for vulnrep.yaml in the current directory,
// ./configs, and ~/.config/vulnrep/. A missing file yields ErrNotFound.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		// Use explicit path
		v.SetConfigFile(path)
	} else {
		// Search for config in default locations
		v.SetConfigName("vulnrep")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")

		homeDir, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".config", "vulnrep"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path cannot be empty"))
	}

	if c.Report.TopLimit <= 0 {
		errs = append(errs, errors.New("report.top_limit must be positive"))
	}

	if c.Charts.BarWidth <= 0 {
		errs = append(errs, errors.New("charts.bar_width must be positive"))
	}

	if c.Charts.BarHeight <= 0 {
		errs = append(errs, errors.New("charts.bar_height must be positive"))
	}

	if c.Charts.DonutSize <= 0 {
		errs = append(errs, errors.New("charts.donut_size must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}
