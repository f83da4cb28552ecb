package config

import (
	"fmt"
	"os"

	"github.com/mkarimov/vulnrep/internal/charts"
	"github.com/mkarimov/vulnrep/internal/processor"
	"gopkg.in/yaml.v3"
)

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		OutputDir: "reports",
		DBPath:    "vulnrep.db",
		Report: ReportConfig{
			Title:    processor.DefaultTitle,
			TopLimit: processor.DefaultTopLimit,
			Dedup:    true,
		},
		Charts: ChartsConfig{
			BarWidth:  charts.DefaultBarWidth,
			BarHeight: charts.DefaultBarHeight,
			DonutSize: charts.DefaultDonutSize,
		},
	}
}

// WriteDefault writes a default configuration to the specified path
func WriteDefault(path string) error {
	cfg := DefaultConfig()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
