// Package config loads the yaml configuration of the dashboard
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aouyang1/go-utilitycost"
	"github.com/aouyang1/go-utilitycost/dataset"
	"github.com/aouyang1/go-utilitycost/linearmodel"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDataset  = "energy_consumption_modified.csv"
	DefaultListen   = ":8501"
	DefaultLogLevel = "info"
)

var ErrInvalidLogLevel = errors.New("invalid log level")

// Config holds the dashboard configuration. Unset fields fall back to defaults through the
// getters.
type Config struct {
	Dataset       string           `yaml:"dataset,omitempty"`
	Listen        string           `yaml:"listen,omitempty"`
	HistogramBins int              `yaml:"histogram_bins,omitempty"`
	RangePadding  *float64         `yaml:"range_padding,omitempty"`
	RCond         float64          `yaml:"rcond,omitempty"`
	Columns       *dataset.Columns `yaml:"columns,omitempty"`
	LogLevel      string           `yaml:"log_level,omitempty"`
}

// Load reads the config file. A missing file yields an empty config.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("unable to read config file, %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config file, %w", err)
	}
	return &cfg, nil
}

// Save writes the config to file
func Save(configPath string, cfg *Config) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("unable to create config directory, %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("unable to marshal config, %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("unable to write config file, %w", err)
	}
	return nil
}

// DefaultConfigPath returns the default config file path in the working directory
func DefaultConfigPath() string {
	return "config.yaml"
}

// GetDataset returns the dataset path
func (c *Config) GetDataset() string {
	if c.Dataset == "" {
		return DefaultDataset
	}
	return c.Dataset
}

// GetListen returns the http listen address
func (c *Config) GetListen() string {
	if c.Listen == "" {
		return DefaultListen
	}
	return c.Listen
}

// GetHistogramBins returns the number of cost histogram bins
func (c *Config) GetHistogramBins() int {
	if c.HistogramBins <= 0 {
		return utilitycost.DefaultHistogramBins
	}
	return c.HistogramBins
}

// GetRangePadding returns the padding of the position on range chart axis
func (c *Config) GetRangePadding() float64 {
	if c.RangePadding == nil || *c.RangePadding < 0 {
		return utilitycost.DefaultRangePadding
	}
	return *c.RangePadding
}

// GetColumns returns the dataset header names with defaults filled in
func (c *Config) GetColumns() *dataset.Columns {
	return c.Columns.Validate()
}

// GetLogLevel parses the configured log level
func (c *Config) GetLogLevel() (slog.Level, error) {
	level := c.LogLevel
	if level == "" {
		level = DefaultLogLevel
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("got %q, %w", c.LogLevel, ErrInvalidLogLevel)
	}
	return l, nil
}

// Options builds the predictor options described by the config
func (c *Config) Options() *utilitycost.Options {
	opt := utilitycost.NewDefaultOptions()
	opt.HistogramBins = c.GetHistogramBins()
	opt.RangePadding = c.GetRangePadding()
	if c.RCond > 0 {
		opt.OLSOptions = &linearmodel.OLSOptions{
			FitIntercept: true,
			RCond:        c.RCond,
		}
	}
	return opt
}
