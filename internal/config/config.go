package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"l14flow/pkg/layout"
	"l14flow/pkg/text"
)

// Config is the full l14flow configuration.
type Config struct {
	Viewport ViewportConfig `mapstructure:"viewport" yaml:"viewport"`
	Layout   LayoutConfig   `mapstructure:"layout" yaml:"layout"`
	Text     TextConfig     `mapstructure:"text" yaml:"text"`
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
}

type ViewportConfig struct {
	Width  float64 `mapstructure:"width" yaml:"width"`
	Height float64 `mapstructure:"height" yaml:"height"`
}

// LayoutConfig tunes the reflow.
type LayoutConfig struct {
	Parallel bool `mapstructure:"parallel" yaml:"parallel"`
	// Workers bounds the traversal worker pool. 0 means GOMAXPROCS.
	Workers int `mapstructure:"workers" yaml:"workers"`
	// OverflowInflation is the allowance added around every overflow rect.
	OverflowInflation   float64 `mapstructure:"overflow_inflation" yaml:"overflow_inflation"`
	ValidateDisplayList bool    `mapstructure:"validate_display_list" yaml:"validate_display_list"`
}

type TextConfig struct {
	// FontPath is a TrueType font for measurement and rendering. Empty
	// selects the deterministic estimate.
	FontPath     string `mapstructure:"font_path" yaml:"font_path"`
	BoldFontPath string `mapstructure:"bold_font_path" yaml:"bold_font_path"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// SetDefaults registers the default of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("viewport.width", 800)
	v.SetDefault("viewport.height", 600)

	v.SetDefault("layout.parallel", true)
	v.SetDefault("layout.workers", 0)
	v.SetDefault("layout.overflow_inflation", layout.DefaultOverflowInflation)
	v.SetDefault("layout.validate_display_list", false)

	v.SetDefault("text.font_path", "")
	v.SetDefault("text.bold_font_path", "")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "l14flow")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
}

// NewViper returns a viper instance with defaults and the L14FLOW_
// environment prefix. A non-empty path is read as the config file; an
// empty one looks for ./l14flow.yaml and tolerates its absence.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("L14FLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("l14flow")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return v, nil
}

// NewConfigFromViper unmarshals and validates a configuration.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate reports every out-of-range value at once.
func (c *Config) Validate() error {
	var errs error
	if c.Viewport.Width <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("viewport.width must be positive, got %g", c.Viewport.Width))
	}
	if c.Viewport.Height <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("viewport.height must be positive, got %g", c.Viewport.Height))
	}
	if c.Layout.Workers < 0 {
		errs = multierr.Append(errs, fmt.Errorf("layout.workers must not be negative, got %d", c.Layout.Workers))
	}
	if c.Layout.OverflowInflation < 0 {
		errs = multierr.Append(errs, fmt.Errorf("layout.overflow_inflation must not be negative, got %g", c.Layout.OverflowInflation))
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		errs = multierr.Append(errs, fmt.Errorf("logger.format must be console or json, got %q", c.Logger.Format))
	}
	return errs
}

// LayoutOptions maps the configuration onto layout.Options.
func (c *Config) LayoutOptions() layout.Options {
	return layout.Options{
		ViewportWidth:       c.Viewport.Width,
		ViewportHeight:      c.Viewport.Height,
		Parallel:            c.Layout.Parallel,
		Workers:             c.Layout.Workers,
		OverflowInflation:   c.Layout.OverflowInflation,
		ValidateDisplayList: c.Layout.ValidateDisplayList,
	}
}

// FontConfig maps the text settings onto text.FontConfig.
func (c *Config) FontConfig() text.FontConfig {
	return text.FontConfig{Regular: c.Text.FontPath, Bold: c.Text.BoldFontPath}
}

// Measurer returns the text measurer the configuration selects.
func (c *Config) Measurer() (text.Measurer, error) {
	if c.Text.FontPath == "" {
		return text.EstimateMeasurer{}, nil
	}
	return text.NewFontMeasurer(c.FontConfig())
}
