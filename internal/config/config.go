// Package config handles configuration loading for pageblocks.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  yaml:"server"`
	Render  RenderConfig  `mapstructure:"render"  yaml:"render"`
	Export  ExportConfig  `mapstructure:"export"  yaml:"export"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// ServerConfig holds preview server settings.
type ServerConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
	CacheTTL    int      `mapstructure:"cache_ttl"    yaml:"cache_ttl"`  // seconds
	RateLimit   int      `mapstructure:"rate_limit"   yaml:"rate_limit"` // chart renders per minute, 0 disables
}

// RenderConfig holds chart rendering defaults.
type RenderConfig struct {
	Precision  int     `mapstructure:"precision"   yaml:"precision"`   // decimals in path data
	StartAngle float64 `mapstructure:"start_angle" yaml:"start_angle"` // degrees, -90 is 12 o'clock
	InnerRatio float64 `mapstructure:"inner_ratio" yaml:"inner_ratio"` // donut hole, 0 draws pies
	Width      int     `mapstructure:"width"       yaml:"width"`
	Height     int     `mapstructure:"height"      yaml:"height"`
}

// ExportConfig holds static export settings.
type ExportConfig struct {
	OutDir      string `mapstructure:"out_dir"     yaml:"out_dir"`
	Concurrency int    `mapstructure:"concurrency" yaml:"concurrency"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.pageblocks/config.yaml (home directory)
//  3. /etc/pageblocks/config.yaml (system)
//
// Environment variables override config file values.
// Format: PAGEBLOCKS_<SECTION>_<KEY>, e.g., PAGEBLOCKS_SERVER_PORT
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".pageblocks"))
	v.AddConfigPath("/etc/pageblocks")

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return unmarshal(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("PAGEBLOCKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.cache_ttl", 300) // 5 minutes
	v.SetDefault("server.rate_limit", 60)

	// Render defaults
	v.SetDefault("render.precision", 2)
	v.SetDefault("render.start_angle", -90.0)
	v.SetDefault("render.inner_ratio", 0.6)
	v.SetDefault("render.width", 320)
	v.SetDefault("render.height", 320)

	// Export defaults
	v.SetDefault("export.out_dir", "./dist")
	v.SetDefault("export.concurrency", 4)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	if c.Server.CacheTTL < 0 {
		return fmt.Errorf("config: server.cache_ttl must be >= 0, got %d", c.Server.CacheTTL)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("config: server.rate_limit must be >= 0, got %d", c.Server.RateLimit)
	}
	if c.Render.Precision < 0 || c.Render.Precision > 6 {
		return fmt.Errorf("config: render.precision must be 0..6, got %d", c.Render.Precision)
	}
	if c.Render.InnerRatio < 0 || c.Render.InnerRatio >= 1 {
		return fmt.Errorf("config: render.inner_ratio must be in [0, 1), got %v", c.Render.InnerRatio)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("config: render size must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.Export.Concurrency < 1 {
		return fmt.Errorf("config: export.concurrency must be >= 1, got %d", c.Export.Concurrency)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("config: unknown logging.level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown logging.format %q", c.Logging.Format)
	}
	return nil
}

// Addr returns the listen address for the preview server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
