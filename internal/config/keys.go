package config

import (
	"fmt"
	"os"
	"strings"
)

// SettingSource represents where an effective setting comes from.
type SettingSource string

const (
	SourceEnv  SettingSource = "env"
	SourceFile SettingSource = "file/default"
)

// Setting is one effective configuration value for display.
type Setting struct {
	Key    string        `json:"key"`
	Value  string        `json:"value"`
	Source SettingSource `json:"source"`
	EnvVar string        `json:"env_var"`
}

// Describe returns the effective settings in display order, each tagged
// with whether an environment variable overrides it.
func Describe(cfg *Config) []Setting {
	return []Setting{
		describe("server.host", cfg.Server.Host),
		describe("server.port", cfg.Server.Port),
		describe("server.cors_origins", strings.Join(cfg.Server.CORSOrigins, ",")),
		describe("server.cache_ttl", cfg.Server.CacheTTL),
		describe("server.rate_limit", cfg.Server.RateLimit),
		describe("render.precision", cfg.Render.Precision),
		describe("render.start_angle", cfg.Render.StartAngle),
		describe("render.inner_ratio", cfg.Render.InnerRatio),
		describe("render.width", cfg.Render.Width),
		describe("render.height", cfg.Render.Height),
		describe("export.out_dir", cfg.Export.OutDir),
		describe("export.concurrency", cfg.Export.Concurrency),
		describe("logging.level", cfg.Logging.Level),
		describe("logging.format", cfg.Logging.Format),
	}
}

// EnvVar returns the environment variable that overrides key.
func EnvVar(key string) string {
	return "PAGEBLOCKS_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func describe(key string, value any) Setting {
	s := Setting{
		Key:    key,
		Value:  fmt.Sprint(value),
		Source: SourceFile,
		EnvVar: EnvVar(key),
	}
	if _, ok := os.LookupEnv(s.EnvVar); ok {
		s.Source = SourceEnv
	}
	return s
}
