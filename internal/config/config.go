package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for a skillmesh invocation.
// Values are populated from .skillmesh.yaml, SKILLMESH_* env vars, and CLI flags.
type Config struct {
	Model         string `mapstructure:"model"`
	CacheDir      string `mapstructure:"cache_dir"`
	NoColor       bool   `mapstructure:"no_color"`
	Verbose       bool   `mapstructure:"verbose"`
	TelemetryPath string `mapstructure:"telemetry_path"`
	Strict        bool   `mapstructure:"strict"`
}

// CacheEnabled reports whether compiled indexes should be cached on disk.
func (c Config) CacheEnabled() bool {
	return c.CacheDir != ""
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("model", "skills.toml")
	viper.SetDefault("cache_dir", "")
	viper.SetDefault("no_color", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("strict", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}
