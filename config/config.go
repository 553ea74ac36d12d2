// Package config loads runtime settings with viper
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. VIGARAGE_AUDIO_ENABLED
const EnvPrefix = "VIGARAGE"

// ErrUnsupportedFormat is returned for config files with an unknown extension
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config is the decoded runtime configuration
type Config struct {
	LogLevel   string           `mapstructure:"logLevel"`
	Tick       time.Duration    `mapstructure:"tick"`
	Audio      AudioConfig      `mapstructure:"audio"`
	Prototypes PrototypesConfig `mapstructure:"prototypes"`
	Journal    JournalConfig    `mapstructure:"journal"`
}

// AudioConfig holds playback settings
type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"`
}

// PrototypesConfig points at an optional user prototype file merged over the built-in set
type PrototypesConfig struct {
	Path string `mapstructure:"path"`
}

// JournalConfig holds vehicle journal storage settings
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Driver  string `mapstructure:"driver"` // sqlite or postgres
	DSN     string `mapstructure:"dsn"`
}

// New returns a viper instance with defaults and environment binding applied
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("logLevel", "info")
	v.SetDefault("tick", "50ms")

	v.SetDefault("audio.enabled", false)
	v.SetDefault("audio.volume", 0.8)

	v.SetDefault("prototypes.path", "")

	v.SetDefault("journal.enabled", false)
	v.SetDefault("journal.driver", "sqlite")
	v.SetDefault("journal.dsn", "vi-garage.db")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads configuration from path (json, yaml or toml by extension) over the defaults
// An empty path yields defaults plus environment overrides
func Load(path string) (Config, error) {
	v := New()

	if path != "" {
		format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
		switch format {
		case "json", "toml":
		case "yaml", "yml":
			format = "yaml"
		default:
			return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
		}
		v.SetConfigFile(path)
		v.SetConfigType(format)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return Decode(v)
}

// Decode unmarshals a prepared viper instance into Config
func Decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if cfg.Tick <= 0 {
		return Config{}, fmt.Errorf("tick must be positive, got %s", cfg.Tick)
	}
	if cfg.Audio.Volume < 0 || cfg.Audio.Volume > 1 {
		return Config{}, fmt.Errorf("audio.volume must be within [0,1], got %v", cfg.Audio.Volume)
	}
	switch cfg.Journal.Driver {
	case "sqlite", "postgres":
	default:
		return Config{}, fmt.Errorf("journal.driver must be sqlite or postgres, got %q", cfg.Journal.Driver)
	}
	return cfg, nil
}
