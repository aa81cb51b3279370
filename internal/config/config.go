package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g.
// ASHLEY_STRESS_ENTITIES.
const EnvPrefix = "ASHLEY_"

type Config struct {
	Stress  StressConfig  `toml:"stress" yaml:"stress" envPrefix:"STRESS_"`
	Profile ProfileConfig `toml:"profile" yaml:"profile" envPrefix:"PROFILE_"`
	Logging LoggingConfig `toml:"logging" yaml:"logging" envPrefix:"LOGGING_"`
	Tracing TracingConfig `toml:"tracing" yaml:"tracing" envPrefix:"TRACING_"`
}

type StressConfig struct {
	Entities    int           `toml:"entities" yaml:"entities" env:"ENTITIES"`
	Ticks       int           `toml:"ticks" yaml:"ticks" env:"TICKS"`
	TickRate    time.Duration `toml:"tick_rate" yaml:"tick_rate" env:"TICK_RATE"`
	RemoveEvery int           `toml:"remove_every" yaml:"remove_every" env:"REMOVE_EVERY"` // 0 disables removal
	Respawn     bool          `toml:"respawn" yaml:"respawn" env:"RESPAWN"`
}

type ProfileConfig struct {
	Mode string `toml:"mode" yaml:"mode" env:"MODE"` // "cpu", "mem" or "none"
	Path string `toml:"path" yaml:"path" env:"PATH"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level" env:"LEVEL"`
	Format string `toml:"format" yaml:"format" env:"FORMAT"` // "json" or "console"
}

type TracingConfig struct {
	Endpoint    string `toml:"endpoint" yaml:"endpoint" env:"ENDPOINT"` // empty disables tracing
	ServiceName string `toml:"service_name" yaml:"service_name" env:"SERVICE_NAME"`
}

// Load reads the file at path over the defaults, applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Stress.Entities <= 0 {
		return fmt.Errorf("stress.entities must be positive, got %d", c.Stress.Entities)
	}
	if c.Stress.Ticks < 0 {
		return fmt.Errorf("stress.ticks must not be negative, got %d", c.Stress.Ticks)
	}
	if c.Stress.RemoveEvery < 0 {
		return fmt.Errorf("stress.remove_every must not be negative, got %d", c.Stress.RemoveEvery)
	}
	switch c.Profile.Mode {
	case "cpu", "mem", "none":
	default:
		return fmt.Errorf("profile.mode must be cpu, mem or none, got %q", c.Profile.Mode)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func Defaults() *Config {
	return &Config{
		Stress: StressConfig{
			Entities:    10000,
			Ticks:       600,
			TickRate:    time.Second / 60,
			RemoveEvery: 2,
			Respawn:     true,
		},
		Profile: ProfileConfig{
			Mode: "none",
			Path: ".",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Tracing: TracingConfig{
			ServiceName: "ashley-stress",
		},
	}
}
