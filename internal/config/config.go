// Package config loads formblob settings from defaults, an optional YAML
// file and FORMBLOB_* environment variables, in increasing precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. FORMBLOB_LAYOUT_DIR.
const EnvPrefix = "FORMBLOB"

type Config struct {
	Addr          string        `mapstructure:"addr" yaml:"addr"`
	AssetPrefix   string        `mapstructure:"asset_prefix" yaml:"asset_prefix"`
	ShutdownGrace time.Duration `mapstructure:"shutdown_grace" yaml:"shutdown_grace"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`

	Layout LayoutConfig `mapstructure:"layout" yaml:"layout"`
	Theme  ThemeConfig  `mapstructure:"theme" yaml:"theme"`
}

type LayoutConfig struct {
	// Dir holds extra layout files; empty means only the bundled layout.
	Dir  string `mapstructure:"dir" yaml:"dir"`
	Name string `mapstructure:"name" yaml:"name"`
}

type ThemeConfig struct {
	Name    string `mapstructure:"name" yaml:"name"`
	Variant string `mapstructure:"variant" yaml:"variant"`
}

func Default() Config {
	return Config{
		Addr:          ":8080",
		AssetPrefix:   "/assets",
		ShutdownGrace: 10 * time.Second,
		LogLevel:      "info",
		LogFormat:     "logfmt",
		Layout:        LayoutConfig{Name: "default"},
	}
}

// Load resolves the configuration. path may be empty.
func Load(path string) (Config, error) {
	// viper only maps env vars onto keys it already knows, so seed every key
	// from the marshalled defaults first.
	v := viper.NewWithOptions()
	b, err := yaml.Marshal(Default())
	if err != nil {
		return Config{}, fmt.Errorf("config: encode defaults: %w", err)
	}
	v.SetConfigType("yaml")
	if err := v.MergeConfig(bytes.NewReader(b)); err != nil {
		return Config{}, fmt.Errorf("config: merge defaults: %w", err)
	}

	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.ShutdownGrace < 0 {
		errs = append(errs, fmt.Errorf("shutdown_grace must not be negative, got %s", c.ShutdownGrace))
	}
	switch {
	case c.AssetPrefix == "":
	case !strings.HasPrefix(c.AssetPrefix, "/"):
		errs = append(errs, fmt.Errorf("asset_prefix must start with /, got %q", c.AssetPrefix))
	case strings.TrimRight(c.AssetPrefix, "/") == "":
		// A root prefix would shadow every other route.
		errs = append(errs, fmt.Errorf("asset_prefix must name a path below /, got %q", c.AssetPrefix))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
