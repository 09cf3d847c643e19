package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Address  string `mapstructure:"address"`
		HTTPPort string `mapstructure:"http_port"`
	} `mapstructure:"server"`

	Database struct {
		Driver string `mapstructure:"driver"` // mysql | postgres | "" (no DB)
		DSN    string `mapstructure:"dsn"`
	} `mapstructure:"database"`

	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
		File   string `mapstructure:"file"`
	} `mapstructure:"logging"`

	Registry struct {
		File            string        `mapstructure:"file"`      // local CSV, takes precedence
		Delimiter       string        `mapstructure:"delimiter"` // "," default, the bundled file uses ";"
		FetchURLs       []string      `mapstructure:"fetch_urls"`
		FetchOnStart    bool          `mapstructure:"fetch_on_start"`
		RefreshInterval time.Duration `mapstructure:"refresh_interval"` // 0 — no periodic refresh
		SkipMalformed   bool          `mapstructure:"skip_malformed"`
		KeepSnapshots   int           `mapstructure:"keep_snapshots"`
	} `mapstructure:"registry"`
}

// Load reads the yaml config (explicit path, or ouisvc.yaml from ./ and
// /etc/ouisvc) with OUISVC_* environment overrides. A missing file is fine
// when no explicit path was given — defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.http_port", "8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("registry.fetch_on_start", true)
	v.SetDefault("registry.keep_snapshots", 5)

	v.SetEnvPrefix("OUISVC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("ouisvc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/ouisvc")
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FetchURLsOrDefault returns configured fetch URLs, nil only when fetching
// is fully disabled.
func (c *Config) FetchURLsOrDefault(def []string) []string {
	if len(c.Registry.FetchURLs) > 0 {
		return c.Registry.FetchURLs
	}
	return def
}
