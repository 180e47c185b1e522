package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"todo-backend/internal/ids"
	"todo-backend/internal/observability/logging"
)

const EnvPrefix = "TODO_BACKEND"

type Config struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	IDScheme          string        `mapstructure:"id_scheme"`
	LogLevel          string        `mapstructure:"log_level"`
	LogFormat         string        `mapstructure:"log_format"`
	Debug             bool          `mapstructure:"debug"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes      int64         `mapstructure:"max_body_bytes"`
}

func Default() Config {
	return Config{
		Port:              5000,
		IDScheme:          ids.SchemeUUID,
		LogLevel:          "info",
		LogFormat:         logging.FormatText,
		ReadHeaderTimeout: 5 * time.Second,
		RequestTimeout:    3 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		MaxBodyBytes:      1 << 20,
	}
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"port":       "port",
	"base-url":   "base_url",
	"id-scheme":  "id_scheme",
	"log-level":  "log_level",
	"log-format": "log_format",
	"debug":      "debug",
}

// Load layers defaults, the optional file at path, TODO_BACKEND_* env vars
// and flags that were explicitly set, in increasing priority.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("port", def.Port)
	v.SetDefault("base_url", def.BaseURL)
	v.SetDefault("id_scheme", def.IDScheme)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_format", def.LogFormat)
	v.SetDefault("debug", def.Debug)
	v.SetDefault("read_header_timeout", def.ReadHeaderTimeout)
	v.SetDefault("request_timeout", def.RequestTimeout)
	v.SetDefault("shutdown_timeout", def.ShutdownTimeout)
	v.SetDefault("max_body_bytes", def.MaxBodyBytes)

	if path != "" {
		if err := loadFile(v, path); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(v *viper.Viper, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var m map[string]any
		if _, err := toml.DecodeFile(path, &m); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		if err := v.MergeConfigMap(m); err != nil {
			return fmt.Errorf("merge config %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url must be absolute, got %q", c.BaseURL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return errors.New("base_url must not carry a query or fragment")
	}

	if _, err := ids.ForScheme(c.IDScheme); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return err
	}

	if c.ReadHeaderTimeout <= 0 || c.RequestTimeout <= 0 || c.ShutdownTimeout <= 0 {
		return errors.New("timeouts must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("max_body_bytes must be positive")
	}
	return nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// PathPrefix is the path component of BaseURL without a trailing slash;
// the todo routes are mounted there.
func (c Config) PathPrefix() string {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return ""
	}
	return strings.TrimRight(u.Path, "/")
}
