// Package config loads client settings from flags, the environment, a .env
// file and an optional YAML config file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "SIMPLENOTE"

	DefaultBaseURL       = "https://simple-note.appspot.com/api"
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "text"
	DefaultOutput        = "text"
	DefaultQueryEncoding = "double"
)

type Config struct {
	BaseURL       string        `mapstructure:"base_url"`
	Email         string        `mapstructure:"email"`
	Password      string        `mapstructure:"password"`
	Timeout       time.Duration `mapstructure:"timeout"`
	LogLevel      string        `mapstructure:"log_level"`
	LogFormat     string        `mapstructure:"log_format"`
	Output        string        `mapstructure:"output"`
	QueryEncoding string        `mapstructure:"query_encoding"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"base-url":       "base_url",
	"email":          "email",
	"timeout":        "timeout",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"output":         "output",
	"query-encoding": "query_encoding",
}

// DefaultPath returns the config file consulted when none is given explicitly.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "simplenote", "config.yaml"), nil
}

// Load builds a validated Config. An empty path falls back to DefaultPath,
// which is skipped silently when it does not exist. Only flags that were
// set on the command line take effect.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("email", "")
	v.SetDefault("password", "")
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("query_encoding", DefaultQueryEncoding)

	explicit := path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}

	var file string
	if path != "" {
		if _, err := os.Stat(path); err == nil || explicit {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
			file = path
			if v.InConfig("password") {
				warnPermissions(path)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = file
	cfg.Output = strings.ToLower(cfg.Output)
	cfg.QueryEncoding = strings.ToLower(cfg.QueryEncoding)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func warnPermissions(path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.Mode().Perm()&0o077 != 0 {
		fmt.Fprintf(os.Stderr, "Warning: config file %s contains a password and has overly permissive permissions (%o), consider chmod 600\n", path, info.Mode().Perm())
	}
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, validation.By(httpURL)),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
		validation.Field(&c.LogLevel, validation.By(logLevel)),
		validation.Field(&c.LogFormat, validation.In("text", "json")),
		validation.Field(&c.Output, validation.Required, validation.In("json", "yaml", "text", "html")),
		validation.Field(&c.QueryEncoding, validation.In("double", "single")),
	)
}

func httpURL(value any) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an absolute http or https URL")
	}
	return nil
}

func logLevel(value any) error {
	s, _ := value.(string)
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return errors.New("must be one of debug, info, warn, error")
	}
	return nil
}

// SlogLevel returns the configured level, or warn if it cannot be parsed.
func (c *Config) SlogLevel() slog.Level {
	level := slog.LevelWarn
	_ = level.UnmarshalText([]byte(c.LogLevel))
	return level
}
