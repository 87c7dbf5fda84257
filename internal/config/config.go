package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Env           string            `yaml:"env"`
	Port          string            `yaml:"port"`
	SecretKey     string            `yaml:"secret_key"`
	DatabaseURL   string            `yaml:"database_url"`
	Debug         bool              `yaml:"debug"`
	Languages     map[string]string `yaml:"languages"`
	DefaultLocale string            `yaml:"default_locale"`
	Log           LogConfig         `yaml:"log"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the development profile.
func Default() *Config {
	return &Config{
		Env:  EnvDevelopment,
		Port: "8080",
		Languages: map[string]string{
			"en": "English",
			"hi": "Hindi",
			"te": "Telugu",
		},
		DefaultLocale: "en",
		Debug:         true,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path on top of the defaults and then applies
// environment overrides. An empty path or a missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// defaults only
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			// A languages block in the file replaces the default set.
			defaults := cfg.Languages
			cfg.Languages = nil
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
			if cfg.Languages == nil {
				cfg.Languages = defaults
			}
		}
	}

	cfg.applyEnv()
	if cfg.Env == EnvProduction {
		cfg.Debug = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("APP_ENV")); v != "" {
		c.Env = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		c.Port = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		c.SecretKey = v
	}
	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		c.DatabaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FILE")); v != "" {
		c.Log.File = v
	}
}

func (c *Config) Validate() error {
	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		return fmt.Errorf("%w: unknown env %q", ErrInvalidConfig, c.Env)
	}
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("%w: port is empty", ErrInvalidConfig)
	}
	if len(c.Languages) == 0 {
		return fmt.Errorf("%w: no languages configured", ErrInvalidConfig)
	}
	if _, ok := c.Languages[c.DefaultLocale]; !ok {
		return fmt.Errorf("%w: default locale %q is not a configured language", ErrInvalidConfig, c.DefaultLocale)
	}
	return nil
}

// SupportsLanguage reports whether code is one of the configured languages.
func (c *Config) SupportsLanguage(code string) bool {
	_, ok := c.Languages[code]
	return ok
}
