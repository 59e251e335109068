package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultSourceURL is the Toto Formule 1 outrights page.
const DefaultSourceURL = "https://sport.toto.nl/wedden/sport/4090/formule-1/outrights"

type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Storage StorageConfig `yaml:"storage"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

type SourceConfig struct {
	URL       string        `yaml:"url"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
}

type StorageConfig struct {
	Driver      string `yaml:"driver"`       // "sqlite" (default) or "postgres"
	SQLitePath  string `yaml:"sqlite_path"`  // database file for the sqlite driver
	PostgresDSN string `yaml:"postgres_dsn"` // DSN for the postgres driver
	RetainRaw   bool   `yaml:"retain_raw"`   // keep raw page text on snapshots for audit/replay
}

type RenderConfig struct {
	// MaxExpandRounds bounds how many times the rendered fetch re-queries
	// and clicks the remaining "Bekijk meer" controls.
	MaxExpandRounds int           `yaml:"max_expand_rounds"`
	Timeout         time.Duration `yaml:"timeout"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Load reads YAML configuration from configPath and applies defaults. An
// empty path returns the defaults unchanged.
func Load(configPath string) (*Config, error) {
	config := Default()
	if configPath == "" {
		return config, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	config.applyDefaults()
	return config, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Source.URL == "" {
		c.Source.URL = DefaultSourceURL
	}
	if c.Source.Timeout <= 0 {
		c.Source.Timeout = 25 * time.Second
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "sqlite"
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = "toto_f1.sqlite"
	}
	if c.Render.MaxExpandRounds <= 0 {
		c.Render.MaxExpandRounds = 12
	}
	if c.Render.Timeout <= 0 {
		c.Render.Timeout = 90 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Validate rejects configurations the store cannot act on.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "sqlite":
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("storage.sqlite_path is required for the sqlite driver")
		}
	case "postgres":
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("storage.postgres_dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}
