package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	HTTP     HTTPConfig     `yaml:"http"`
	Cache    CacheConfig    `yaml:"cache"`
}

// DatabaseConfig holds the MySQL store configuration. URL is host:port/dbname;
// BanTable is the name of the ban table and is the only value that ever ends
// up in SQL text, so it is validated as a bare identifier.
type DatabaseConfig struct {
	URL      string `yaml:"url"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	BanTable string `yaml:"ban_table"`
}

// HTTPConfig holds the API listener configuration.
type HTTPConfig struct {
	Address string `yaml:"address"`
}

// CacheConfig holds existence-cache tuning.
type CacheConfig struct {
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

var tableNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// LoadConfig loads the configuration from a YAML file, falling back to
// environment variables when the file is absent. Env vars override file
// values either way.
func LoadConfig(filename string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(filename)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("DATABASE_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("BAN_TABLE"); v != "" {
		cfg.Database.BanTable = v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("CACHE_REFRESH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Cache.RefreshInterval = d
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = ":8080"
	}
	if cfg.Cache.RefreshInterval == 0 {
		cfg.Cache.RefreshInterval = time.Hour
	}
}

// Validate enforces the mandatory store keys. A config failing validation is
// a fatal startup condition for the process.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database url is required")
	}
	if !strings.Contains(c.Database.URL, "/") {
		return fmt.Errorf("database url %q must be host:port/dbname", c.Database.URL)
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Password == "" {
		return fmt.Errorf("database password is required")
	}
	if c.Database.BanTable == "" {
		return fmt.Errorf("ban_table is required")
	}
	if !tableNamePattern.MatchString(c.Database.BanTable) {
		return fmt.Errorf("ban_table %q is not a valid table identifier", c.Database.BanTable)
	}
	return nil
}
