package config

import (
	"fmt"
	"time"
)

// Config is the main SDK configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	API     APIConfig     `mapstructure:"api"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// APIConfig configures the HTTP client that talks to the Nebula backend.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // seconds
}

// RequestTimeout returns the HTTP client timeout with the 30s default
// applied when unset.
func (a APIConfig) RequestTimeout() time.Duration {
	if a.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(a.Timeout) * time.Second
}

// AuthConfig selects the identity source. When Mock is true the file-backed
// demo identity is used instead of the backend profile endpoint.
type AuthConfig struct {
	Mock      bool   `mapstructure:"mock"`
	StateFile string `mapstructure:"state_file"`
}

// CacheConfig configures the optional redis read-through cache for business
// lookups. Disabled unless an address is set and Enabled is true.
type CacheConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"` // seconds
}

func (c CacheConfig) EntryTTL() time.Duration {
	if c.TTL <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.TTL) * time.Second
}

// ServerConfig configures the mock API server.
type ServerConfig struct {
	Address     string `mapstructure:"address"`
	CORSOrigins string `mapstructure:"cors_origins"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func validateConfig(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	return nil
}
