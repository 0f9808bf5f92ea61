package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from config.yaml (if present), .env, and the
// process environment. Environment variables use the NEBULA_ prefix with
// dots replaced by underscores, e.g. NEBULA_API_BASE_URL.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("NEBULA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	for _, path := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "nebula")
	v.SetDefault("app.environment", "development")
	v.SetDefault("api.base_url", "http://localhost:3002/api/v1")
	v.SetDefault("api.timeout", 30)
	v.SetDefault("auth.mock", false)
	v.SetDefault("auth.state_file", defaultStateFile())
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.ttl", 60)
	v.SetDefault("server.address", ":3002")
	v.SetDefault("server.cors_origins", "http://localhost:3000")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

func defaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".nebula_session.json"
	}
	return dir + "/nebula/session.json"
}
