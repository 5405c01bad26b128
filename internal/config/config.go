// Package config defines the engine configuration and loads it with viper.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Configuration holds everything the engine needs at startup.
type Configuration struct {
	Port            string
	TableAPIURL     string
	TableAPITimeout time.Duration
}

// LoadConfiguration reads the optional YAML config at configPath and applies
// environment overrides (PORT, TABLE_API_URL, TABLE_API_TIMEOUT_SECONDS).
// An empty configPath skips the file and uses defaults plus environment.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("table_api.url", "")
	v.SetDefault("table_api.timeout_seconds", 2)

	v.AutomaticEnv()
	v.BindEnv("port", "PORT")
	v.BindEnv("table_api.url", "TABLE_API_URL")
	v.BindEnv("table_api.timeout_seconds", "TABLE_API_TIMEOUT_SECONDS")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	return &Configuration{
		Port:            v.GetString("port"),
		TableAPIURL:     v.GetString("table_api.url"),
		TableAPITimeout: time.Duration(v.GetInt("table_api.timeout_seconds")) * time.Second,
	}, nil
}
