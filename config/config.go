package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

type ServerConfig struct {
	Port int `toml:"port"`
}

type DatabaseConfig struct {
	DSN string `toml:"dsn"`
}

type JWTConfig struct {
	Secret string `toml:"secret"` // For JWT signing
}

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	JWT      JWTConfig      `toml:"jwt"`
}

// LoadConfig reads the optional TOML file and then applies environment
// overrides. Secrets are expected to come from the environment: PORT,
// DATABASE_DSN, JWT_SECRET.
func LoadConfig(filepath string) (*Config, error) {
	var config Config

	// Set default values
	config.Server.Port = 8000

	// The config file is optional; the environment wins either way
	if _, err := os.Stat(filepath); err == nil {
		if _, err := toml.DecodeFile(filepath, &config); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT value %q: %w", v, err)
		}
		config.Server.Port = port
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.Database.DSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.JWT.Secret = v
	}

	if config.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT signing secret is required (set JWT_SECRET)")
	}
	if config.Database.DSN == "" {
		return nil, fmt.Errorf("database DSN is required (set DATABASE_DSN)")
	}

	return &config, nil
}
