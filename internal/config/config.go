package config

import (
	"fmt"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"strings"
	"time"
)

const (
	// ValueKindInt makes the server store int64 values
	ValueKindInt = "int"

	// ValueKindFloat makes the server store float64 values
	ValueKindFloat = "float"
)

// Config represents the application configuration structure
type Config struct {
	Environment      string        `default:"prod"`
	APIListenAddress string        `default:":8081" split_words:"true"`
	ValueKind        string        `default:"int" split_words:"true"`
	MaxKeyLength     int           `default:"30" split_words:"true"`
	ReportInterval   time.Duration `default:"1m" split_words:"true"`
}

// IsEnvProduction returns whether the application runs in production mode
func (config *Config) IsEnvProduction() bool {
	return strings.ToLower(config.Environment) == "prod"
}

// Validate checks the configured values for consistency
func (config *Config) Validate() error {
	switch config.ValueKind {
	case ValueKindInt, ValueKindFloat:
	default:
		return fmt.Errorf("unsupported value kind %q (expected %q or %q)", config.ValueKind, ValueKindInt, ValueKindFloat)
	}
	if config.MaxKeyLength < 2 {
		return fmt.Errorf("max key length %d is too small to hold a single key section", config.MaxKeyLength)
	}
	if config.ReportInterval < 0 {
		return fmt.Errorf("report interval must not be negative (got %s)", config.ReportInterval)
	}
	return nil
}

// LoadFromEnv loads a new configuration structure using environment variables and an optional .env file
func LoadFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()

	// Load a new configuration structure using environment variables
	config := new(Config)
	if err := envconfig.Process("tally", config); err != nil {
		return nil, err
	}
	config.ValueKind = strings.ToLower(config.ValueKind)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
