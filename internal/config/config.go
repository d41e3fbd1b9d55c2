package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"pitos/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Engine   EngineConfig
	Output   OutputConfig
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
}

// EngineConfig holds test execution settings
type EngineConfig struct {
	Workers      int // goroutines evaluating the pairs of one sample
	BatchWorkers int // samples evaluated concurrently in a batch
}

// OutputConfig holds CLI output settings
type OutputConfig struct {
	Precision int
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Addr         string
	MaxBodyBytes int64
}

// DatabaseConfig holds the run ledger connection. An empty URL disables the ledger.
type DatabaseConfig struct {
	URL string
}

// LoggingConfig holds log settings
type LoggingConfig struct {
	Level  string
	Format string
}

const (
	defaultPrecision    = 18
	defaultBatchWorkers = 4
	defaultMaxBodyBytes = 10 << 20
)

// Load reads optional .env files, then environment variables, and validates the result.
// Missing env files are ignored; unreadable ones are an error.
func Load(envFiles ...string) (*Config, error) {
	for _, file := range envFiles {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return nil, errors.Wrapf(errors.WithCode(errors.CodeConfigInvalid, err), "failed to load %s", file)
		}
	}

	config := &Config{
		Engine: EngineConfig{
			Workers:      getEnvIntOrDefault("PITOS_WORKERS", 1),
			BatchWorkers: getEnvIntOrDefault("PITOS_BATCH_WORKERS", defaultBatchWorkers),
		},
		Output: OutputConfig{
			Precision: getEnvIntOrDefault("PITOS_PRECISION", defaultPrecision),
		},
		Server: ServerConfig{
			Addr:         getEnvOrDefault("PITOS_ADDR", ":8080"),
			MaxBodyBytes: int64(getEnvIntOrDefault("PITOS_MAX_BODY_BYTES", defaultMaxBodyBytes)),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("PITOS_DATABASE_URL"),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Engine.Workers < 1 {
		return errors.ConfigInvalid("PITOS_WORKERS must be at least 1")
	}
	if c.Engine.BatchWorkers < 1 {
		return errors.ConfigInvalid("PITOS_BATCH_WORKERS must be at least 1")
	}
	if c.Output.Precision < 0 || c.Output.Precision > 30 {
		return errors.ConfigInvalid("PITOS_PRECISION must be between 0 and 30")
	}
	if c.Server.Addr == "" {
		return errors.ConfigInvalid("PITOS_ADDR is required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.ConfigInvalid("PITOS_MAX_BODY_BYTES must be positive")
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return errors.ConfigInvalid("LOG_FORMAT must be text or json")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
