// Package config builds the server configuration from, in increasing order of
// precedence: built-in defaults, a dotenv file and the process environment,
// an optional JSON file, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultAIProviderURL = "https://openrouter.ai/api/v1/chat/completions"
	DefaultAIModel       = "mistralai/mistral-7b-instruct"
)

// Config holds runtime settings for the MoodJournal server.
//
// DatabaseDSN, SecretKey and AIProviderKey have no defaults; Validate fails
// until all three are supplied.
type Config struct {
	HTTPAddr              string
	DatabaseDSN           string
	SecretKey             string
	TokenValidityDuration time.Duration
	AIProviderURL         string
	AIProviderKey         string
	AIModel               string
	AllowedOrigins        []string
	LogLevel              string
	ShutdownTimeout       time.Duration
}

func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":3000"
	c.TokenValidityDuration = 24 * time.Hour
	c.AIProviderURL = DefaultAIProviderURL
	c.AIModel = DefaultAIModel
	c.AllowedOrigins = []string{"*"}
	c.LogLevel = "info"
	c.ShutdownTimeout = 10 * time.Second
}

var (
	ErrMissingDatabaseDSN   = errors.New("database DSN is required")
	ErrMissingSecretKey     = errors.New("JWT secret key is required")
	ErrMissingAIProviderKey = errors.New("AI provider key is required")
)

// Validate reports every missing secret and any non-positive duration.
func (c *Config) Validate() error {
	var errs []error

	if c.DatabaseDSN == "" {
		errs = append(errs, ErrMissingDatabaseDSN)
	}
	if c.SecretKey == "" {
		errs = append(errs, ErrMissingSecretKey)
	}
	if c.AIProviderKey == "" {
		errs = append(errs, ErrMissingAIProviderKey)
	}
	if c.TokenValidityDuration <= 0 {
		errs = append(errs, fmt.Errorf("token validity must be positive, got %s", c.TokenValidityDuration))
	}

	return errors.Join(errs...)
}

// LoadConfig applies every configuration layer and validates the result.
// Malformed input in any layer panics; missing secrets are returned as an
// error so the caller can refuse to start.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
