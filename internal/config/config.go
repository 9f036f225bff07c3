package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends selectable through STORE_BACKEND.
const (
	StoreDynamo = "dynamo"
	StoreMemory = "memory"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort        string   `env:"APP_PORT" envDefault:"3000"`
	AppEnv         string   `env:"APP_ENV" envDefault:"development"`
	StoreBackend   string   `env:"STORE_BACKEND" envDefault:"dynamo"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","` // CORS allowed origins
	Log            Log      `envPrefix:"LOG_"`
	HTTP           HTTP     `envPrefix:"HTTP_"`
	AWS            AWS      `envPrefix:"AWS_"`
	Dynamo         Dynamo   `envPrefix:"DYNAMO_"`
}

// Log contains logger parameters.
type Log struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"` // "json" | "text"
}

// HTTP contains HTTP server timeouts.
type HTTP struct {
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// AWS contains credentials and endpoint settings for the AWS SDK.
type AWS struct {
	Region          string `env:"REGION" envDefault:"us-east-1"`
	EndpointURL     string `env:"ENDPOINT_URL"` // empty in prod, set to LocalStack URL in dev
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
}

// Dynamo holds the device table settings.
type Dynamo struct {
	DevicesTable string `env:"TABLE_DEVICES" envDefault:"devices"`
	Bootstrap    bool   `env:"BOOTSTRAP" envDefault:"true"`
}

// Load reads all configuration from environment variables.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	switch cfg.StoreBackend {
	case StoreDynamo, StoreMemory:
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
	return &cfg, nil
}
