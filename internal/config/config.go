package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all environment backed configuration for dialogue-api.
type Config struct {
	// HTTP Server
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"9091"`
	DatabaseURL string `env:"DATABASE_URL,notEmpty"`

	// Completion backend
	CompletionBackend string        `env:"COMPLETION_BACKEND" envDefault:"openai"`
	CompletionBaseURL string        `env:"COMPLETION_BASE_URL" envDefault:"https://api.openai.com/v1"`
	CompletionAPIKey  string        `env:"COMPLETION_API_KEY"`
	LocalNodeURL      string        `env:"LOCAL_NODE_URL" envDefault:"http://localhost:11434/v1"`
	CompletionModel   string        `env:"COMPLETION_MODEL" envDefault:"gpt-4o-mini"`
	CompletionTimeout time.Duration `env:"COMPLETION_TIMEOUT" envDefault:"45s"`

	// Observability / Logging
	OTLPEndpoint     string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders      string `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceName      string `env:"SERVICE_NAME" envDefault:"dialogue-api"`
	ServiceNamespace string `env:"SERVICE_NAMESPACE" envDefault:"colloquy"`
	Environment      string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string `env:"LOG_FORMAT" envDefault:"console"`

	// Features
	AutoMigrate  bool   `env:"AUTO_MIGRATE" envDefault:"true"`
	SeedRoles    bool   `env:"SEED_ROLES" envDefault:"true"`
	RoleSeedFile string `env:"ROLE_SEED_FILE"`
}

// Supported completion backends.
const (
	BackendOpenAI = "openai"
	BackendLocal  = "local"
)

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.CompletionBackend = strings.ToLower(strings.TrimSpace(cfg.CompletionBackend))
	switch cfg.CompletionBackend {
	case BackendOpenAI, BackendLocal:
	default:
		return nil, fmt.Errorf("unsupported COMPLETION_BACKEND %q", cfg.CompletionBackend)
	}

	if cfg.CompletionBackend == BackendOpenAI && cfg.CompletionAPIKey == "" {
		return nil, errors.New("COMPLETION_API_KEY must be set when COMPLETION_BACKEND is openai")
	}

	if _, err := url.ParseRequestURI(cfg.CompletionEndpoint()); err != nil {
		return nil, fmt.Errorf("invalid completion endpoint: %w", err)
	}

	if cfg.CompletionTimeout <= 0 {
		return nil, errors.New("COMPLETION_TIMEOUT must be positive")
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	global = cfg
	return cfg, nil
}

var global *Config

// GetGlobal returns the config loaded by the last successful Load call.
func GetGlobal() *Config {
	return global
}

// CompletionEndpoint returns the base URL of the active completion backend.
func (c *Config) CompletionEndpoint() string {
	if c.CompletionBackend == BackendLocal {
		return c.LocalNodeURL
	}
	return c.CompletionBaseURL
}

var Version = "dev"

func IsDev() bool {
	return strings.HasPrefix(Version, "dev")
}
