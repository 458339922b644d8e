package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/tournevent/shipit/pkg/shipit"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`

	// Shipit
	ShipitEmail         string        `envconfig:"SHIPIT_EMAIL" validate:"omitempty,email"`
	ShipitAccessToken   string        `envconfig:"SHIPIT_ACCESS_TOKEN"`
	ShipitEnvironment   string        `envconfig:"SHIPIT_ENVIRONMENT" default:"production"`
	ShipitBaseURL       string        `envconfig:"SHIPIT_BASE_URL" default:"https://api.shipit.cl/v/" validate:"required,url"`
	ShipitOrdersBaseURL string        `envconfig:"SHIPIT_ORDERS_BASE_URL" default:"https://orders.shipit.cl/v/" validate:"required,url"`
	ShipitTimeout       time.Duration `envconfig:"SHIPIT_TIMEOUT" default:"30s" validate:"gt=0"`
	ShipitUseMock       bool          `envconfig:"SHIPIT_USE_MOCK" default:"false"`

	// Webhooks
	WebhookPath  string `envconfig:"WEBHOOK_PATH" default:"/webhooks/shipit" validate:"startswith=/"`
	RedisURL     string `envconfig:"REDIS_URL" validate:"omitempty,url"`
	RedisChannel string `envconfig:"REDIS_CHANNEL" default:"shipit:events" validate:"required"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"false"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://localhost:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"shipit-bridge" validate:"required"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

var validate = validator.New()

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Shipit returns the client configuration.
func (c *Config) Shipit() shipit.Config {
	return shipit.Config{
		Email:         c.ShipitEmail,
		Token:         c.ShipitAccessToken,
		Environment:   shipit.ParseEnvironment(c.ShipitEnvironment),
		BaseURL:       c.ShipitBaseURL,
		OrdersBaseURL: c.ShipitOrdersBaseURL,
		Timeout:       c.ShipitTimeout,
		UseMock:       c.ShipitUseMock,
	}
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.String("shipit.environment", shipit.ParseEnvironment(c.ShipitEnvironment).String()),
		attribute.Bool("shipit.mock", c.ShipitUseMock),
		attribute.Bool("redis.enabled", c.RedisURL != ""),
	}
}
