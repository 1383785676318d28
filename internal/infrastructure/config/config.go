package config

import (
	"fmt"
	"strconv"

	"github.com/caarlos0/env/v11"

	"github.com/akulaahhhh/Loan-Risk-Evaluator/pkg/kafka"
)

// Config holds all configuration for the risk service.
type Config struct {
	GRPCPort    string `env:"GRPC_PORT" envDefault:"8089"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"9089"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json"`

	// RulesetPath selects a YAML or JSON rule set; empty uses the embedded default.
	RulesetPath string `env:"RISK_RULESET_PATH"`

	KafkaBrokers      []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTLS          bool     `env:"KAFKA_TLS"`
	KafkaSASLEnabled  bool     `env:"KAFKA_SASL_ENABLED"`
	KafkaSASLMech     string   `env:"KAFKA_SASL_MECHANISM" envDefault:"PLAIN"`
	KafkaSASLUsername string   `env:"KAFKA_SASL_USERNAME"`
	KafkaSASLPassword string   `env:"KAFKA_SASL_PASSWORD"`
	EventsTopic       string   `env:"RISK_EVENTS_TOPIC" envDefault:"risk.events"`

	// OTLPEndpoint disables trace export when empty.
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`

	// TLS for the gRPC listener is enabled when both files are set.
	GRPCTLSCertFile string `env:"GRPC_TLS_CERT_FILE"`
	GRPCTLSKeyFile  string `env:"GRPC_TLS_KEY_FILE"`

	GRPCReflection bool `env:"GRPC_REFLECTION" envDefault:"true"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values env parsing cannot.
func (c *Config) Validate() error {
	for name, port := range map[string]string{"GRPC_PORT": c.GRPCPort, "HTTP_PORT": c.HTTPPort} {
		n, err := strconv.Atoi(port)
		if err != nil || n < 1 || n > 65535 {
			return fmt.Errorf("invalid %s %q", name, port)
		}
	}
	if c.GRPCPort == c.HTTPPort {
		return fmt.Errorf("GRPC_PORT and HTTP_PORT must differ, both are %s", c.GRPCPort)
	}
	if c.Kafka().Enabled() && c.EventsTopic == "" {
		return fmt.Errorf("RISK_EVENTS_TOPIC is required when KAFKA_BROKERS is set")
	}
	if (c.GRPCTLSCertFile == "") != (c.GRPCTLSKeyFile == "") {
		return fmt.Errorf("GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE must be set together")
	}
	return nil
}

// GRPCTLSEnabled reports whether the gRPC listener should serve TLS.
func (c *Config) GRPCTLSEnabled() bool {
	return c.GRPCTLSCertFile != "" && c.GRPCTLSKeyFile != ""
}

// GRPCAddress returns the full gRPC listen address.
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf(":%s", c.GRPCPort)
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

// Kafka returns the producer configuration.
func (c *Config) Kafka() kafka.Config {
	return kafka.Config{
		Brokers:       c.KafkaBrokers,
		TLS:           c.KafkaTLS,
		SASLEnabled:   c.KafkaSASLEnabled,
		SASLMechanism: c.KafkaSASLMech,
		SASLUsername:  c.KafkaSASLUsername,
		SASLPassword:  c.KafkaSASLPassword,
	}
}
