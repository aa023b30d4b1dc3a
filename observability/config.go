package observability

import (
	"time"

	"github.com/kbukum/gofetch/validation"
)

// Config configures tracing and metrics export.
type Config struct {
	// Enabled turns on OTLP export. When false Setup leaves the global
	// no-op providers in place.
	Enabled        bool    `yaml:"enabled" mapstructure:"enabled"`
	ServiceName    string  `yaml:"service_name" mapstructure:"service_name"`
	ServiceVersion string  `yaml:"service_version" mapstructure:"service_version"`
	Environment    string  `yaml:"environment" mapstructure:"environment"`
	Endpoint       string  `yaml:"endpoint" mapstructure:"endpoint" validate:"required_if=Enabled true,omitempty,hostname_port"`
	Insecure       bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate     float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	// MetricInterval is the export period of the periodic metric reader.
	MetricInterval time.Duration `yaml:"metric_interval" mapstructure:"metric_interval" validate:"gte=0"`
}

// ApplyDefaults fills in zero-value fields with development defaults.
func (c *Config) ApplyDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "gofetch"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.MetricInterval == 0 {
		c.MetricInterval = 15 * time.Second
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Struct(c)
}
