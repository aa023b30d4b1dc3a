package httpclient

import (
	"time"

	"github.com/kbukum/gofetch/validation"
	"github.com/kbukum/gofetch/version"
)

const (
	defaultName    = "gofetch"
	defaultTimeout = 30 * time.Second
)

// Config configures the HTTP adapter.
type Config struct {
	// Name identifies the adapter in logs.
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is prepended to request paths that are not absolute URLs.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,http_url"`

	// Timeout bounds a whole request. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`

	// Headers are sent with every request, before per-call headers.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// UserAgent overrides the default gofetch User-Agent.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// Cookies enables an in-memory cookie jar scoped by public suffix.
	Cookies bool `yaml:"cookies" mapstructure:"cookies"`

	// TLS configures the transport's TLS settings.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Auth is applied to every request. Per-call properties can override it.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultName
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent()
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	collector := validation.NewCollector()
	collector.Merge("", validation.Struct(c))
	collector.Merge("tls", c.TLS.Validate())
	for name := range c.Headers {
		collector.Check(name != "", "headers", "header names must not be empty")
	}
	return collector.Err()
}
