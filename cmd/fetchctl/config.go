package main

import (
	"github.com/kbukum/gofetch/config"
	"github.com/kbukum/gofetch/fetch"
	"github.com/kbukum/gofetch/observability"
	"github.com/kbukum/gofetch/validation"
	"github.com/kbukum/gofetch/version"
)

const appName = "fetchctl"

// Config is the fetchctl configuration file, e.g. fetchctl.yml:
//
//	name: fetchctl
//	logging:
//	  level: warn
//	fetch:
//	  case_strategy: camel
//	  http:
//	    base_url: https://api.example.com
//	    timeout: 10s
//	observability:
//	  enabled: false
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Fetch         fetch.Config         `yaml:"fetch" mapstructure:"fetch"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults applies default values to the configuration.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = appName
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
	}
	c.ServiceConfig.ApplyDefaults()
	c.Fetch.ApplyDefaults()

	if c.Observability.ServiceName == "" {
		c.Observability.ServiceName = c.Name
	}
	if c.Observability.ServiceVersion == "" {
		c.Observability.ServiceVersion = version.Short()
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = c.Environment
	}
	c.Observability.ApplyDefaults()
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return validation.NewCollector().
		Merge("", c.ServiceConfig.Validate()).
		Merge("fetch", c.Fetch.Validate()).
		Merge("observability", c.Observability.Validate()).
		Err()
}
