package config

import (
	"github.com/kbukum/gofetch/logger"
	"github.com/kbukum/gofetch/validation"
)

// ServiceConfig holds the fields every gofetch binary needs. Embed it with
// `mapstructure:",squash"` to extend it.
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string        `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults applies default values to the base configuration.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
}

// Validate validates the base configuration fields.
func (c *ServiceConfig) Validate() error {
	return validation.NewCollector().
		Merge("", validation.Struct(c)).
		Err()
}
