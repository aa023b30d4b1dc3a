package fetch

import (
	"github.com/kbukum/gofetch/codec"
	"github.com/kbukum/gofetch/httpclient"
	"github.com/kbukum/gofetch/validation"
)

// Config configures a Client built by New.
type Config struct {
	HTTP httpclient.Config `yaml:"http" mapstructure:"http"`
	// CaseStrategy names untagged struct fields: preserve, camel or snake.
	CaseStrategy string `yaml:"case_strategy" mapstructure:"case_strategy"`
}

// ApplyDefaults applies default values to the configuration.
func (c *Config) ApplyDefaults() {
	c.HTTP.ApplyDefaults()
	if c.CaseStrategy == "" {
		c.CaseStrategy = codec.Preserve.String()
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	_, err := codec.ParseCaseStrategy(c.CaseStrategy)
	return validation.NewCollector().
		Check(err == nil, "case_strategy", "must be one of preserve, camel, snake").
		Merge("http", c.HTTP.Validate()).
		Err()
}
