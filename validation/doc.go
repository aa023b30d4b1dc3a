// Package validation checks configuration structs before they are used.
//
// Struct tag validation goes through go-playground/validator and reports
// fields by their mapstructure name, which is also the key used in config
// files:
//
//	type Config struct {
//	    Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
//	}
//	err := validation.Struct(cfg) // "timeout: must be greater than 0"
//
// Checks that cannot be expressed as tags are collected with a Collector:
//
//	c := validation.NewCollector()
//	c.Check(cfg.CertFile == "" || cfg.KeyFile != "", "key_file", "is required with cert_file")
//	err := c.Err()
package validation
