// Package logger provides structured logging for gofetch using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("fetch")
//	log.Debug("request started", logger.Fields(logger.FieldMethod, "GET", logger.FieldURL, url))
package logger
