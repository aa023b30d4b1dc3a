// Package config loads gofetch configuration with Viper.
//
// LoadConfig looks for a YAML file and a .env file in the usual places,
// reads the YAML, loads the .env into the process environment, then lets
// prefixed environment variables override file values:
//
//	FETCHCTL_FETCH_HTTP_TIMEOUT=5s  ->  fetch.http.timeout
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("fetchctl", &cfg, config.WithConfigFile(path))
package config
