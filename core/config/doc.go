// Package config provides configuration management for the fonts CLI.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults are declared as struct tags and registered
// recursively, so SERVICE_ENDPOINT=https://shop.example overrides
// Config.Service.Endpoint without any extra wiring.
//
// # Configuration Structure
//
// The Config struct is the central repository for all settings, divided into
// subsections:
//   - Log: Logging level and format
//   - Service: Remote font-family service endpoint and basic auth defaults
//   - Fetch: Upstream feed URL and request header identity
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Service.Endpoint)
package config
