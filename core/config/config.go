package config

import (
	"reflect"
	"strings"

	"github.com/secret-dreams/fonts/core/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the fonts CLI.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Service holds defaults for the remote font-family service.
	Service ServiceConfig `mapstructure:"service"`
	// Fetch holds defaults for the upstream font feed.
	Fetch FetchConfig `mapstructure:"fetch"`
}

// ServiceConfig holds connection defaults for the remote service targeted
// by the upsert command. Command-line flags take precedence when set.
type ServiceConfig struct {
	// Endpoint is the base URL of the remote service.
	Endpoint string `mapstructure:"endpoint" default:"http://localhost:3000"`
	// User is the HTTP basic auth username (empty disables basic auth).
	User string `mapstructure:"user" default:""`
	// Password is the HTTP basic auth password.
	Password string `mapstructure:"password" default:""`
}

// FetchConfig holds defaults for the upstream manifest feed.
type FetchConfig struct {
	// FeedURL is the JSON sourcefile for font families.
	FeedURL string `mapstructure:"feed_url" default:"https://help.shopify.com/json/shopify_font_families.json"`
	// UserAgent is sent on every upstream request. The upstream CDN rejects
	// default client identifiers, so this must look like a browser.
	UserAgent string `mapstructure:"user_agent" default:"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_14_4) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/74.0.3729.108 Safari/537.36"`
	// Referer is sent on every upstream request.
	Referer string `mapstructure:"referer" default:"https://help.shopify.com/"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVICE_ENDPOINT -> service.endpoint)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
