// Package config loads typed configuration from the process environment.
//
// It wraps github.com/joho/godotenv (optional .env files) and
// github.com/caarlos0/env/v11 (struct tag parsing) and caches each successfully
// parsed struct type for the lifetime of the process:
//
//	type AppConfig struct {
//	    APIURL string `env:"NOTIFY_API_URL,required"`
//	}
//
//	var cfg AppConfig
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Reset clears the cache; tests use it after changing the environment.
package config
