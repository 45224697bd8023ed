// Package config provides configuration loading for the repolink application.
// Everything is optional and read from environment variables with defaults;
// the only per-invocation setting, the remote name, is a CLI flag.
package config

import (
	"os"
)

// Environment variable names.
const (
	// EnvLogLevel is the log level (debug, info, warn, error).
	EnvLogLevel = "LOG_LEVEL"

	// EnvLogAppName is the application name for log context.
	EnvLogAppName = "LOG_APP_NAME"

	// EnvDefaultRemote is the remote used when --remote is not given.
	EnvDefaultRemote = "REPOLINK_REMOTE"
)

// Default values.
const (
	DefaultLogLevel   = "info"
	DefaultLogAppName = "repolink"
	DefaultRemote     = "origin"
)

// Config holds all application configuration.
type Config struct {
	// LogLevel is the logging level (debug, info, warn, error).
	LogLevel string

	// LogAppName is the application name for log context.
	LogAppName string

	// DefaultRemote is the remote used when none is requested.
	DefaultRemote string
}

// Load loads the application configuration from environment variables,
// applying defaults for anything unset.
func Load() (*Config, error) {
	return &Config{
		LogLevel:      envOrDefault(EnvLogLevel, DefaultLogLevel),
		LogAppName:    envOrDefault(EnvLogAppName, DefaultLogAppName),
		DefaultRemote: envOrDefault(EnvDefaultRemote, DefaultRemote),
	}, nil
}

// envOrDefault returns the environment value for key, or fallback when unset
// or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
