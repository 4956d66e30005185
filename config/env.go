package config

import "os"

// GetEnv returns the value of an environment variable, empty string when unset.
// Defaults are handled at the call site so each caller can log its own warning.
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvOrDefault returns the environment variable or the provided fallback.
func GetEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
