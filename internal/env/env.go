package env

import (
	"os"
	"strconv"
)

// GetString : Gets the value from env
func GetString(key string, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}

// GetInt : Gets an integer value from env, falling back on parse failure
func GetInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}
