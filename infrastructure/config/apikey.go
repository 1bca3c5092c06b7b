package config

import (
	"errors"
	"strings"
)

// APIKeyPrefix is the fixed literal prefix every Mosaic API key begins with
const APIKeyPrefix = "mk_"

var (
	// ErrMissingAPIKey is returned when no API key is configured
	ErrMissingAPIKey = errors.New("API key required: set api.key in the config file or the MOSAIC_API_KEY environment variable")

	// ErrInvalidAPIKey is returned when the configured key does not look
	// like a Mosaic API key
	ErrInvalidAPIKey = errors.New(`invalid API key format: must start with "mk_"`)
)

// ValidateAPIKey checks the key format without calling the platform:
// the mk_ prefix, a plausible length, and no stray whitespace or quotes
// picked up from shell configuration.
func ValidateAPIKey(key string) error {
	if key == "" {
		return ErrMissingAPIKey
	}
	if !strings.HasPrefix(key, APIKeyPrefix) {
		return ErrInvalidAPIKey
	}
	if len(key) <= 10 || strings.ContainsAny(key, " \t'\"") {
		return ErrInvalidAPIKey
	}
	return nil
}

// MaskAPIKey returns a display-safe form of the key for log and CLI output
func MaskAPIKey(key string) string {
	if len(key) > 20 {
		return key[:10] + "..." + key[len(key)-4:]
	}
	if len(key) > 6 {
		return key[:6] + "..."
	}
	return "***"
}
