package config

import (
	"os"
	"strconv"
	"strings"
)

// Getenv reads an environment variable or returns a default value.
func Getenv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// GetenvInt parses an environment variable as an integer, else a default value.
func GetenvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// AllowedOrigins returns the comma-separated ALLOWED_ORIGINS list, defaulting
// to the wildcard origin.
func AllowedOrigins() []string {
	raw := Getenv("ALLOWED_ORIGINS", "*")
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return origins
}
