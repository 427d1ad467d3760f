// Package config loads environment-driven settings for the two front-end
// binaries. Values come from the process environment with an optional .env
// file on top.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backend holds the injected gateway configuration shared by both binaries.
type Backend struct {
	BaseURL   string
	TimeoutMS int
}

// Timeout converts the configured deadline.
func (b Backend) Timeout() time.Duration {
	return time.Duration(b.TimeoutMS) * time.Millisecond
}

func loadDotenv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	}
}

func loadBackend() Backend {
	return Backend{
		BaseURL:   getEnvOrDefault("STUDIO_BACKEND_URL", "http://localhost:5000"),
		TimeoutMS: getEnvIntOrDefault("STUDIO_REQUEST_TIMEOUT_MS", 30000),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBoolOrDefault(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvListOrDefault(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
