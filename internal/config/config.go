// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	GitHubToken string
	LogLevel    slog.Level
	LogBuffer   int
	Transport   string
	ListenAddr  string
}

// Load reads configuration from environment variables and returns a validated
// Config. REPOADMIN_GITHUB_TOKEN is required; the process must not start
// without a credential. Optional variables with defaults:
// REPOADMIN_LOG_LEVEL (info), REPOADMIN_LOG_BUFFER (1000),
// REPOADMIN_TRANSPORT (stdio), REPOADMIN_LISTEN_ADDR (127.0.0.1:8080).
func Load() (*Config, error) {
	token := os.Getenv("REPOADMIN_GITHUB_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("REPOADMIN_GITHUB_TOKEN is required")
	}

	level := slog.LevelInfo
	if v, ok := os.LookupEnv("REPOADMIN_LOG_LEVEL"); ok {
		parsed, err := parseLevel(v)
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	logBuffer := 1000
	if v, ok := os.LookupEnv("REPOADMIN_LOG_BUFFER"); ok {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("REPOADMIN_LOG_BUFFER has invalid size %q: expected a positive integer", v)
		}
		logBuffer = parsed
	}

	transport := "stdio"
	if v, ok := os.LookupEnv("REPOADMIN_TRANSPORT"); ok {
		if v != "stdio" && v != "http" {
			return nil, fmt.Errorf("REPOADMIN_TRANSPORT has invalid value %q: expected stdio or http", v)
		}
		transport = v
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("REPOADMIN_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	return &Config{
		GitHubToken: token,
		LogLevel:    level,
		LogBuffer:   logBuffer,
		Transport:   transport,
		ListenAddr:  listenAddr,
	}, nil
}

func parseLevel(v string) (slog.Level, error) {
	switch v {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("REPOADMIN_LOG_LEVEL has invalid value %q: expected debug, info, warn, or error", v)
	}
}
