package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultTarget is used when no target URL is given.
const DefaultTarget = "http://localhost:8080/"

type Config struct {
	TargetURL     string
	Timeout       int // seconds, per request
	ProfilePath   string
	OutputFile    string
	HTMLReport    string
	Verbose       bool
	NoColor       bool
	Parallel      bool
	RateLimit     int // requests per second, 0 = unlimited
	MaxResponseMB int
	UserAgent     string
	Only          []string
	Skip          []string
	LogLevel      string
}

func envOrDefault(envKey string, defaultVal int) int {
	if val := os.Getenv(envKey); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func envOrDefaultStr(envKey string, defaultVal string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	return defaultVal
}

func Default() Config {
	return Config{
		TargetURL:     DefaultTarget,
		Timeout:       envOrDefault("WEBVET_TIMEOUT", 5),
		RateLimit:     envOrDefault("WEBVET_RATE_LIMIT", 0),
		MaxResponseMB: 10,
		LogLevel:      envOrDefaultStr("WEBVET_LOG_LEVEL", "info"),
	}
}

func Validate(config *Config) error {
	if config.TargetURL == "" {
		config.TargetURL = DefaultTarget
	}
	if !strings.HasPrefix(config.TargetURL, "http://") && !strings.HasPrefix(config.TargetURL, "https://") {
		config.TargetURL = "http://" + config.TargetURL
	}

	if config.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %d", config.Timeout)
	}

	if config.MaxResponseMB <= 0 {
		return fmt.Errorf("max response size must be positive, got %d", config.MaxResponseMB)
	}

	if len(config.Only) > 0 && len(config.Skip) > 0 {
		return fmt.Errorf("--only and --skip are mutually exclusive")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[config.LogLevel] {
		return fmt.Errorf("invalid log level %q. Valid values: debug, info, warn, error", config.LogLevel)
	}

	return nil
}
