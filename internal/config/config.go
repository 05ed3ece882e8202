package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
//
// The AI gateway key is the only hard requirement; MapsAPIKey and
// DatabaseURL being empty put the service into supported degraded modes
// (no store lookups, no auth/history).
type Config struct {
	Port               string
	DatabaseURL        string
	JWTSecret          string
	TokenTTL           time.Duration
	AIGatewayKey       string
	AIGatewayURL       string
	AIModel            string
	MapsAPIKey         string
	MapsBaseURL        string
	HTTPTimeout        time.Duration
	RateLimitRecommend RateLimitConfig
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    getEnv("JWT_SECRET", "dev-secret"),
		TokenTTL:     parseDuration(getEnv("JWT_TTL", "24h")),
		AIGatewayKey: os.Getenv("AI_GATEWAY_KEY"),
		AIGatewayURL: getEnv("AI_GATEWAY_URL", "https://ai.gateway.lovable.dev/v1"),
		AIModel:      getEnv("AI_MODEL", "google/gemini-2.5-flash"),
		MapsAPIKey:   os.Getenv("MAPS_API_KEY"),
		MapsBaseURL:  getEnv("MAPS_BASE_URL", "https://maps.googleapis.com/maps/api"),
		// Bound for every outbound call so one hung dependency cannot
		// block a request indefinitely.
		HTTPTimeout: parseDuration(getEnv("HTTP_TIMEOUT", "10s")),
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_RECOMMEND", "10/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RECOMMEND value: %w", err)
	}
	cfg.RateLimitRecommend = rl

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}
