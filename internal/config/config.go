// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// AverageSpeedKPH is the driving speed assumed by every time estimate.
	AverageSpeedKPH float64

	// DailyCapacityMinutes is the time budget of one itinerary day.
	DailyCapacityMinutes int

	// DayEndHour is the hour (1-24) travellers aim to be back at the hub.
	DayEndHour int

	// MaxBodyBytes caps request body sizes. Larger bodies get 413.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, and any
// numeric variables that do not parse or are out of range.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	var errs []error
	cfg.AverageSpeedKPH = parseEnv(&errs, "AVERAGE_SPEED_KPH", 40.0,
		func(s string) (float64, error) { return strconv.ParseFloat(s, 64) },
		func(v float64) bool { return v > 0 })
	cfg.DailyCapacityMinutes = parseEnv(&errs, "DAILY_CAPACITY_MINUTES", 540, strconv.Atoi,
		func(v int) bool { return v > 0 })
	cfg.DayEndHour = parseEnv(&errs, "DAY_END_HOUR", 17, strconv.Atoi,
		func(v int) bool { return v >= 1 && v <= 24 })
	cfg.MaxBodyBytes = parseEnv(&errs, "MAX_BODY_BYTES", int64(1<<20),
		func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) },
		func(v int64) bool { return v > 0 })

	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ParseLogLevel maps a LOG_LEVEL value to its slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: unknown level %q", s)
}

// parseEnv parses the variable named by key, or returns fallback when it is
// unset. Parse failures and values rejected by valid are appended to errs.
func parseEnv[T any](errs *[]error, key string, fallback T, parse func(string) (T, error), valid func(T) bool) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not a number", key, raw))
		return fallback
	}
	if !valid(v) {
		*errs = append(*errs, fmt.Errorf("%s: %q is out of range", key, raw))
		return fallback
	}
	return v
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
