package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported storage drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// AdminConfig holds the optional bootstrap administrator credentials.
type AdminConfig struct {
	Username string
	Password string
}

// Config aggregates application-wide configuration values.
type Config struct {
	DBDriver       string
	DatabaseURL    string
	SQLitePath     string
	JWTSecret      string
	JWTIssuer      string
	Port           string
	LogLevel       string
	LogFormat      string
	RateLimitLogin RateLimitConfig
	TrustedProxies []*net.IPNet
	TokenTTL       time.Duration
	Admin          AdminConfig
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  getEnv("SQLITE_PATH", "data/people.db"),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret"),
		JWTIssuer:   getEnv("JWT_ISSUER", "people-api"),
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		TokenTTL:    parseDuration(getEnv("JWT_TTL", "60m")),
		Admin: AdminConfig{
			Username: strings.TrimSpace(os.Getenv("ADMIN_USERNAME")),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for driver %q", DriverPostgres)
		}
	case DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER value: %q", cfg.DBDriver)
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_LOGIN", "10/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_LOGIN value: %w", err)
	}
	cfg.RateLimitLogin = rl

	proxies, err := parseCIDRs(os.Getenv("TRUSTED_PROXIES"))
	if err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES value: %w", err)
	}
	cfg.TrustedProxies = proxies

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

// parseCIDRs reads a comma separated list of CIDR ranges. Bare addresses are single hosts.
func parseCIDRs(value string) ([]*net.IPNet, error) {
	var ranges []*net.IPNet
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.Contains(part, "/") {
			ip := net.ParseIP(part)
			if ip == nil {
				return nil, fmt.Errorf("invalid address %q", part)
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			ranges = append(ranges, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, ipNet, err := net.ParseCIDR(part)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, ipNet)
	}
	return ranges, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}
