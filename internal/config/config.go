package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTokenLifetime = 7 * 24 * time.Hour
	defaultMongoPool     = 10
)

type Config struct {
	Port        string
	Environment string // ENV: production, development, etc.

	MongoURI         string
	MongoDB          string
	MongoMaxPool     uint64
	MongoSelectTO    time.Duration // server selection / connect timeout
	MongoSocketTO    time.Duration
	RedisURI         string // optional; empty disables the travel search cache
	JWTSecret        string
	JWTExpiresIn     time.Duration
	AmadeusBaseURL   string
	AmadeusAPIKey    string // optional: missing credentials put the gateway in fallback mode
	AmadeusAPISecret string

	DefaultOriginAirport string
	AllowedOrigins       []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL
	OTelEndpoint         string
	OTelInsecure         bool
}

func Load() *Config {
	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:3000"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" && !containsOrigin(allowedOrigins, u) {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}

	lifetime, err := ParseLifetime(getEnv("JWT_EXPIRES_IN", "7d"))
	if err != nil || lifetime <= 0 {
		lifetime = defaultTokenLifetime
	}

	pool, err := strconv.ParseUint(getEnv("MONGODB_MAX_POOL", ""), 10, 64)
	if err != nil || pool == 0 {
		pool = defaultMongoPool
	}

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		Environment:          strings.ToLower(strings.TrimSpace(getEnv("ENV", "development"))),
		MongoURI:             getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017")),
		MongoDB:              getEnv("MONGODB_DB", "natpac_travel"),
		MongoMaxPool:         pool,
		MongoSelectTO:        5 * time.Second,
		MongoSocketTO:        45 * time.Second,
		RedisURI:             getEnv("REDIS_URI", ""),
		JWTSecret:            getEnv("JWT_SECRET", "your-jwt-secret-key"),
		JWTExpiresIn:         lifetime,
		AmadeusBaseURL:       strings.TrimRight(getEnv("AMADEUS_BASE_URL", "https://test.api.amadeus.com"), "/"),
		AmadeusAPIKey:        getEnv("AMADEUS_API_KEY", ""),
		AmadeusAPISecret:     getEnv("AMADEUS_API_SECRET", ""),
		DefaultOriginAirport: strings.ToUpper(getEnv("DEFAULT_ORIGIN_AIRPORT", "DEL")),
		AllowedOrigins:       allowedOrigins,
		OTelEndpoint:         getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTelInsecure:         getEnv("OTEL_EXPORTER_OTLP_INSECURE", "") == "true",
	}
}

// ParseLifetime accepts Go durations ("36h") and whole days ("7d").
func ParseLifetime(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, fmt.Errorf("parse lifetime %q: %w", s, err)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parse lifetime %q: %w", s, err)
	}
	return d, nil
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// TravelAPIConfigured reports whether both travel API credentials are set.
func (c *Config) TravelAPIConfigured() bool {
	return c.AmadeusAPIKey != "" && c.AmadeusAPISecret != ""
}

// MaskedMongoURI hides the password part of the connection string for logging.
func (c *Config) MaskedMongoURI() string {
	uri := c.MongoURI
	at := strings.LastIndex(uri, "@")
	scheme := strings.Index(uri, "://")
	if at == -1 || scheme == -1 {
		return uri
	}
	creds := uri[scheme+3 : at]
	if i := strings.Index(creds, ":"); i != -1 {
		return uri[:scheme+3] + creds[:i] + ":***" + uri[at:]
	}
	return uri
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func containsOrigin(list []string, o string) bool {
	o = strings.TrimSpace(strings.ToLower(o))
	for _, v := range list {
		if strings.TrimSpace(strings.ToLower(v)) == o {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
