package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	RxNorm     RxNormConfig
	GoogleMaps GoogleMapsConfig
	Nominatim  NominatimConfig
	Overpass   OverpassConfig
	Cache      CacheConfig
	Redis      RedisConfig
	OTEL       OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// RxNormConfig holds the drug normalization provider configuration
type RxNormConfig struct {
	BaseURL string
}

// GoogleMapsConfig holds the primary geocoding/places provider configuration.
// An empty APIKey means the keyless fallback providers are used instead.
type GoogleMapsConfig struct {
	APIKey string
}

// NominatimConfig holds the fallback geocoding provider configuration
type NominatimConfig struct {
	BaseURL string
}

// OverpassConfig holds the fallback facility search provider configuration
type OverpassConfig struct {
	BaseURL string
}

// CacheConfig selects the lookup cache backend
type CacheConfig struct {
	Backend string // "memory" or "redis"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
			Env:  getEnv("APP_ENV", "development"),
		},
		RxNorm: RxNormConfig{
			BaseURL: getEnv("RXNORM_BASE_URL", "https://rxnav.nlm.nih.gov/REST"),
		},
		GoogleMaps: GoogleMapsConfig{
			APIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),
		},
		Nominatim: NominatimConfig{
			BaseURL: getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		},
		Overpass: OverpassConfig{
			BaseURL: getEnv("OVERPASS_BASE_URL", "https://overpass-api.de"),
		},
		Cache: CacheConfig{
			Backend: getEnv("CACHE_BACKEND", "memory"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "medfinder"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}, nil
}

// UseGooglePrimary reports whether the key-gated primary providers are configured.
// Evaluated once at startup; the chosen providers are held for the process lifetime.
func (c *Config) UseGooglePrimary() bool {
	return c.GoogleMaps.APIKey != ""
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
