package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	MongoURI      string
	MongoDatabase string

	// OSM API client configuration.
	OSMBaseURL         string
	OSMTimeout         time.Duration
	OSMCacheSize       int
	OSMFixturesEnabled bool

	// Kafka import-event publishing (optional).
	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaImportTopic string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	osmTimeout, err := parseDuration("OSM_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	osmCacheSize, err := parsePositiveInt("OSM_CACHE_SIZE", 256)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		MongoURI:      envOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: envOrDefault("MONGODB_DATABASE", "campuscoffee"),

		OSMBaseURL:         envOrDefault("OSM_BASE_URL", "https://api.openstreetmap.org/api/0.6"),
		OSMTimeout:         osmTimeout,
		OSMCacheSize:       osmCacheSize,
		OSMFixturesEnabled: envBool("OSM_FIXTURES_ENABLED", true),

		KafkaEnabled:     envBool("KAFKA_ENABLED", false),
		KafkaBrokers:     parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaImportTopic: envOrDefault("KAFKA_IMPORT_TOPIC", "pos-imports"),
	}

	if cfg.MongoURI == "" {
		return nil, errors.New("MONGODB_URI is required")
	}
	if cfg.MongoDatabase == "" {
		return nil, errors.New("MONGODB_DATABASE is required")
	}
	if cfg.OSMBaseURL == "" {
		return nil, errors.New("OSM_BASE_URL is required")
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
		}
		if cfg.KafkaImportTopic == "" {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_IMPORT_TOPIC is not set")
		}
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true"
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

// parseBrokers splits a comma-separated broker list, dropping empty entries.
func parseBrokers(value string) []string {
	parts := strings.Split(value, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	return brokers
}
