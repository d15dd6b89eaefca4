package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Washington state defaults. The centroid is the coordinate of last resort
// for postal codes that cannot be placed any other way.
const (
	DefaultRegion      = "WA"
	DefaultCentroidLat = 47.5
	DefaultCentroidLon = -120.5
)

// Config holds all ambient settings, populated from environment variables.
// File paths and the target region are CLI concerns and arrive via flags.
type Config struct {
	LogLevel  string
	LogFormat string

	Region      string
	CentroidLat float64
	CentroidLon float64

	// Kafka publishing of ranked zones, enabled when brokers are set.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaEnabled bool

	// Pushgateway for batch-job metrics, enabled when the URL is set.
	PushgatewayURL string

	// Nominatim place-name enrichment, enabled when the server is set.
	NominatimServer  string
	NominatimEnabled bool
	GeocodeCacheTTL  time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	centroidLat, err := envFloat("CENTROID_LAT", DefaultCentroidLat)
	if err != nil {
		return nil, err
	}
	centroidLon, err := envFloat("CENTROID_LON", DefaultCentroidLon)
	if err != nil {
		return nil, err
	}

	cacheTTLStr := envOrDefault("GEOCODE_CACHE_TTL", "10m")
	cacheTTL, err := time.ParseDuration(cacheTTLStr)
	if err != nil || cacheTTL <= 0 {
		return nil, errors.New("invalid GEOCODE_CACHE_TTL")
	}

	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))
	nominatimServer := os.Getenv("NOMINATIM_SERVER")

	cfg := &Config{
		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "json"),

		Region:      envOrDefault("REGION", DefaultRegion),
		CentroidLat: centroidLat,
		CentroidLon: centroidLon,

		KafkaBrokers: brokers,
		KafkaTopic:   envOrDefault("KAFKA_SINK_TOPIC", "charging-gap-zones"),
		KafkaEnabled: len(brokers) > 0,

		PushgatewayURL: os.Getenv("PUSHGATEWAY_URL"),

		NominatimServer:  nominatimServer,
		NominatimEnabled: nominatimServer != "",
		GeocodeCacheTTL:  cacheTTL,
	}

	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_BROKERS is set but KAFKA_SINK_TOPIC is empty")
	}
	if cfg.Region == "" {
		return nil, errors.New("REGION must not be empty")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func parseBrokers(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
