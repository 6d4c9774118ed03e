package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// defaultCities is the tracked city list when CITIES is not set.
var defaultCities = []string{"Delhi", "Mumbai", "Chennai", "Bangalore", "Kolkata", "Hyderabad"}

type AppConfig struct {
	OWMAPIKey string

	// Cities to poll each tick.
	Cities []string

	// FetchInterval controls how often readings are polled for each city.
	FetchInterval time.Duration

	// HTTPTimeout bounds outbound upstream calls.
	HTTPTimeout time.Duration

	MongoURI string
	MongoDB  string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OWMAPIKey = os.Getenv("OWM_API_KEY")

	intervalStr := getenvDefault("FETCH_INTERVAL", "5m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: %w", err)
	}
	cfg.FetchInterval = interval

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.MongoURI = getenvDefault("MONGO_URI", "mongodb://localhost:27017")
	cfg.MongoDB = getenvDefault("MONGO_DB", "weatherdb")
	cfg.Port = getenvDefault("PORT", "8080")

	cfg.Cities = loadCities()

	return cfg, nil
}

func loadCities() []string {
	raw := os.Getenv("CITIES")
	if raw == "" {
		return defaultCities
	}

	var cities []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cities = append(cities, c)
		}
	}
	if len(cities) == 0 {
		return defaultCities
	}
	return cities
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
