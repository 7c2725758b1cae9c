package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port                 string
	ShipStationBaseURL   string
	ShipStationAPIKey    string
	ShipStationAPISecret string
	ShipStationTimeout   time.Duration
	InventoryFile        string
	PostgresDSN          string
	TemporalAddress      string
	TemporalNamespace    string
	TemporalDisabled     bool
}

// LoadConfig reads environment variables, applies defaults, and validates
// basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:                 envDefault("PORT", "8080"),
		ShipStationBaseURL:   envDefault("SHIPSTATION_BASE_URL", "https://ssapi.shipstation.com"),
		ShipStationAPIKey:    strings.TrimSpace(os.Getenv("SHIPSTATION_API_KEY")),
		ShipStationAPISecret: strings.TrimSpace(os.Getenv("SHIPSTATION_API_SECRET")),
		ShipStationTimeout:   10 * time.Second,
		InventoryFile:        envDefault("INVENTORY_FILE", "upload/inventory.json"),
		PostgresDSN:          strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TemporalAddress:      envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace:    envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:     isTruthy(os.Getenv("TEMPORAL_DISABLED")),
	}
	if cfg.ShipStationAPIKey == "" {
		return Config{}, fmt.Errorf("SHIPSTATION_API_KEY is required")
	}
	if raw := strings.TrimSpace(os.Getenv("SHIPSTATION_TIMEOUT_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("SHIPSTATION_TIMEOUT_SECONDS must be a positive integer")
		}
		cfg.ShipStationTimeout = time.Duration(seconds) * time.Second
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
