package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/boredinsantacruz/guide-service/internal/weather"
)

// Santa Cruz, CA. Used when no location is configured.
const (
	defaultCity = "Santa Cruz"
	defaultLat  = 36.9741
	defaultLon  = -122.0308
)

type AppConfig struct {
	// WeatherAPI.com key; the provider is skipped when empty (Open-Meteo
	// needs no key and is always on).
	WeatherAPIKey string

	// Airtable catalog backend.
	AirtableAPIKey string
	AirtableBaseID string
	AirtableTable  string

	// GoogleAPIKey enables geocoding the configured city when no explicit
	// coordinates are set.
	GoogleAPIKey string

	// Location the guide covers.
	Location weather.Location

	// NeedsGeocoding is set when a city was configured without coordinates;
	// main resolves it through the geocoder before wiring providers.
	NeedsGeocoding bool

	// RefreshInterval controls how often forecast and catalog are refreshed.
	RefreshInterval time.Duration

	// Cache TTLs; entries older than this are re-fetched on demand.
	ForecastTTL time.Duration
	CatalogTTL  time.Duration

	HTTPTimeout time.Duration
	Port        string
}

// Load reads configuration from the environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.AirtableAPIKey = os.Getenv("AIRTABLE_API_KEY")
	cfg.AirtableBaseID = os.Getenv("AIRTABLE_BASE_ID")
	cfg.AirtableTable = getenvDefault("AIRTABLE_TABLE", "Activities")
	cfg.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")

	cfg.Location = weather.Location{
		City: getenvDefault("GUIDE_CITY", defaultCity),
		Lat:  getenvFloat("GUIDE_LAT", defaultLat),
		Lon:  getenvFloat("GUIDE_LON", defaultLon),
	}
	// A custom city without explicit coordinates needs geocoding at startup.
	cfg.NeedsGeocoding = os.Getenv("GUIDE_CITY") != "" && os.Getenv("GUIDE_LAT") == "" && os.Getenv("GUIDE_LON") == ""

	var err error
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "1h"); err != nil {
		return nil, err
	}
	if cfg.ForecastTTL, err = getenvDuration("FORECAST_TTL", "2h"); err != nil {
		return nil, err
	}
	if cfg.CatalogTTL, err = getenvDuration("CATALOG_TTL", "24h"); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	v := getenvDefault(key, def)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
