package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/kelvins/geocoder"

	httpapi "github.com/boredinsantacruz/guide-service/internal/api/http"
	"github.com/boredinsantacruz/guide-service/internal/catalog"
	"github.com/boredinsantacruz/guide-service/internal/config"
	"github.com/boredinsantacruz/guide-service/internal/guide"
	"github.com/boredinsantacruz/guide-service/internal/scheduler"
	"github.com/boredinsantacruz/guide-service/internal/store"
	"github.com/boredinsantacruz/guide-service/internal/weather"
	"github.com/boredinsantacruz/guide-service/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Resolve a configured city to coordinates when none were given.
	if cfg.NeedsGeocoding {
		if cfg.GoogleAPIKey == "" {
			log.Fatalf("GUIDE_CITY set without GUIDE_LAT/GUIDE_LON; GOOGLE_API_KEY is required for geocoding")
		}
		geocoder.ApiKey = cfg.GoogleAPIKey
		loc, err := geocoder.Geocoding(geocoder.Address{City: cfg.Location.City, Country: "US"})
		if err != nil {
			log.Fatalf("failed to geocode %q: %v", cfg.Location.City, err)
		}
		cfg.Location.Lat = loc.Latitude
		cfg.Location.Lon = loc.Longitude
		log.Printf("INFO: geocoded %s to %.4f,%.4f", cfg.Location.City, loc.Latitude, loc.Longitude)
	}

	// Shared HTTP client for outbound API calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory cache with configured TTLs.
	memStore := store.NewMemoryStore(cfg.ForecastTTL, cfg.CatalogTTL)

	// Forecast providers with resilience (backoff + circuit breaker).
	// Open-Meteo needs no API key; WeatherAPI joins when a key is set.
	provs := []weather.ForecastProvider{
		providers.NewOpenMeteoProvider(httpClient),
	}
	if cfg.WeatherAPIKey != "" {
		provs = append(provs, providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey))
	}

	// Activity catalog backend; recommendations are disabled without it.
	var activityCatalog guide.CatalogProvider
	if cfg.AirtableAPIKey != "" {
		activityCatalog = catalog.NewAirtableClient(httpClient, cfg.AirtableAPIKey, cfg.AirtableBaseID, cfg.AirtableTable)
	} else {
		log.Println("INFO: AIRTABLE_API_KEY not set; activity recommendations disabled")
	}

	// Core service orchestrating providers, catalog, and cache.
	service := guide.NewService(memStore, provs, activityCatalog)

	// Scheduler that periodically refreshes forecast and catalog.
	sched := scheduler.New([]weather.Location{cfg.Location}, cfg.RefreshInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "guide-service",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "guide-service",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, cfg.Location)

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
