package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/boredinsantacruz/guide-service/internal/guide"
	"github.com/boredinsantacruz/guide-service/internal/store"
	"github.com/boredinsantacruz/guide-service/internal/weather"
)

var testLoc = weather.Location{City: "Santa Cruz", Lat: 36.9741, Lon: -122.0308}

func newTestApp(memStore *store.MemoryStore) *fiber.App {
	app := fiber.New()
	svc := guide.NewService(memStore, nil, nil)
	RegisterRoutes(app, svc, testLoc)
	return app
}

// TestForecastDaysValidation verifies that the forecast endpoint enforces the
// expected 1-7 range for the `days` query parameter.
func TestForecastDaysValidation(t *testing.T) {
	app := newTestApp(store.NewMemoryStore(time.Hour, time.Hour))

	// Out-of-range days value should return 400.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather/forecast?days=8", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Non-numeric days value should also return 400.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/weather/forecast?days=soon", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestForecastNotFoundWithoutData(t *testing.T) {
	app := newTestApp(store.NewMemoryStore(time.Hour, time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather/forecast?days=7", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestForecastReturnsScoredDays(t *testing.T) {
	memStore := store.NewMemoryStore(time.Hour, time.Hour)
	memStore.SaveForecast(testLoc, weather.Forecast{
		{Date: "2026-03-03", TempF: 70, WindMph: 5, CloudCover: 10, VisibilityMi: 10},
		{Date: "2026-03-04", TempF: 45, PrecipIn: 0.4, WindMph: 25, CloudCover: 90, VisibilityMi: 2},
	})
	app := newTestApp(memStore)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather/forecast?days=2", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body struct {
		Days []struct {
			Date     string `json:"date"`
			Score    int    `json:"score"`
			Category string `json:"category"`
			Emoji    string `json:"emoji"`
		} `json:"days"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(body.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(body.Days))
	}
	if body.Days[0].Score != 100 || body.Days[0].Category != "perfect_sunny" {
		t.Fatalf("unexpected first day: %+v", body.Days[0])
	}
	if body.Days[1].Score != 0 || body.Days[1].Category != "heavy_rain" {
		t.Fatalf("unexpected second day: %+v", body.Days[1])
	}
}

func TestBestDaySuppressedForBadWeek(t *testing.T) {
	memStore := store.NewMemoryStore(time.Hour, time.Hour)
	memStore.SaveForecast(testLoc, weather.Forecast{
		{Date: "2026-03-03", TempF: 45, PrecipIn: 0.4, WindMph: 25, CloudCover: 90, VisibilityMi: 2},
		{Date: "2026-03-04", TempF: 45, PrecipIn: 0.4, WindMph: 25, CloudCover: 90, VisibilityMi: 2},
	})
	app := newTestApp(memStore)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather/best-day", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body struct {
		Highlight bool `json:"highlight"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Highlight {
		t.Fatal("expected no highlight for a washout week")
	}
}

func TestRecommendationsUnavailableWithoutCatalog(t *testing.T) {
	memStore := store.NewMemoryStore(time.Hour, time.Hour)
	memStore.SaveForecast(testLoc, weather.Forecast{
		{Date: "2026-03-03", TempF: 70, WindMph: 5, CloudCover: 10, VisibilityMi: 10},
	})
	app := newTestApp(memStore)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, resp.StatusCode)
	}
}

func TestRecommendationsLimitValidation(t *testing.T) {
	app := newTestApp(store.NewMemoryStore(time.Hour, time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations?limit=100", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}
