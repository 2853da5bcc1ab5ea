package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boredinsantacruz/guide-service/internal/activities"
	"github.com/boredinsantacruz/guide-service/internal/weather"
)

var testLoc = weather.Location{City: "Santa Cruz", Lat: 36.9741, Lon: -122.0308}

func testForecast() weather.Forecast {
	return weather.Forecast{{Date: "2026-03-03", TempF: 68}}
}

func TestMemoryStoreForecastRoundTrip(t *testing.T) {
	s := NewMemoryStore(time.Hour, time.Hour)

	_, err := s.GetForecast(testLoc)
	assert.ErrorIs(t, err, ErrNotFound)

	s.SaveForecast(testLoc, testForecast())
	got, err := s.GetForecast(testLoc)
	require.NoError(t, err)
	assert.Equal(t, testForecast(), got)

	// A different location is a different key.
	_, err = s.GetForecast(weather.Location{City: "Capitola", Lat: 36.9752, Lon: -121.9533})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreForecastTTL(t *testing.T) {
	s := NewMemoryStore(time.Hour, 0)

	current := time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	s.SaveForecast(testLoc, testForecast())

	current = current.Add(59 * time.Minute)
	_, err := s.GetForecast(testLoc)
	assert.NoError(t, err)

	current = current.Add(2 * time.Minute)
	_, err = s.GetForecast(testLoc)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreZeroTTLNeverExpires(t *testing.T) {
	s := NewMemoryStore(0, 0)

	current := time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	s.SaveForecast(testLoc, testForecast())
	current = current.Add(1000 * time.Hour)

	_, err := s.GetForecast(testLoc)
	assert.NoError(t, err)
}

func TestMemoryStoreCatalog(t *testing.T) {
	s := NewMemoryStore(0, time.Hour)

	current := time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	_, err := s.GetCatalog()
	assert.ErrorIs(t, err, ErrNotFound)

	catalog := []activities.Activity{{ID: "rec1", Title: "Main Beach"}}
	s.SaveCatalog(catalog)

	got, err := s.GetCatalog()
	require.NoError(t, err)
	assert.Equal(t, catalog, got)

	current = current.Add(2 * time.Hour)
	_, err = s.GetCatalog()
	assert.ErrorIs(t, err, ErrNotFound)
}
