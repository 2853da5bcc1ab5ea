package store

import (
	"errors"
	"sync"
	"time"

	"github.com/boredinsantacruz/guide-service/internal/activities"
	"github.com/boredinsantacruz/guide-service/internal/weather"
)

var (
	// ErrNotFound is returned when no fresh data is cached for a key.
	ErrNotFound = errors.New("no cached data")
)

// MemoryStore is a concurrency-safe in-memory cache for forecasts and the
// activity catalog, each with its own time-to-live. Expired entries behave
// exactly like missing ones; callers re-fetch on ErrNotFound. A TTL of zero
// means entries never expire.
type MemoryStore struct {
	mu sync.RWMutex

	forecasts map[string]forecastEntry
	catalog   []activities.Activity
	catalogAt time.Time

	forecastTTL time.Duration
	catalogTTL  time.Duration

	// now is swappable for tests.
	now func() time.Time
}

type forecastEntry struct {
	forecast weather.Forecast
	storedAt time.Time
}

// NewMemoryStore creates a MemoryStore with the given TTLs.
func NewMemoryStore(forecastTTL, catalogTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		forecasts:   make(map[string]forecastEntry),
		forecastTTL: forecastTTL,
		catalogTTL:  catalogTTL,
		now:         time.Now,
	}
}

// SaveForecast replaces the cached forecast for a location.
func (s *MemoryStore) SaveForecast(loc weather.Location, forecast weather.Forecast) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forecasts[loc.Key()] = forecastEntry{forecast: forecast, storedAt: s.now()}
}

// GetForecast returns the cached forecast for a location, or ErrNotFound
// when none exists or the entry has expired.
func (s *MemoryStore) GetForecast(loc weather.Location) (weather.Forecast, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.forecasts[loc.Key()]
	if !ok || s.expired(entry.storedAt, s.forecastTTL) {
		return nil, ErrNotFound
	}
	return entry.forecast, nil
}

// SaveCatalog replaces the cached activity catalog.
func (s *MemoryStore) SaveCatalog(catalog []activities.Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = catalog
	s.catalogAt = s.now()
}

// GetCatalog returns the cached catalog, or ErrNotFound when empty or stale.
func (s *MemoryStore) GetCatalog() ([]activities.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.catalog == nil || s.expired(s.catalogAt, s.catalogTTL) {
		return nil, ErrNotFound
	}
	return s.catalog, nil
}

func (s *MemoryStore) expired(storedAt time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return s.now().Sub(storedAt) > ttl
}
