package guide

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/boredinsantacruz/guide-service/internal/activities"
	"github.com/boredinsantacruz/guide-service/internal/store"
	"github.com/boredinsantacruz/guide-service/internal/weather"
)

// ForecastDays is the forecast window the guide works with.
const ForecastDays = 7

var (
	// ErrNoForecast is returned when no provider could supply forecast data.
	ErrNoForecast = errors.New("no forecast data available")
	// ErrNoCatalog is returned when the activity catalog is unavailable.
	ErrNoCatalog = errors.New("no activity catalog available")
)

// CatalogProvider abstracts the activity catalog backend.
type CatalogProvider interface {
	FetchActivities(ctx context.Context) ([]activities.Activity, error)
}

// Store is the cache the service reads through. Both getters return
// store.ErrNotFound for missing or expired entries.
type Store interface {
	SaveForecast(loc weather.Location, forecast weather.Forecast)
	GetForecast(loc weather.Location) (weather.Forecast, error)
	SaveCatalog(catalog []activities.Activity)
	GetCatalog() ([]activities.Activity, error)
}

// ScoredDay is one forecast day annotated by the scoring core.
type ScoredDay struct {
	weather.Snapshot
	Score    int              `json:"score"`
	Category weather.Category `json:"category"`
	Label    string           `json:"label"`
	Emoji    string           `json:"emoji"`
}

// Service orchestrates forecast providers, the catalog backend, the cache,
// and the pure scoring core. All scoring stays in the weather and activities
// packages; the service only fetches, merges, and caches.
type Service struct {
	store     Store
	providers []weather.ForecastProvider
	catalog   CatalogProvider
}

func NewService(st Store, providers []weather.ForecastProvider, catalog CatalogProvider) *Service {
	return &Service{
		store:     st,
		providers: providers,
		catalog:   catalog,
	}
}

// RefreshForecast fetches from all providers concurrently, merges the
// per-day results, and caches the merged forecast. Partial provider failure
// is fine; the fetch only fails when every provider does.
func (s *Service) RefreshForecast(ctx context.Context, loc weather.Location) error {
	if len(s.providers) == 0 {
		return fmt.Errorf("%w: no providers configured", ErrNoForecast)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		forecasts []weather.Forecast
	)

	for _, p := range s.providers {
		wg.Add(1)
		go func(p weather.ForecastProvider) {
			defer wg.Done()

			f, err := p.FetchForecast(ctx, loc, ForecastDays)
			if err != nil {
				// Log and continue; we want partial success when possible.
				log.Printf("provider %s forecast failed for %s: %v", p.Name(), loc.Key(), err)
				return
			}
			if len(f) == 0 {
				return
			}

			mu.Lock()
			forecasts = append(forecasts, f)
			mu.Unlock()
		}(p)
	}
	wg.Wait()

	merged := weather.MergeForecasts(forecasts)
	if len(merged) == 0 {
		// Keep the last good forecast rather than caching nothing.
		log.Printf("no successful forecast readings for %s; keeping last cached forecast if any", loc.Key())
		return ErrNoForecast
	}

	s.store.SaveForecast(loc, merged)
	return nil
}

// RefreshCatalog fetches the activity catalog and caches it.
func (s *Service) RefreshCatalog(ctx context.Context) error {
	if s.catalog == nil {
		return ErrNoCatalog
	}
	acts, err := s.catalog.FetchActivities(ctx)
	if err != nil {
		return fmt.Errorf("fetch activities: %w", err)
	}
	s.store.SaveCatalog(acts)
	return nil
}

// forecast reads the cached forecast, refreshing on a miss so cold starts
// and expired entries are transparent to callers.
func (s *Service) forecast(ctx context.Context, loc weather.Location) (weather.Forecast, error) {
	f, err := s.store.GetForecast(loc)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	if err := s.RefreshForecast(ctx, loc); err != nil {
		return nil, err
	}
	return s.store.GetForecast(loc)
}

// ScoredForecast returns up to days scored forecast entries.
func (s *Service) ScoredForecast(ctx context.Context, loc weather.Location, days int) ([]ScoredDay, error) {
	if days <= 0 || days > ForecastDays {
		return nil, fmt.Errorf("days must be between 1 and %d", ForecastDays)
	}

	f, err := s.forecast(ctx, loc)
	if err != nil {
		return nil, err
	}
	if len(f) > days {
		f = f[:days]
	}

	scored := make([]ScoredDay, 0, len(f))
	for _, snap := range f {
		scored = append(scored, newScoredDay(snap))
	}
	return scored, nil
}

// Current returns today's snapshot (the first forecast day) with its score
// and category.
func (s *Service) Current(ctx context.Context, loc weather.Location) (ScoredDay, error) {
	f, err := s.forecast(ctx, loc)
	if err != nil {
		return ScoredDay{}, err
	}
	if len(f) == 0 {
		return ScoredDay{}, ErrNoForecast
	}
	return newScoredDay(f[0]), nil
}

// BestDay runs the best-day selector over the full forecast window.
// ok is false when no day clears the highlight floor.
func (s *Service) BestDay(ctx context.Context, loc weather.Location) (weather.BestDay, bool, error) {
	f, err := s.forecast(ctx, loc)
	if err != nil {
		return weather.BestDay{}, false, err
	}
	best, ok := weather.SelectBestDay(f)
	return best, ok, nil
}

// Recommendations ranks the cached catalog against today's weather.
func (s *Service) Recommendations(ctx context.Context, loc weather.Location, topN int) (activities.Recommendations, error) {
	catalog, err := s.store.GetCatalog()
	if errors.Is(err, store.ErrNotFound) {
		if refreshErr := s.RefreshCatalog(ctx); refreshErr != nil {
			return activities.Recommendations{}, refreshErr
		}
		catalog, err = s.store.GetCatalog()
	}
	if err != nil {
		return activities.Recommendations{}, err
	}

	current, err := s.Current(ctx, loc)
	if err != nil {
		return activities.Recommendations{}, err
	}

	return activities.Rank(catalog, current.Snapshot, topN), nil
}

func newScoredDay(snap weather.Snapshot) ScoredDay {
	category := weather.Categorize(snap)
	return ScoredDay{
		Snapshot: snap,
		Score:    weather.Score(snap),
		Category: category,
		Label:    category.Label(),
		Emoji:    category.Emoji(),
	}
}
