package guide

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boredinsantacruz/guide-service/internal/activities"
	"github.com/boredinsantacruz/guide-service/internal/store"
	"github.com/boredinsantacruz/guide-service/internal/weather"
)

var testLoc = weather.Location{City: "Santa Cruz", Lat: 36.9741, Lon: -122.0308}

type fakeProvider struct {
	name     string
	forecast weather.Forecast
	err      error
	calls    int
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) FetchForecast(ctx context.Context, loc weather.Location, days int) (weather.Forecast, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.forecast, nil
}

type fakeCatalog struct {
	acts []activities.Activity
	err  error
}

func (c *fakeCatalog) FetchActivities(ctx context.Context) ([]activities.Activity, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.acts, nil
}

func sunnyForecast(dates ...string) weather.Forecast {
	f := make(weather.Forecast, 0, len(dates))
	for _, d := range dates {
		f = append(f, weather.Snapshot{Date: d, TempF: 70, WindMph: 5, CloudCover: 10, VisibilityMi: 10, Condition: "clear"})
	}
	return f
}

func newTestStore() *store.MemoryStore {
	return store.NewMemoryStore(time.Hour, time.Hour)
}

func TestRefreshForecastMergesProviders(t *testing.T) {
	a := &fakeProvider{name: "a", forecast: weather.Forecast{
		{Date: "2026-03-03", TempF: 60, CloudCover: 20, VisibilityMi: 10, Condition: "clear"},
	}}
	b := &fakeProvider{name: "b", forecast: weather.Forecast{
		{Date: "2026-03-03", TempF: 70, CloudCover: 40, VisibilityMi: 10, Condition: "clear"},
	}}

	st := newTestStore()
	svc := NewService(st, []weather.ForecastProvider{a, b}, nil)

	require.NoError(t, svc.RefreshForecast(context.Background(), testLoc))

	f, err := st.GetForecast(testLoc)
	require.NoError(t, err)
	require.Len(t, f, 1)
	assert.InDelta(t, 65, f[0].TempF, 1e-9)
	assert.InDelta(t, 30, f[0].CloudCover, 1e-9)
}

func TestRefreshForecastPartialFailure(t *testing.T) {
	good := &fakeProvider{name: "good", forecast: sunnyForecast("2026-03-03")}
	bad := &fakeProvider{name: "bad", err: errors.New("upstream down")}

	st := newTestStore()
	svc := NewService(st, []weather.ForecastProvider{bad, good}, nil)

	require.NoError(t, svc.RefreshForecast(context.Background(), testLoc))

	f, err := st.GetForecast(testLoc)
	require.NoError(t, err)
	assert.Len(t, f, 1)
}

func TestRefreshForecastAllFail(t *testing.T) {
	bad := &fakeProvider{name: "bad", err: errors.New("upstream down")}

	st := newTestStore()
	svc := NewService(st, []weather.ForecastProvider{bad}, nil)

	err := svc.RefreshForecast(context.Background(), testLoc)
	assert.ErrorIs(t, err, ErrNoForecast)
}

func TestScoredForecastFetchesOnMiss(t *testing.T) {
	p := &fakeProvider{name: "p", forecast: sunnyForecast("2026-03-03", "2026-03-04", "2026-03-05")}
	st := newTestStore()
	svc := NewService(st, []weather.ForecastProvider{p}, nil)

	days, err := svc.ScoredForecast(context.Background(), testLoc, 2)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, 1, p.calls)

	assert.Equal(t, "2026-03-03", days[0].Date)
	assert.Equal(t, 100, days[0].Score)
	assert.Equal(t, weather.CategoryPerfectSunny, days[0].Category)
	assert.Equal(t, "Perfect & Sunny", days[0].Label)

	// The second read is served from cache.
	_, err = svc.ScoredForecast(context.Background(), testLoc, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, p.calls)
}

func TestScoredForecastRejectsBadDays(t *testing.T) {
	svc := NewService(newTestStore(), nil, nil)

	_, err := svc.ScoredForecast(context.Background(), testLoc, 0)
	assert.Error(t, err)
	_, err = svc.ScoredForecast(context.Background(), testLoc, 8)
	assert.Error(t, err)
}

func TestCurrentUsesFirstForecastDay(t *testing.T) {
	p := &fakeProvider{name: "p", forecast: sunnyForecast("2026-03-03", "2026-03-04")}
	svc := NewService(newTestStore(), []weather.ForecastProvider{p}, nil)

	current, err := svc.Current(context.Background(), testLoc)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-03", current.Date)
	assert.Equal(t, 100, current.Score)
}

func TestBestDayFromService(t *testing.T) {
	forecast := weather.Forecast{
		{Date: "2026-03-03", TempF: 45, PrecipIn: 0.4, WindMph: 25, CloudCover: 90, VisibilityMi: 2},
		{Date: "2026-03-04", TempF: 70, WindMph: 5, CloudCover: 10, VisibilityMi: 10},
	}
	p := &fakeProvider{name: "p", forecast: forecast}
	svc := NewService(newTestStore(), []weather.ForecastProvider{p}, nil)

	best, ok, err := svc.BestDay(context.Background(), testLoc)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2026-03-04", best.Date)
}

func TestRecommendationsFetchesCatalogOnMiss(t *testing.T) {
	p := &fakeProvider{name: "p", forecast: sunnyForecast("2026-03-03")}
	cat := &fakeCatalog{acts: []activities.Activity{
		{ID: "rec1", Title: "Main Beach", Setting: activities.SettingOutdoor},
		{ID: "rec2", Title: "Surfing Museum", Setting: activities.SettingIndoor},
	}}

	svc := NewService(newTestStore(), []weather.ForecastProvider{p}, cat)

	recs, err := svc.Recommendations(context.Background(), testLoc, 0)
	require.NoError(t, err)
	require.Len(t, recs.Tiers.Perfect, 1)
	assert.Equal(t, "Main Beach", recs.Tiers.Perfect[0].Title)
	assert.Len(t, recs.TopPicks, 2)
}

func TestRecommendationsWithoutCatalog(t *testing.T) {
	p := &fakeProvider{name: "p", forecast: sunnyForecast("2026-03-03")}
	svc := NewService(newTestStore(), []weather.ForecastProvider{p}, nil)

	_, err := svc.Recommendations(context.Background(), testLoc, 0)
	assert.ErrorIs(t, err, ErrNoCatalog)
}
