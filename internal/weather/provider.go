package weather

import "context"

// ForecastProvider abstracts an upstream forecast source (e.g. Open-Meteo,
// WeatherAPI). Implementations return up to days snapshots ordered by date.
type ForecastProvider interface {
	Name() string
	FetchForecast(ctx context.Context, loc Location, days int) (Forecast, error)
}
