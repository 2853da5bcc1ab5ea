package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/boredinsantacruz/guide-service/internal/common"
	"github.com/boredinsantacruz/guide-service/internal/weather"
)

// OpenMeteoProvider fetches daily forecasts from Open-Meteo. No API key is
// required; units are requested in imperial to match the domain model.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg common.HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		httpCfg: common.HTTPClientConfig{
			Client:  client,
			Backoff: common.DefaultBackoff(),
		},
		circuit: common.NewCircuitBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, loc weather.Location, days int) (weather.Forecast, error) {
	if loc.Lat == 0 && loc.Lon == 0 {
		return nil, fmt.Errorf("openmeteo requires latitude and longitude")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", loc.Lat))
		values.Set("longitude", fmt.Sprintf("%f", loc.Lon))
		values.Set("daily", "temperature_2m_max,precipitation_sum,precipitation_probability_max,wind_speed_10m_max,cloud_cover_mean,weather_code")
		values.Set("temperature_unit", "fahrenheit")
		values.Set("wind_speed_unit", "mph")
		values.Set("precipitation_unit", "inch")
		values.Set("timezone", "auto")
		values.Set("forecast_days", strconv.Itoa(days))

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := common.DoWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Daily struct {
			Time          []string   `json:"time"`
			TempMax       []float64  `json:"temperature_2m_max"`
			PrecipSum     []float64  `json:"precipitation_sum"`
			PrecipProbMax []*float64 `json:"precipitation_probability_max"`
			WindMax       []float64  `json:"wind_speed_10m_max"`
			CloudMean     []float64  `json:"cloud_cover_mean"`
			WeatherCode   []int      `json:"weather_code"`
		} `json:"daily"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	forecast := make(weather.Forecast, 0, len(payload.Daily.Time))

	for i, date := range payload.Daily.Time {
		snap := weather.Snapshot{
			Date:         date,
			VisibilityMi: 10,
			LastUpdated:  now,
		}
		if i < len(payload.Daily.TempMax) {
			snap.TempF = payload.Daily.TempMax[i]
		}
		if i < len(payload.Daily.PrecipSum) {
			snap.PrecipIn = payload.Daily.PrecipSum[i]
		}
		if i < len(payload.Daily.PrecipProbMax) && payload.Daily.PrecipProbMax[i] != nil {
			prob := *payload.Daily.PrecipProbMax[i]
			snap.PrecipProb = &prob
		}
		if i < len(payload.Daily.WindMax) {
			snap.WindMph = payload.Daily.WindMax[i]
		}
		if i < len(payload.Daily.CloudMean) {
			snap.CloudCover = payload.Daily.CloudMean[i]
		}
		if i < len(payload.Daily.WeatherCode) {
			code := payload.Daily.WeatherCode[i]
			snap.Condition = mapOpenMeteoCondition(code)
			// Open-Meteo has no daily visibility; infer it from fog codes.
			if code == 45 || code == 48 {
				snap.VisibilityMi = 1
			}
		}
		forecast = append(forecast, snap)
	}

	return forecast, nil
}

// mapOpenMeteoCondition translates WMO weather codes to normalized condition
// strings (simplified).
func mapOpenMeteoCondition(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code >= 1 && code <= 3:
		return "cloudy"
	case code == 45 || code == 48:
		return "fog"
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return "rain"
	case code >= 71 && code <= 77:
		return "snow"
	case code >= 95:
		return "storm"
	default:
		return "unknown"
	}
}
