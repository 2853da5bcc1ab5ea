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

// WeatherAPIProvider fetches daily forecasts from WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg common.HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(client *http.Client, apiKey string) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: "https://api.weatherapi.com/v1/forecast.json",
		httpCfg: common.HTTPClientConfig{
			Client:  client,
			Backoff: common.DefaultBackoff(),
		},
		circuit: common.NewCircuitBreaker("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

func (p *WeatherAPIProvider) FetchForecast(ctx context.Context, loc weather.Location, days int) (weather.Forecast, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("weatherapi api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		// WeatherAPI accepts "lat,lon" or a city name for q.
		if loc.Lat != 0 || loc.Lon != 0 {
			values.Set("q", fmt.Sprintf("%f,%f", loc.Lat, loc.Lon))
		} else {
			values.Set("q", loc.City)
		}
		values.Set("days", strconv.Itoa(days))

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := common.DoWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Forecast struct {
			ForecastDay []struct {
				Date string `json:"date"`
				Day  struct {
					MaxTempF       float64 `json:"maxtemp_f"`
					TotalPrecipIn  float64 `json:"totalprecip_in"`
					MaxWindMph     float64 `json:"maxwind_mph"`
					AvgVisMiles    float64 `json:"avgvis_miles"`
					DailyChanceOfR float64 `json:"daily_chance_of_rain"`
					Condition      struct {
						Text string `json:"text"`
					} `json:"condition"`
				} `json:"day"`
			} `json:"forecastday"`
		} `json:"forecast"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	forecast := make(weather.Forecast, 0, len(payload.Forecast.ForecastDay))

	for _, fd := range payload.Forecast.ForecastDay {
		prob := fd.Day.DailyChanceOfR
		forecast = append(forecast, weather.Snapshot{
			Date:         fd.Date,
			TempF:        fd.Day.MaxTempF,
			PrecipIn:     fd.Day.TotalPrecipIn,
			PrecipProb:   &prob,
			WindMph:      fd.Day.MaxWindMph,
			CloudCover:   cloudCoverFromCondition(fd.Day.Condition.Text),
			VisibilityMi: fd.Day.AvgVisMiles,
			Condition:    mapWeatherAPICondition(fd.Day.Condition.Text),
			LastUpdated:  now,
		})
	}

	return forecast, nil
}

func mapWeatherAPICondition(text string) string {
	switch {
	case text == "":
		return "unknown"
	case common.HasAny(text, "rain", "shower", "drizzle"):
		return "rain"
	case common.HasAny(text, "snow", "sleet", "blizzard"):
		return "snow"
	case common.HasAny(text, "thunder", "storm"):
		return "storm"
	case common.HasAny(text, "fog", "mist"):
		return "fog"
	case common.HasAny(text, "overcast"):
		return "cloudy"
	case common.HasAny(text, "cloud"):
		return "cloudy"
	case common.HasAny(text, "sunny", "clear"):
		return "clear"
	default:
		return "unknown"
	}
}

// cloudCoverFromCondition estimates daily cloud cover from the condition
// text, since WeatherAPI only reports cloud percentages hourly.
func cloudCoverFromCondition(text string) float64 {
	switch {
	case common.HasAny(text, "overcast"):
		return 90
	case common.HasAny(text, "partly"):
		return 40
	case common.HasAny(text, "cloud"):
		return 70
	case common.HasAny(text, "sunny", "clear"):
		return 10
	default:
		return 50
	}
}
