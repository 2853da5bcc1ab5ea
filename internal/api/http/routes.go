package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/boredinsantacruz/guide-service/internal/guide"
	"github.com/boredinsantacruz/guide-service/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. The service is
// a single-town guide, so every route operates on the configured location.
func RegisterRoutes(app *fiber.App, service *guide.Service, loc weather.Location) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		current, err := service.Current(c.Context(), loc)
		if err != nil {
			if errors.Is(err, guide.ErrNoForecast) {
				return fiber.NewError(fiber.StatusNotFound, "no weather data available")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
		}
		return c.JSON(fiber.Map{
			"location": loc,
			"current":  current,
		})
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		var req forecastQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		days, err := service.ScoredForecast(c.Context(), loc, req.Days)
		if err != nil {
			if errors.Is(err, guide.ErrNoForecast) {
				return fiber.NewError(fiber.StatusNotFound, "no forecast data available")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch forecast")
		}

		return c.JSON(fiber.Map{
			"location": loc,
			"days":     days,
		})
	})

	v1.Get("/weather/best-day", func(c *fiber.Ctx) error {
		best, ok, err := service.BestDay(c.Context(), loc)
		if err != nil {
			if errors.Is(err, guide.ErrNoForecast) {
				return fiber.NewError(fiber.StatusNotFound, "no forecast data available")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to select best day")
		}
		if !ok {
			return c.JSON(fiber.Map{
				"highlight": false,
				"message":   "no standout day this week",
			})
		}
		return c.JSON(fiber.Map{
			"highlight": true,
			"bestDay":   best,
		})
	})

	v1.Get("/recommendations", func(c *fiber.Ctx) error {
		var req recommendationsQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		recs, err := service.Recommendations(c.Context(), loc, req.Limit)
		if err != nil {
			switch {
			case errors.Is(err, guide.ErrNoCatalog):
				return fiber.NewError(fiber.StatusServiceUnavailable, "activity catalog is not configured")
			case errors.Is(err, guide.ErrNoForecast):
				return fiber.NewError(fiber.StatusNotFound, "no weather data available")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to build recommendations")
		}

		return c.JSON(recs)
	})
}

// forecastQuery holds query parameters for the forecast endpoint.
type forecastQuery struct {
	Days int `validate:"required,gte=1,lte=7"`
}

func (q *forecastQuery) bind(c *fiber.Ctx) error {
	daysStr := c.Query("days", "7")
	days, err := strconv.Atoi(daysStr)
	if err != nil {
		return errors.New("days must be an integer between 1 and 7")
	}
	q.Days = days
	return nil
}

// recommendationsQuery holds query parameters for the recommendations
// endpoint.
type recommendationsQuery struct {
	Limit int `validate:"gte=0,lte=20"`
}

func (q *recommendationsQuery) bind(c *fiber.Ctx) error {
	limitStr := c.Query("limit", "0")
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		return errors.New("limit must be an integer between 1 and 20")
	}
	q.Limit = limit
	return nil
}
