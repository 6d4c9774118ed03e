package httpapi

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ar1012/weather-monitor/internal/store"
	"github.com/ar1012/weather-monitor/internal/weather"
)

var validate = validator.New()

// thresholdItem is one entry of the bulk threshold upsert payload.
// TempThreshold is required, so an explicit zero is rejected.
type thresholdItem struct {
	City          string  `json:"city" validate:"required"`
	TempThreshold float64 `json:"tempThreshold" validate:"required"`
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. Static segments
// are registered before the /weather/:city catch-all.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	app.Get("/weather/daily-summary/:city", func(c *fiber.Ctx) error {
		city := c.Params("city")
		unit := weather.ParseUnit(c.Query("unit"))

		summary, err := service.DailySummary(c.Context(), city, unit)
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, weather.ErrInsufficientData) {
			return c.JSON(fiber.Map{"message": "No data available for today"})
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "error retrieving daily summary")
		}

		return c.JSON(summary)
	})

	app.Get("/weather/forecast/:city", func(c *fiber.Ctx) error {
		city := c.Params("city")
		unit := weather.ParseUnit(c.Query("unit"))

		samples, err := service.Forecast(c.Context(), city, unit)
		if errors.Is(err, weather.ErrUnsupportedCity) {
			return fiber.NewError(fiber.StatusBadRequest, unsupportedCityMessage(service))
		}
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "error fetching forecast data for "+city)
		}

		return c.JSON(samples)
	})

	app.Get("/weather/forecast-summary/:city", func(c *fiber.Ctx) error {
		city := c.Params("city")
		unit := weather.ParseUnit(c.Query("unit"))

		summary, err := service.ForecastSummary(c.Context(), city, unit)
		if errors.Is(err, weather.ErrUnsupportedCity) {
			return fiber.NewError(fiber.StatusBadRequest, unsupportedCityMessage(service))
		}
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "error fetching forecast data for "+city)
		}

		return c.JSON(summary)
	})

	app.Get("/weather/:city", func(c *fiber.Ctx) error {
		city := c.Params("city")
		unit := weather.ParseUnit(c.Query("unit"))

		readings, err := service.RecentReadings(c.Context(), city, unit)
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "no weather data found for this city")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "error retrieving weather data")
		}

		return c.JSON(readings)
	})

	app.Post("/thresholds", func(c *fiber.Ctx) error {
		var items []thresholdItem
		if err := c.BodyParser(&items); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "request body must be an array of thresholds")
		}
		if len(items) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "request body must be a non-empty array of thresholds")
		}

		// Validate every item before touching the store.
		thresholds := make([]weather.Threshold, 0, len(items))
		for _, item := range items {
			if err := validate.Struct(item); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "city and tempThreshold are required for each item")
			}
			thresholds = append(thresholds, weather.Threshold{
				City:          item.City,
				TempThreshold: item.TempThreshold,
			})
		}

		if err := service.SetThresholds(c.Context(), thresholds); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "error setting or updating threshold")
		}

		return c.JSON(fiber.Map{"message": "Thresholds updated successfully"})
	})
}

func unsupportedCityMessage(service *weather.Service) string {
	return "City not supported. Available cities: " + strings.Join(service.Cities(), ", ")
}
