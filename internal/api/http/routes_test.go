package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ar1012/weather-monitor/internal/store"
	"github.com/ar1012/weather-monitor/internal/weather"
)

// stubForecastProvider serves a fixed forecast for every supported city.
type stubForecastProvider struct {
	samples []weather.ForecastSample
	err     error
}

func (p *stubForecastProvider) Name() string { return "stub" }

func (p *stubForecastProvider) FetchCurrent(_ context.Context, city string) (weather.Reading, error) {
	return weather.Reading{}, errors.New("not used in http tests")
}

func (p *stubForecastProvider) FetchForecast(_ context.Context, city string) ([]weather.ForecastSample, error) {
	if p.err != nil {
		return nil, p.err
	}
	out := make([]weather.ForecastSample, len(p.samples))
	copy(out, p.samples)
	for i := range out {
		out[i].City = city
	}
	return out, nil
}

func newTestApp(memStore *store.MemoryStore, provider weather.Provider) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": true, "message": err.Error()})
		},
	})

	svc := weather.NewService(memStore, provider, []string{"Delhi", "Mumbai"})
	RegisterRoutes(app, svc)
	return app
}

func seedToday(t *testing.T, s *store.MemoryStore, city string, temps []float64) {
	t.Helper()
	now := time.Now().UTC()
	for i, temp := range temps {
		r := weather.Reading{
			City:      city,
			Temp:      temp,
			FeelsLike: temp + 1,
			Condition: "Clear",
			Humidity:  50,
			WindSpeed: 5,
			Timestamp: now.Add(time.Duration(i-len(temps)) * time.Minute),
		}
		if err := s.SaveReading(context.Background(), r); err != nil {
			t.Fatalf("SaveReading: %v", err)
		}
	}
}

func TestGetWeatherUnknownCity(t *testing.T) {
	app := newTestApp(store.NewMemoryStore(), &stubForecastProvider{})

	req := httptest.NewRequest(http.MethodGet, "/weather/Atlantis", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestGetWeatherLatestTenConverted(t *testing.T) {
	memStore := store.NewMemoryStore()
	seedToday(t, memStore, "Delhi", []float64{20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31})
	app := newTestApp(memStore, &stubForecastProvider{})

	req := httptest.NewRequest(http.MethodGet, "/weather/Delhi?unit=fahrenheit", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var readings []weather.Reading
	if err := json.NewDecoder(resp.Body).Decode(&readings); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(readings) != 10 {
		t.Fatalf("expected 10 readings, got %d", len(readings))
	}
	// Newest reading is 31°C = 87.8°F.
	if readings[0].Temp != 87.8 {
		t.Fatalf("expected newest temp 87.8°F, got %v", readings[0].Temp)
	}
	// Humidity and wind speed are never converted.
	if readings[0].Humidity != 50 || readings[0].WindSpeed != 5 {
		t.Fatalf("humidity/wind must pass through unchanged, got %v/%v", readings[0].Humidity, readings[0].WindSpeed)
	}
}

func TestDailySummaryNoData(t *testing.T) {
	app := newTestApp(store.NewMemoryStore(), &stubForecastProvider{})

	req := httptest.NewRequest(http.MethodGet, "/weather/daily-summary/Delhi", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Absence of today's data is a distinct message, not a fault.
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["message"] != "No data available for today" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestDailySummary(t *testing.T) {
	memStore := store.NewMemoryStore()
	seedToday(t, memStore, "Delhi", []float64{20, 30})
	app := newTestApp(memStore, &stubForecastProvider{})

	req := httptest.NewRequest(http.MethodGet, "/weather/daily-summary/Delhi", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var summary weather.DailySummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if summary.AvgTemp != 25 || summary.MinTemp != 20 || summary.MaxTemp != 30 {
		t.Fatalf("temps = %v/%v/%v, want 25/20/30", summary.AvgTemp, summary.MinTemp, summary.MaxTemp)
	}
	if summary.DominantCondition != "Clear" {
		t.Fatalf("dominant = %q, want Clear", summary.DominantCondition)
	}
}

func TestForecastUnsupportedCity(t *testing.T) {
	app := newTestApp(store.NewMemoryStore(), &stubForecastProvider{})

	for _, path := range []string{"/weather/forecast/Paris", "/weather/forecast-summary/Paris"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected status %d, got %d", path, http.StatusBadRequest, resp.StatusCode)
		}
	}
}

func TestForecastKelvinConversion(t *testing.T) {
	provider := &stubForecastProvider{samples: []weather.ForecastSample{
		{Temp: 20, FeelsLike: 19, Humidity: 50, WindSpeed: 5, Condition: "Clear", Timestamp: time.Now().UTC()},
	}}
	app := newTestApp(store.NewMemoryStore(), provider)

	req := httptest.NewRequest(http.MethodGet, "/weather/forecast/Delhi?unit=kelvin", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var samples []weather.ForecastSample
	if err := json.NewDecoder(resp.Body).Decode(&samples); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(samples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(samples))
	}
	// Output Kelvin uses the truncated +273 offset.
	if samples[0].Temp != 293 {
		t.Fatalf("expected 293K, got %v", samples[0].Temp)
	}
	if samples[0].City != "Delhi" {
		t.Fatalf("expected city Delhi, got %q", samples[0].City)
	}
}

func TestForecastUpstreamFailure(t *testing.T) {
	provider := &stubForecastProvider{err: errors.New("upstream down")}
	app := newTestApp(store.NewMemoryStore(), provider)

	req := httptest.NewRequest(http.MethodGet, "/weather/forecast/Delhi", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status %d, got %d", http.StatusBadGateway, resp.StatusCode)
	}
}

func TestForecastSummary(t *testing.T) {
	provider := &stubForecastProvider{samples: []weather.ForecastSample{
		{Temp: 20, Humidity: 50, WindSpeed: 5, Condition: "Clear"},
		{Temp: 30, Humidity: 70, WindSpeed: 10, Condition: "Rain"},
	}}
	app := newTestApp(store.NewMemoryStore(), provider)

	req := httptest.NewRequest(http.MethodGet, "/weather/forecast-summary/Delhi", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var summary weather.ForecastSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if summary.AvgTemp != 25 || summary.MinTemp != 20 || summary.MaxTemp != 30 {
		t.Fatalf("temps = %v/%v/%v, want 25/20/30", summary.AvgTemp, summary.MinTemp, summary.MaxTemp)
	}
	if summary.AvgHumidity != 60 || summary.MaxWindSpeed != 10 {
		t.Fatalf("humidity/wind = %v/%v, want 60/10", summary.AvgHumidity, summary.MaxWindSpeed)
	}
	if summary.DominantCondition != "Clear" {
		t.Fatalf("dominant = %q, want Clear (first-seen tie)", summary.DominantCondition)
	}
}

func TestPostThresholds(t *testing.T) {
	app := newTestApp(store.NewMemoryStore(), &stubForecastProvider{})

	body := bytes.NewBufferString(`[{"city":"Delhi","tempThreshold":35}]`)
	req := httptest.NewRequest(http.MethodPost, "/thresholds", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["message"] != "Thresholds updated successfully" {
		t.Fatalf("unexpected body: %v", out)
	}
}

func TestPostThresholdsValidation(t *testing.T) {
	app := newTestApp(store.NewMemoryStore(), &stubForecastProvider{})

	cases := []string{
		`{"city":"Delhi","tempThreshold":35}`,  // not an array
		`[{"city":"Delhi"}]`,                   // missing tempThreshold
		`[{"tempThreshold":35}]`,               // missing city
		`[]`,                                   // empty array
		`not json`,                             // malformed
	}

	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/thresholds", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("body %q: expected status %d, got %d", body, http.StatusBadRequest, resp.StatusCode)
		}
	}
}
