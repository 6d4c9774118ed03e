package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/ar1012/weather-monitor/internal/weather"
)

// OpenWeatherProvider implements weather.Provider against OpenWeatherMap's
// current-conditions and 5-day/3-hour forecast endpoints.
type OpenWeatherProvider struct {
	name        string
	apiKey      string
	currentURL  string
	forecastURL string
	client      *http.Client
	backoff     backoffConfig
	circuit     *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:        "openweathermap",
		apiKey:      apiKey,
		currentURL:  "https://api.openweathermap.org/data/2.5/weather",
		forecastURL: "https://api.openweathermap.org/data/2.5/forecast",
		client:      client,
		backoff: backoffConfig{
			maxRetries:      3,
			initialInterval: 500 * time.Millisecond,
			maxInterval:     5 * time.Second,
		},
		circuit: newBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// FetchCurrent fetches the current conditions for a city. The request asks
// for metric units, so temperatures arrive in Celsius.
func (p *OpenWeatherProvider) FetchCurrent(ctx context.Context, city string) (weather.Reading, error) {
	if p.apiKey == "" {
		return weather.Reading{}, fmt.Errorf("openweather api key is not configured")
	}

	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")

	resp, err := doRequest(ctx, p.client, p.circuit, p.backoff, fmt.Sprintf("%s?%s", p.currentURL, values.Encode()))
	if err != nil {
		return weather.Reading{}, err
	}
	defer resp.Body.Close()

	var payload currentPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Reading{}, err
	}
	if len(payload.Weather) == 0 {
		return weather.Reading{}, fmt.Errorf("no weather data found for %s", city)
	}

	return normalizeCurrent(city, payload), nil
}

// FetchForecast fetches the 5-day/3-hour forecast list for a city. This
// endpoint is queried without a units parameter, so temperatures arrive in
// Kelvin and are converted during normalization.
func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, city string) ([]weather.ForecastSample, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("openweather api key is not configured")
	}

	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", p.apiKey)

	resp, err := doRequest(ctx, p.client, p.circuit, p.backoff, fmt.Sprintf("%s?%s", p.forecastURL, values.Encode()))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload forecastPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	samples := make([]weather.ForecastSample, 0, len(payload.List))
	for _, entry := range payload.List {
		samples = append(samples, normalizeForecastEntry(city, entry))
	}
	return samples, nil
}
