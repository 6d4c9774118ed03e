package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// ErrUnsupportedCity is returned by forecast queries for a city that is not
// in the configured list.
var ErrUnsupportedCity = errors.New("city not supported")

// recentLimit is the fixed page size for the recent-readings query.
const recentLimit = 10

// Service orchestrates ingestion ticks and answers read queries. All
// temperature conversion and rounding happens here, on the way out.
type Service struct {
	store    Store
	provider Provider
	cities   []string
}

// NewService creates a new Service tracking the given cities.
func NewService(store Store, provider Provider, cities []string) *Service {
	return &Service{
		store:    store,
		provider: provider,
		cities:   cities,
	}
}

// Cities returns the configured city list.
func (s *Service) Cities() []string {
	return s.cities
}

// Supports reports whether city is in the configured list.
func (s *Service) Supports(city string) bool {
	for _, c := range s.cities {
		if c == city {
			return true
		}
	}
	return false
}

// PollAll runs one ingestion tick: every configured city in order, one at a
// time. A failure for one city is logged and does not stop the others.
func (s *Service) PollAll(ctx context.Context) {
	for _, city := range s.cities {
		if err := s.pollCity(ctx, city); err != nil {
			log.Printf("ERROR: poll failed for %s: %v", city, err)
		}
	}
}

// pollCity fetches the current conditions for one city, persists the reading,
// and re-evaluates the city's threshold against it.
func (s *Service) pollCity(ctx context.Context, city string) error {
	reading, err := s.provider.FetchCurrent(ctx, city)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	if err := s.store.SaveReading(ctx, reading); err != nil {
		return fmt.Errorf("save reading: %w", err)
	}

	th, err := s.store.Threshold(ctx, city)
	if err != nil {
		return fmt.Errorf("load threshold: %w", err)
	}

	if !EvaluateThreshold(th, reading.Temp) {
		return nil
	}

	if th.AlertTriggered {
		log.Printf("ALERT! %s temperature %.2f°C exceeded threshold %.2f°C", city, reading.Temp, th.TempThreshold)
	} else {
		log.Printf("INFO: %s temperature %.2f°C back under threshold %.2f°C; alert cleared", city, reading.Temp, th.TempThreshold)
	}

	if err := s.store.SetAlert(ctx, city, th.AlertTriggered); err != nil {
		return fmt.Errorf("update alert flag: %w", err)
	}
	return nil
}

// RecentReadings returns the latest stored readings for a city, newest first,
// with temperatures converted to the requested unit.
func (s *Service) RecentReadings(ctx context.Context, city string, unit Unit) ([]Reading, error) {
	readings, err := s.store.RecentReadings(ctx, city, recentLimit)
	if err != nil {
		return nil, err
	}

	for i := range readings {
		readings[i].Temp = Round2(Convert(readings[i].Temp, unit))
		readings[i].FeelsLike = Round2(Convert(readings[i].FeelsLike, unit))
	}
	return readings, nil
}

// DailySummary aggregates today's readings (UTC midnight boundary) for a city.
func (s *Service) DailySummary(ctx context.Context, city string, unit Unit) (DailySummary, error) {
	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	stats, err := s.store.DailyStats(ctx, city, midnight)
	if err != nil {
		return DailySummary{}, err
	}

	dominant, err := DominantCondition(stats.Conditions)
	if err != nil {
		return DailySummary{}, err
	}

	return DailySummary{
		AvgTemp:           Round2(Convert(stats.AvgTemp, unit)),
		MinTemp:           Round2(Convert(stats.MinTemp, unit)),
		MaxTemp:           Round2(Convert(stats.MaxTemp, unit)),
		MinHumidity:       Round2(stats.MinHumidity),
		MaxHumidity:       Round2(stats.MaxHumidity),
		AvgHumidity:       Round2(stats.AvgHumidity),
		AvgWindSpeed:      Round2(stats.AvgWindSpeed),
		MaxWindSpeed:      Round2(stats.MaxWindSpeed),
		DominantCondition: dominant,
	}, nil
}

// Forecast fetches the forecast list for a supported city with temperatures
// converted to the requested unit.
func (s *Service) Forecast(ctx context.Context, city string, unit Unit) ([]ForecastSample, error) {
	if !s.Supports(city) {
		return nil, ErrUnsupportedCity
	}

	samples, err := s.provider.FetchForecast(ctx, city)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, ErrInsufficientData
	}

	for i := range samples {
		samples[i].Temp = Round2(Convert(samples[i].Temp, unit))
		samples[i].FeelsLike = Round2(Convert(samples[i].FeelsLike, unit))
	}
	return samples, nil
}

// ForecastSummary fetches and reduces the forecast for a supported city.
func (s *Service) ForecastSummary(ctx context.Context, city string, unit Unit) (ForecastSummary, error) {
	if !s.Supports(city) {
		return ForecastSummary{}, ErrUnsupportedCity
	}

	samples, err := s.provider.FetchForecast(ctx, city)
	if err != nil {
		return ForecastSummary{}, err
	}

	summary, err := AggregateSamples(city, samples)
	if err != nil {
		return ForecastSummary{}, err
	}

	summary.AvgTemp = Round2(Convert(summary.AvgTemp, unit))
	summary.MaxTemp = Round2(Convert(summary.MaxTemp, unit))
	summary.MinTemp = Round2(Convert(summary.MinTemp, unit))
	summary.AvgHumidity = Round2(summary.AvgHumidity)
	summary.MaxWindSpeed = Round2(summary.MaxWindSpeed)
	return summary, nil
}

// SetThresholds upserts each (city, tempThreshold) pair in order. Every
// upsert resets the city's alert flag, so re-submitting the same list is
// idempotent.
func (s *Service) SetThresholds(ctx context.Context, thresholds []Threshold) error {
	for _, th := range thresholds {
		if err := s.store.UpsertThreshold(ctx, th.City, th.TempThreshold); err != nil {
			return fmt.Errorf("upsert threshold for %s: %w", th.City, err)
		}
	}
	return nil
}
