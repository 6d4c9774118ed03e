package store

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/ar1012/weather-monitor/internal/weather"
)

// MemoryStore is a concurrency-safe in-memory implementation of the store
// contract, used by tests and API-key-free local runs. Readings are kept as a
// growing per-city log in insert order, matching the persistent store's
// append-only semantics.
type MemoryStore struct {
	mu sync.RWMutex

	// key: city, value: readings in insert order
	readings   map[string][]weather.Reading
	thresholds map[string]weather.Threshold
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		readings:   make(map[string][]weather.Reading),
		thresholds: make(map[string]weather.Threshold),
	}
}

// SaveReading appends a reading to the city's log.
func (s *MemoryStore) SaveReading(_ context.Context, r weather.Reading) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.readings[r.City] = append(s.readings[r.City], r)
	return nil
}

// RecentReadings returns up to limit readings for a city, newest first.
func (s *MemoryStore) RecentReadings(_ context.Context, city string, limit int) ([]weather.Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := s.readings[city]
	if len(log) == 0 {
		return nil, ErrNotFound
	}

	result := make([]weather.Reading, 0, limit)
	for i := len(log) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, log[i])
	}
	return result, nil
}

// DailyStats aggregates a city's readings with timestamp >= since.
func (s *MemoryStore) DailyStats(_ context.Context, city string, since time.Time) (weather.DailyStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		count                int
		tempSum, humiditySum float64
		windSum              float64
		minTemp              = math.Inf(1)
		maxTemp              = math.Inf(-1)
		minHumidity          = math.Inf(1)
		maxHumidity, maxWind float64
		conditions           []string
	)

	for _, r := range s.readings[city] {
		if r.Timestamp.Before(since) {
			continue
		}
		count++
		tempSum += r.Temp
		minTemp = math.Min(minTemp, r.Temp)
		maxTemp = math.Max(maxTemp, r.Temp)
		humiditySum += r.Humidity
		minHumidity = math.Min(minHumidity, r.Humidity)
		maxHumidity = math.Max(maxHumidity, r.Humidity)
		windSum += r.WindSpeed
		maxWind = math.Max(maxWind, r.WindSpeed)
		conditions = append(conditions, r.Condition)
	}

	if count == 0 {
		return weather.DailyStats{}, ErrNotFound
	}

	n := float64(count)
	return weather.DailyStats{
		AvgTemp:      tempSum / n,
		MinTemp:      minTemp,
		MaxTemp:      maxTemp,
		MinHumidity:  minHumidity,
		MaxHumidity:  maxHumidity,
		AvgHumidity:  humiditySum / n,
		AvgWindSpeed: windSum / n,
		MaxWindSpeed: maxWind,
		Conditions:   conditions,
	}, nil
}

// Threshold returns the city's threshold, or (nil, nil) when absent.
func (s *MemoryStore) Threshold(_ context.Context, city string) (*weather.Threshold, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	th, ok := s.thresholds[city]
	if !ok {
		return nil, nil
	}
	return &th, nil
}

// UpsertThreshold creates or replaces the city's threshold with the alert
// flag cleared.
func (s *MemoryStore) UpsertThreshold(_ context.Context, city string, tempThreshold float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.thresholds[city] = weather.Threshold{
		City:           city,
		TempThreshold:  tempThreshold,
		AlertTriggered: false,
	}
	return nil
}

// SetAlert updates only the alert flag. Missing thresholds are ignored.
func (s *MemoryStore) SetAlert(_ context.Context, city string, triggered bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	th, ok := s.thresholds[city]
	if !ok {
		return nil
	}
	th.AlertTriggered = triggered
	s.thresholds[city] = th
	return nil
}
