package weather

import (
	"context"
	"time"
)

// Provider abstracts the weather upstream (e.g. OpenWeatherMap). Both calls
// are fallible: a city the upstream does not know yields an error, which the
// ingestion path treats as non-fatal.
type Provider interface {
	Name() string
	FetchCurrent(ctx context.Context, city string) (Reading, error)
	FetchForecast(ctx context.Context, city string) ([]ForecastSample, error)
}

// Store is the persistence contract. Readings are append-only; thresholds are
// keyed by city. Implementations report missing query results with their own
// not-found sentinel, except Threshold, which returns (nil, nil) for an
// unconfigured city so the ingestion path can treat absence as a no-op.
type Store interface {
	SaveReading(ctx context.Context, r Reading) error
	RecentReadings(ctx context.Context, city string, limit int) ([]Reading, error)

	// DailyStats aggregates readings for city with timestamp >= since.
	DailyStats(ctx context.Context, city string, since time.Time) (DailyStats, error)

	Threshold(ctx context.Context, city string) (*Threshold, error)
	UpsertThreshold(ctx context.Context, city string, tempThreshold float64) error
	SetAlert(ctx context.Context, city string, triggered bool) error
}
