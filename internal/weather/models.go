package weather

import (
	"time"
)

// Reading is one persisted weather observation for a city at a point in time.
// Readings are append-only: once written they are never updated or deleted.
// Temperatures are stored in Celsius; humidity is a 0-100 percentage and
// wind speed passes through in whatever unit the upstream source reports.
type Reading struct {
	City      string    `bson:"city" json:"city"`
	Temp      float64   `bson:"temp" json:"temp"`
	FeelsLike float64   `bson:"feels_like" json:"feels_like"`
	Condition string    `bson:"condition" json:"condition"`
	Humidity  float64   `bson:"humidity" json:"humidity"`
	WindSpeed float64   `bson:"wind_speed" json:"wind_speed"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"` // always UTC
}

// ForecastSample is a single forecast entry for a city. It has the same shape
// as a Reading but is synthesized from the forecast upstream and never stored.
type ForecastSample struct {
	City      string    `json:"city"`
	Temp      float64   `json:"temp"`
	FeelsLike float64   `json:"feels_like"`
	Condition string    `json:"condition"`
	Humidity  float64   `json:"humidity"`
	WindSpeed float64   `json:"wind_speed"`
	Timestamp time.Time `json:"timestamp"`
}

// Threshold is the per-city temperature boundary plus current alert state.
// There is exactly one Threshold per city; upserting one resets AlertTriggered.
type Threshold struct {
	City           string  `bson:"city" json:"city"`
	TempThreshold  float64 `bson:"tempThreshold" json:"tempThreshold"`
	AlertTriggered bool    `bson:"alertTriggered" json:"alertTriggered"`
}

// DailyStats is the raw rollup the store produces for one city over one
// calendar day. Conditions preserves arrival order so the dominant-condition
// tie rule stays stable.
type DailyStats struct {
	AvgTemp      float64  `bson:"avgTemp"`
	MinTemp      float64  `bson:"minTemp"`
	MaxTemp      float64  `bson:"maxTemp"`
	MinHumidity  float64  `bson:"minHumidity"`
	MaxHumidity  float64  `bson:"maxHumidity"`
	AvgHumidity  float64  `bson:"avgHumidity"`
	AvgWindSpeed float64  `bson:"avgWindSpeed"`
	MaxWindSpeed float64  `bson:"maxWindSpeed"`
	Conditions   []string `bson:"conditions"`
}

// DailySummary is the derived daily rollup served to callers. It is never
// persisted; it is recomputed from the reading log at query time.
type DailySummary struct {
	AvgTemp           float64 `json:"avgTemp"`
	MinTemp           float64 `json:"minTemp"`
	MaxTemp           float64 `json:"maxTemp"`
	MinHumidity       float64 `json:"minHumidity"`
	MaxHumidity       float64 `json:"maxHumidity"`
	AvgHumidity       float64 `json:"avgHumidity"`
	AvgWindSpeed      float64 `json:"avgWindSpeed"`
	MaxWindSpeed      float64 `json:"maxWindSpeed"`
	DominantCondition string  `json:"dominantCondition"`
}

// ForecastSummary is the derived rollup over a city's forecast samples.
type ForecastSummary struct {
	City              string  `json:"city"`
	AvgTemp           float64 `json:"avgTemp"`
	MaxTemp           float64 `json:"maxTemp"`
	MinTemp           float64 `json:"minTemp"`
	AvgHumidity       float64 `json:"avgHumidity"`
	MaxWindSpeed      float64 `json:"maxWindSpeed"`
	DominantCondition string  `json:"dominantCondition"`
}
