package providers

import (
	"time"

	"github.com/ar1012/weather-monitor/internal/weather"
)

// kelvinOffset is the exact offset used to normalize the forecast upstream's
// Kelvin temperatures to the Celsius values we store. It is unrelated to the
// truncated +273 used by the output unit converter.
const kelvinOffset = 273.15

// currentPayload mirrors the fields we consume from the current-conditions
// response.
type currentPayload struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
}

// forecastPayload mirrors the 5-day/3-hour forecast response.
type forecastPayload struct {
	List []forecastEntry `json:"list"`
}

type forecastEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
}

// normalizeCurrent converts a raw current-conditions payload into the
// canonical Reading shape. Upstream schema drift is isolated here.
func normalizeCurrent(city string, p currentPayload) weather.Reading {
	ts := time.Unix(p.Dt, 0).UTC()
	if p.Dt == 0 {
		ts = time.Now().UTC()
	}

	condition := ""
	if len(p.Weather) > 0 {
		condition = p.Weather[0].Main
	}

	return weather.Reading{
		City:      city,
		Temp:      p.Main.Temp,
		FeelsLike: p.Main.FeelsLike,
		Condition: condition,
		Humidity:  p.Main.Humidity,
		WindSpeed: p.Wind.Speed,
		Timestamp: ts,
	}
}

// normalizeForecastEntry converts a raw forecast entry into a transient
// ForecastSample, shifting temperatures from Kelvin to Celsius.
func normalizeForecastEntry(city string, e forecastEntry) weather.ForecastSample {
	ts := time.Unix(e.Dt, 0).UTC()
	if e.Dt == 0 {
		ts = time.Now().UTC()
	}

	condition := ""
	if len(e.Weather) > 0 {
		condition = e.Weather[0].Main
	}

	return weather.ForecastSample{
		City:      city,
		Temp:      e.Main.Temp - kelvinOffset,
		FeelsLike: e.Main.FeelsLike - kelvinOffset,
		Condition: condition,
		Humidity:  e.Main.Humidity,
		WindSpeed: e.Wind.Speed,
		Timestamp: ts,
	}
}
