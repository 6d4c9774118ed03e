package weather

import (
	"errors"
	"math"
)

// ErrInsufficientData is returned when an aggregation is attempted over an
// empty sample set. Surfacing it keeps a zero-length input from silently
// producing NaN averages downstream.
var ErrInsufficientData = errors.New("insufficient data for aggregation")

// DominantCondition returns the most frequent condition label in the input.
// On a tie the label that first appeared earliest wins, so the result is
// stable with respect to arrival order.
func DominantCondition(conditions []string) (string, error) {
	if len(conditions) == 0 {
		return "", ErrInsufficientData
	}

	counts := make(map[string]int, len(conditions))
	order := make([]string, 0, len(conditions))
	for _, c := range conditions {
		if _, seen := counts[c]; !seen {
			order = append(order, c)
		}
		counts[c]++
	}

	best := order[0]
	for _, c := range order[1:] {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return best, nil
}

// AggregateSamples reduces a city's forecast samples to a summary in a single
// pass. Output values are raw; rounding is applied later at the response
// boundary.
func AggregateSamples(city string, samples []ForecastSample) (ForecastSummary, error) {
	if len(samples) == 0 {
		return ForecastSummary{}, ErrInsufficientData
	}

	var (
		tempSum     float64
		humiditySum float64
		maxTemp     = math.Inf(-1)
		minTemp     = math.Inf(1)
		maxWind     float64
	)

	conditions := make([]string, 0, len(samples))
	for _, s := range samples {
		tempSum += s.Temp
		maxTemp = math.Max(maxTemp, s.Temp)
		minTemp = math.Min(minTemp, s.Temp)
		humiditySum += s.Humidity
		maxWind = math.Max(maxWind, s.WindSpeed)
		conditions = append(conditions, s.Condition)
	}

	dominant, err := DominantCondition(conditions)
	if err != nil {
		return ForecastSummary{}, err
	}

	n := float64(len(samples))
	return ForecastSummary{
		City:              city,
		AvgTemp:           tempSum / n,
		MaxTemp:           maxTemp,
		MinTemp:           minTemp,
		AvgHumidity:       humiditySum / n,
		MaxWindSpeed:      maxWind,
		DominantCondition: dominant,
	}, nil
}
