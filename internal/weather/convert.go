package weather

import "math"

// Unit is an output temperature unit. Stored values are always Celsius;
// conversion happens only when shaping a response.
type Unit string

const (
	UnitCelsius    Unit = "celsius"
	UnitFahrenheit Unit = "fahrenheit"
	UnitKelvin     Unit = "kelvin"
)

// ParseUnit maps a query-string value to a Unit. Anything unrecognized,
// including the empty string, falls back to Celsius.
func ParseUnit(s string) Unit {
	switch Unit(s) {
	case UnitFahrenheit:
		return UnitFahrenheit
	case UnitKelvin:
		return UnitKelvin
	default:
		return UnitCelsius
	}
}

// Convert converts a Celsius temperature to the target unit.
//
// The Kelvin offset is +273, not the exact +273.15: the values historically
// served use the truncated constant, so it is kept for compatibility.
func Convert(v float64, unit Unit) float64 {
	switch unit {
	case UnitFahrenheit:
		return v*1.8 + 32
	case UnitKelvin:
		return v + 273
	default:
		return v
	}
}

// Round2 rounds to two decimal places. All numeric response fields pass
// through here exactly once, at the output boundary.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
