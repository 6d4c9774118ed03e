package weather

// EvaluateThreshold applies the hysteresis rule for a new temperature reading
// against a city's threshold record. It mutates only the AlertTriggered field
// and reports whether it changed, so callers can skip redundant writes.
//
// The boundary is inclusive on the normal side: a reading exactly equal to
// TempThreshold always lands (or stays) in the non-alerting state. A nil
// threshold means the city has none configured and is a no-op.
func EvaluateThreshold(th *Threshold, temp float64) bool {
	if th == nil {
		return false
	}

	switch {
	case temp > th.TempThreshold && !th.AlertTriggered:
		th.AlertTriggered = true
		return true
	case temp <= th.TempThreshold && th.AlertTriggered:
		th.AlertTriggered = false
		return true
	default:
		return false
	}
}
