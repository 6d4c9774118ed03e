package weather

import "testing"

func TestEvaluateThresholdTriggers(t *testing.T) {
	th := &Threshold{City: "Delhi", TempThreshold: 30, AlertTriggered: false}

	if changed := EvaluateThreshold(th, 36); !changed {
		t.Fatal("expected a transition when reading exceeds threshold")
	}
	if !th.AlertTriggered {
		t.Fatal("expected AlertTriggered=true after crossing up")
	}
}

func TestEvaluateThresholdResets(t *testing.T) {
	th := &Threshold{City: "Delhi", TempThreshold: 30, AlertTriggered: true}

	if changed := EvaluateThreshold(th, 25); !changed {
		t.Fatal("expected a transition when reading drops under threshold")
	}
	if th.AlertTriggered {
		t.Fatal("expected AlertTriggered=false after crossing down")
	}
}

// The boundary is inclusive on the normal side: exactly the threshold value
// clears an active alert and never triggers one.
func TestEvaluateThresholdBoundary(t *testing.T) {
	alerting := &Threshold{City: "Delhi", TempThreshold: 30, AlertTriggered: true}
	if changed := EvaluateThreshold(alerting, 30); !changed {
		t.Fatal("expected reading at exactly the threshold to clear the alert")
	}
	if alerting.AlertTriggered {
		t.Fatal("expected AlertTriggered=false at the boundary")
	}

	normal := &Threshold{City: "Delhi", TempThreshold: 30, AlertTriggered: false}
	if changed := EvaluateThreshold(normal, 30); changed {
		t.Fatal("reading at exactly the threshold must not trigger")
	}
}

// No transition means no write: the evaluator reports unchanged state so
// callers can skip redundant persistence.
func TestEvaluateThresholdNoRedundantWrites(t *testing.T) {
	th := &Threshold{City: "Delhi", TempThreshold: 30, AlertTriggered: true}
	if changed := EvaluateThreshold(th, 40); changed {
		t.Fatal("already-alerting state must not change on another hot reading")
	}

	th = &Threshold{City: "Delhi", TempThreshold: 30, AlertTriggered: false}
	if changed := EvaluateThreshold(th, 20); changed {
		t.Fatal("normal state must not change on another cool reading")
	}
}

func TestEvaluateThresholdAbsent(t *testing.T) {
	if changed := EvaluateThreshold(nil, 100); changed {
		t.Fatal("absent threshold must be a no-op")
	}
}
