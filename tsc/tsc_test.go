package tsc

import "testing"

// resetForTest clears the published factor so each test calibrates fresh.
// Package-private test helper; tsc has no public reset because production
// code calibrates exactly once at startup.
func resetForTest() {
	factorBits = 0
}

func TestCalibrateSetsFactor(t *testing.T) {
	resetForTest()
	if Calibrated() {
		t.Fatalf("expected uncalibrated before Calibrate")
	}
	Calibrate()
	if !Calibrated() {
		t.Fatalf("expected calibrated after Calibrate")
	}
}

func TestToNsPanicsBeforeCalibrate(t *testing.T) {
	resetForTest()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic calling ToNs before Calibrate")
		}
	}()
	ToNs(1000)
}

func TestCalibrateIdempotent(t *testing.T) {
	resetForTest()
	Calibrate()
	first := factorBits
	Calibrate()
	if factorBits != first {
		t.Fatalf("expected second Calibrate to be a no-op")
	}
}
