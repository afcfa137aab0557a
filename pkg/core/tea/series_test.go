package tea

import (
	"math"
	"testing"
)

func TestGeometricSum(t *testing.T) {
	// n = 0 is always 1 regardless of rate.
	if got := geometricSum(0.5, 0); got != 1 {
		t.Errorf("geometricSum(0.5, 0) = %f, want 1", got)
	}
	// 1 + 0.5 + 0.25 = 1.75
	if got := geometricSum(0.5, 2); math.Abs(got-1.75) > 1e-12 {
		t.Errorf("geometricSum(0.5, 2) = %f, want 1.75", got)
	}
	// Rate 1 counts the passes.
	if got := geometricSum(1, 3); got != 4 {
		t.Errorf("geometricSum(1, 3) = %f, want 4", got)
	}
}

func TestPowi(t *testing.T) {
	if got := powi(0.5, 0); got != 1 {
		t.Errorf("powi(0.5, 0) = %f, want 1", got)
	}
	if got := powi(0.5, 3); math.Abs(got-0.125) > 1e-12 {
		t.Errorf("powi(0.5, 3) = %f, want 0.125", got)
	}
}
