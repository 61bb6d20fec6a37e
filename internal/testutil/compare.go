package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails the test when got and want differ in length
// or when any element pair is further apart than tol. With tol zero the
// slices must match exactly.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("slice length mismatch: got %d want %d", len(got), len(want))
	}
	worst, worstDiff := -1, 0.0
	for i := range got {
		if d := math.Abs(got[i] - want[i]); d > worstDiff {
			worst, worstDiff = i, d
		}
	}
	if worstDiff > tol {
		t.Fatalf("slices differ at index %d: got %v want %v (|diff| %v exceeds tol %v)",
			worst, got[worst], want[worst], worstDiff, tol)
	}
}
