package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t testing.TB, want, got []float64, eps float64) {
	t.Helper()
	require.Len(t, got, len(want), "length mismatch")
	for i := range got {
		require.InDeltaf(t, want[i], got[i], eps, "index %d", i)
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()
	for i, v := range data {
		require.Falsef(t, math.IsNaN(v) || math.IsInf(v, 0), "index %d: non-finite value %v", i, v)
	}
}
