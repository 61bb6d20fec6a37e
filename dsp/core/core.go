// Package core holds the small numeric helpers shared across the dsp
// packages.
package core

import "math/bits"

// Clamp limits v to the inclusive range [lo, hi]. An inverted range is
// reordered before clamping.
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return min(max(v, lo), hi)
}

// NextPowerOfTwo returns the smallest power of two that is >= n, never
// less than 1.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
