// Package testutil provides deterministic signal generators and comparison
// helpers shared by the dsp and fsk test suites. Every generator is a pure
// function of its arguments, so tests that assert on spectral content or
// noise-floor levels stay reproducible across runs.
package testutil

import (
	"math"
	"math/rand"
)

// Sine returns length samples of a zero-phase sine at freqHz,
// sampled at sampleRate and scaled by amplitude.
func Sine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	omega := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(omega*float64(i))
	}
	return out
}

// TwoTone returns the sum of two zero-phase sines. It is the workhorse input
// for peak-separation tests: two known frequencies with known amplitudes.
func TwoTone(freq1, amp1, freq2, amp2, sampleRate float64, length int) []float64 {
	out := make([]float64, length)
	w1 := 2 * math.Pi * freq1 / sampleRate
	w2 := 2 * math.Pi * freq2 / sampleRate
	for i := range out {
		n := float64(i)
		out[i] = amp1*math.Sin(w1*n) + amp2*math.Sin(w2*n)
	}
	return out
}

// Noise returns uniform white noise in (-amplitude, amplitude).
// The same seed always produces the same sequence.
func Noise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, length)
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse returns a slice that is zero everywhere except for a single unit
// sample at pos. A pos outside [0, length) yields an all-zero slice.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if 0 <= pos && pos < length {
		out[pos] = 1
	}
	return out
}

// Ones returns n samples all equal to one.
func Ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}
