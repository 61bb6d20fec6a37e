// Package signal provides time-domain primitives for tone synthesis and
// sample conditioning.
package signal

import (
	"fmt"
	"math"

	"github.com/modemlab/fskmodem/dsp/core"
)

// Sine generates a sine wave starting at phase zero.
func Sine(freqHz, amplitude, sampleRate float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: sine samples must be > 0: %d", samples)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("signal: sine sample rate must be > 0: %f", sampleRate)
	}

	out := make([]float64, samples)
	SineInto(out, freqHz, amplitude, sampleRate)

	return out, nil
}

// SineInto fills dst with a sine wave starting at phase zero. The tone
// restarts at phase zero on every call, which keeps consecutive blocks
// phase-aligned to their own origin rather than to a running oscillator.
func SineInto(dst []float64, freqHz, amplitude, sampleRate float64) {
	if sampleRate <= 0 {
		clear(dst)
		return
	}

	step := 2 * math.Pi * freqHz / sampleRate
	for i := range dst {
		dst[i] = amplitude * math.Sin(step*float64(i))
	}
}

// Clip hard-limits every sample to [-limit, limit] in place.
func Clip(buf []float64, limit float64) {
	if limit < 0 {
		limit = -limit
	}

	for i, v := range buf {
		buf[i] = core.Clamp(v, -limit, limit)
	}
}

// RemoveDC subtracts the arithmetic mean from buf in place and returns the
// removed mean.
func RemoveDC(buf []float64) float64 {
	if len(buf) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range buf {
		sum += v
	}

	mean := sum / float64(len(buf))
	for i := range buf {
		buf[i] -= mean
	}

	return mean
}

// Normalize scales data so its peak magnitude equals targetPeak.
// A silent input is returned unchanged.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak <= 0 {
		return nil, fmt.Errorf("signal: normalize target peak must be > 0: %f", targetPeak)
	}

	peak := 0.0
	for _, v := range data {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	out := make([]float64, len(data))
	if peak == 0 {
		copy(out, data)
		return out, nil
	}

	scale := targetPeak / peak
	for i, v := range data {
		out[i] = v * scale
	}

	return out, nil
}
