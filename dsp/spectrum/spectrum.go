package spectrum

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// magScratch pools the split real/imaginary planes handed to the vector
// backend, so steady-state magnitude extraction allocates nothing beyond
// the caller's output slice.
var magScratch = sync.Pool{
	New: func() any { return new([]float64) },
}

// MagnitudeInto computes |X[k]| for every bin of in into dst. Both slices
// must have the same length.
func MagnitudeInto(dst []float64, in []complex128) {
	n := len(in)
	p := magScratch.Get().(*[]float64)
	if cap(*p) < 2*n {
		*p = make([]float64, 2*n)
	}
	re, im := (*p)[:n], (*p)[n:2*n]
	for i, c := range in {
		re[i], im[i] = real(c), imag(c)
	}

	vecmath.Magnitude(dst, re, im)
	magScratch.Put(p)
}

// Magnitude returns |X[k]| for each complex spectrum bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	MagnitudeInto(out, in)
	return out
}

// HalfBinCount returns the number of non-negative-frequency bins for an FFT
// of the given size: fftSize/2 + 1.
func HalfBinCount(fftSize int) int {
	if fftSize <= 0 {
		return 0
	}
	return fftSize/2 + 1
}

// BinFrequency returns the frequency in Hz of one bin of an fftSize-point
// transform.
func BinFrequency(bin, fftSize int, sampleRate float64) float64 {
	if fftSize <= 0 {
		return 0
	}
	return float64(bin) * sampleRate / float64(fftSize)
}

// FrequencyBins returns the center frequency in Hz of every one-sided bin,
// aligned index-for-index with a magnitude slice of length fftSize/2+1.
func FrequencyBins(sampleRate float64, fftSize int) []float64 {
	n := HalfBinCount(fftSize)
	if n == 0 || sampleRate <= 0 {
		return nil
	}

	out := make([]float64, n)
	step := sampleRate / float64(fftSize)
	for i := range out {
		out[i] = float64(i) * step
	}
	return out
}

// DominantBin returns the index of the largest magnitude, resolving ties to
// the lowest index. An empty slice returns -1.
func DominantBin(mags []float64) int {
	best, bestVal := -1, math.Inf(-1)
	for i, v := range mags {
		if v > bestVal {
			best, bestVal = i, v
		}
	}
	return best
}
