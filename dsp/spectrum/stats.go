package spectrum

import "math"

// Centroid returns the spectral centroid in Hz of a one-sided magnitude
// spectrum (length fftSize/2+1).
func Centroid(magnitude []float64, sampleRate float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	sum := 0.0
	weighted := 0.0
	fftSize := 2 * (n - 1)

	for i, v := range magnitude {
		sum += v
		weighted += BinFrequency(i, fftSize, sampleRate) * v
	}

	if sum == 0 {
		return 0
	}

	return weighted / sum
}

// Flatness returns the spectral flatness (Wiener entropy) of a one-sided
// magnitude spectrum, in 0..1. The DC bin is excluded. Values near 1 indicate
// noise-like spectra; values near 0 indicate tonal spectra.
func Flatness(magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	bins := n - 1
	sumLin := 0.0
	sumLog := 0.0
	hasZero := false

	for i := 1; i < n; i++ {
		v := magnitude[i]
		sumLin += v
		if v > 0 {
			sumLog += math.Log(v)
		} else {
			hasZero = true
		}
	}

	meanLin := sumLin / float64(bins)
	if meanLin == 0 || hasZero {
		return 0
	}

	geoMean := math.Exp(sumLog / float64(bins))

	return geoMean / meanLin
}
