package spectrum

import (
	"fmt"
	"math"
)

// AnalyzeBlock measures the power of a single frequency component in input
// using the Goertzel recurrence. The result is equivalent to |X[k]|^2 from
// a DFT of the same block length, without computing the full transform.
//
// frequency must lie in [0, sampleRate/2]. The main lobe spans 4*pi/N for a
// block of N samples, so the block must be long enough to separate
// neighboring tones of interest.
func AnalyzeBlock(input []float64, frequency, sampleRate float64) (float64, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return 0, fmt.Errorf("goertzel: sample rate must be > 0: %v", sampleRate)
	}
	if !(frequency >= 0 && frequency <= sampleRate/2) {
		return 0, fmt.Errorf("goertzel: frequency must lie in [0, %v]: %v", sampleRate/2, frequency)
	}

	coeff := 2 * math.Cos(2*math.Pi*frequency/sampleRate)
	var s0, s1 float64
	for _, x := range input {
		s0, s1 = x+coeff*s0-s1, s0
	}
	return s0*s0 + s1*s1 - coeff*s0*s1, nil
}
