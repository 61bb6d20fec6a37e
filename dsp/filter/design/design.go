package design

import (
	"math"

	"github.com/modemlab/fskmodem/dsp/filter/biquad"
)

// defaultQ is the quality factor of a single maximally flat section.
const defaultQ = 1 / math.Sqrt2

// Lowpass designs an RBJ cookbook lowpass section at freq with quality
// factor q. A non-positive or non-finite q falls back to 1/sqrt(2); a freq
// outside (0, sampleRate/2) yields zero-valued coefficients.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	cw, alpha, ok := rbjTerms(freq, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}
	b1 := 1 - cw
	return normalize(b1/2, b1, b1/2, 1+alpha, -2*cw, 1-alpha)
}

// Highpass designs an RBJ cookbook highpass section at freq with quality
// factor q. A non-positive or non-finite q falls back to 1/sqrt(2); a freq
// outside (0, sampleRate/2) yields zero-valued coefficients.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	cw, alpha, ok := rbjTerms(freq, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}
	b1 := 1 + cw
	return normalize(b1/2, -b1, b1/2, 1+alpha, -2*cw, 1-alpha)
}

// rbjTerms computes the cookbook intermediates cos(w0) and alpha shared by
// the lowpass and highpass designs. ok is false when freq does not lie
// strictly between zero and Nyquist or sampleRate is not positive finite.
func rbjTerms(freq, q, sampleRate float64) (cw, alpha float64, ok bool) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return 0, 0, false
	}
	if !(freq > 0 && freq < sampleRate/2) {
		return 0, 0, false
	}
	if !(q > 0) || math.IsInf(q, 0) {
		q = defaultQ
	}

	w0 := 2 * math.Pi * freq / sampleRate
	return math.Cos(w0), math.Sin(w0) / (2 * q), true
}

// normalize divides every coefficient by a0 so the leading denominator
// coefficient becomes one.
func normalize(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	inv := 1 / a0
	if math.IsNaN(inv) || math.IsInf(inv, 0) {
		return biquad.Coefficients{}
	}
	return biquad.Coefficients{
		B0: b0 * inv,
		B1: b1 * inv,
		B2: b2 * inv,
		A1: a1 * inv,
		A2: a2 * inv,
	}
}
