package biquad

import (
	"math"
	"math/cmplx"
)

// Coefficients describes one second-order section by its transfer function
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
//
// with the leading denominator coefficient already normalized away.
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Response evaluates H at freqHz for a signal sampled at sampleRate.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	z := cmplx.Exp(complex(0, -2*math.Pi*freqHz/sampleRate))
	num := (complex(c.B2, 0)*z+complex(c.B1, 0))*z + complex(c.B0, 0)
	den := (complex(c.A2, 0)*z+complex(c.A1, 0))*z + 1
	return num / den
}

// MagnitudeSquared returns |H(f)|^2.
func (c Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	h := c.Response(freqHz, sampleRate)
	return real(h)*real(h) + imag(h)*imag(h)
}

// MagnitudeDB returns the magnitude response in decibels.
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freqHz, sampleRate))
}

// Chain cascades second-order sections in series, each with its own
// Direct Form II Transposed delay state:
//
//	y[n] = B0*x[n] + s1
//	s1   = B1*x[n] - A1*y[n] + s2
//	s2   = B2*x[n] - A2*y[n]
type Chain struct {
	coeffs []Coefficients
	s1, s2 []float64
}

// NewChain builds a cascade from the given sections with zeroed state.
func NewChain(coeffs []Coefficients) *Chain {
	n := len(coeffs)
	return &Chain{
		coeffs: append([]Coefficients(nil), coeffs...),
		s1:     make([]float64, n),
		s2:     make([]float64, n),
	}
}

// NumSections returns the number of second-order sections in the cascade.
func (c *Chain) NumSections() int { return len(c.coeffs) }

// Reset clears the delay state of every section.
func (c *Chain) Reset() {
	clear(c.s1)
	clear(c.s2)
}

// ProcessBlock filters buf in place through the full cascade, carrying the
// delay state across calls so consecutive blocks form one continuous stream.
func (c *Chain) ProcessBlock(buf []float64) {
	for k, cf := range c.coeffs {
		s1, s2 := c.s1[k], c.s2[k]
		for i, x := range buf {
			y := cf.B0*x + s1
			s1 = cf.B1*x - cf.A1*y + s2
			s2 = cf.B2*x - cf.A2*y
			buf[i] = y
		}
		c.s1[k], c.s2[k] = s1, s2
	}
}

// Response evaluates the cascade's frequency response, the product of the
// per-section responses.
func (c *Chain) Response(freqHz, sampleRate float64) complex128 {
	h := complex(1, 0)
	for _, cf := range c.coeffs {
		h *= cf.Response(freqHz, sampleRate)
	}
	return h
}

// MagnitudeDB returns the cascade's magnitude response in decibels.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}
