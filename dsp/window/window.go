// Package window generates cosine-sum tapering windows and applies them to
// sample blocks.
package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function. The zero value means "unset" so that
// callers with a Type field can tell an explicit choice from a default.
type Type int

const (
	typeUnset Type = iota
	TypeRectangular
	TypeHann
	TypeHamming
	TypeBlackman
)

// cosineTerms holds the coefficients of w(x) = sum_k c[k]*cos(2*pi*k*x)
// per window type, for x in [0, 1].
var cosineTerms = map[Type][]float64{
	TypeRectangular: {1},
	TypeHann:        {0.5, -0.5},
	TypeHamming:     {0.54, -0.46},
	TypeBlackman:    {0.42, -0.5, 0.08},
}

// String returns the lowercase name of the window type.
func (t Type) String() string {
	switch t {
	case typeUnset:
		return "unset"
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeHamming:
		return "hamming"
	case TypeBlackman:
		return "blackman"
	}
	return "unknown"
}

// Parse resolves a window name to its Type. Unknown names report ok=false.
func Parse(name string) (Type, bool) {
	switch name {
	case "rectangular", "rect":
		return TypeRectangular, true
	case "hann":
		return TypeHann, true
	case "hamming":
		return TypeHamming, true
	case "blackman":
		return TypeBlackman, true
	}
	return TypeRectangular, false
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic selects the periodic form (denominator length) instead of
// the symmetric form (denominator length-1). Periodic windows are the right
// choice for overlapped FFT framing.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length. An unknown type
// falls back to rectangular.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}
	if length == 1 {
		return []float64{1}
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	den := length - 1
	if cfg.periodic {
		den = length
	}
	step := 2 * math.Pi / float64(den)

	terms, ok := cosineTerms[t]
	if !ok {
		terms = cosineTerms[TypeRectangular]
	}

	out := make([]float64, length)
	for i := range out {
		w := 0.0
		for k, c := range terms {
			w += c * math.Cos(float64(k)*step*float64(i))
		}
		out[i] = w
	}
	return out
}

// Apply multiplies buf in place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}
	vecmath.MulBlockInPlace(buf, Generate(t, len(buf), opts...))
}
