package resample

import (
	"errors"
	"math"
)

// ErrInvalidRate indicates a sample rate that is not positive and finite.
var ErrInvalidRate = errors.New("resample: sample rate must be positive and finite")

// Anti-aliasing prototype defaults. 32 taps per polyphase branch under a
// beta-7.5 Kaiser window gives roughly 75 dB of stopband attenuation, and
// the cutoff sits at 92% of the tighter Nyquist to leave a transition band.
const (
	defaultTapsPerPhase = 32
	defaultCutoffScale  = 0.92
	defaultKaiserBeta   = 7.5
	defaultMaxDen       = 4096
)

type config struct {
	tapsPerPhase int
	cutoffScale  float64
	kaiserBeta   float64
	maxDen       int
}

// Option adjusts the anti-aliasing filter design or the ratio approximation.
type Option func(*config)

// WithTapsPerPhase sets the filter length per polyphase branch. Values
// below 1 are ignored.
func WithTapsPerPhase(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.tapsPerPhase = n
		}
	}
}

// WithCutoffScale scales the anti-aliasing cutoff relative to the tighter
// Nyquist frequency. Values outside (0, 1] are ignored.
func WithCutoffScale(v float64) Option {
	return func(cfg *config) {
		if v > 0 && v <= 1 {
			cfg.cutoffScale = v
		}
	}
}

// WithKaiserBeta sets the Kaiser window shape parameter. Negative values
// are ignored.
func WithKaiserBeta(beta float64) Option {
	return func(cfg *config) {
		if beta >= 0 {
			cfg.kaiserBeta = beta
		}
	}
}

// WithMaxDenominator caps the denominator of the rational approximation to
// the requested rate ratio. Values below 1 are ignored.
func WithMaxDenominator(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxDen = n
		}
	}
}

// ToRate converts input from inRate to approximately outRate.
//
// The requested ratio is replaced by the best rational approximation whose
// denominator stays within the configured cap, and the returned actualRate
// is inRate scaled by that fraction. When the fraction reduces to 1:1 the
// input is returned unfiltered as a copy and actualRate equals inRate.
//
// The filter is applied causally over zero-padded edges, so the output
// carries the prototype's group delay and edge transients.
func ToRate(input []float64, inRate, outRate float64, opts ...Option) (out []float64, actualRate float64, err error) {
	if !(inRate > 0) || math.IsInf(inRate, 0) {
		return nil, 0, ErrInvalidRate
	}
	if !(outRate > 0) || math.IsInf(outRate, 0) {
		return nil, 0, ErrInvalidRate
	}

	cfg := config{
		tapsPerPhase: defaultTapsPerPhase,
		cutoffScale:  defaultCutoffScale,
		kaiserBeta:   defaultKaiserBeta,
		maxDen:       defaultMaxDen,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	up, down := ratio(outRate/inRate, cfg.maxDen)
	if up == down {
		return append([]float64(nil), input...), inRate, nil
	}

	actualRate = inRate * float64(up) / float64(down)
	if len(input) == 0 {
		return nil, actualRate, nil
	}

	return applyPolyphase(input, kaiserPhases(up, down, cfg), up, down), actualRate, nil
}

// applyPolyphase evaluates the interpolated, filtered, decimated output in
// one pass. Output sample m lands at input position m*down/up; the branch
// selected by m*down mod up holds exactly the prototype taps that align
// with whole input samples there.
func applyPolyphase(input []float64, phases [][]float64, up, down int) []float64 {
	outLen := (len(input)*up + down - 1) / down
	out := make([]float64, outLen)

	for m := range out {
		step := m * down
		taps := phases[step%up]
		base := step / up

		acc := 0.0
		for k, c := range taps {
			j := base - k
			if j < 0 {
				break
			}
			acc += c * input[j]
		}
		out[m] = acc
	}

	return out
}

// kaiserPhases designs the Kaiser-windowed sinc prototype at the
// interpolated rate and splits it into up polyphase branches. The taps are
// scaled so each branch sums to approximately one, preserving amplitude.
func kaiserPhases(up, down int, cfg config) [][]float64 {
	nTaps := cfg.tapsPerPhase * up
	fc := 0.5 * cfg.cutoffScale / float64(max(up, down))
	center := float64(nTaps-1) / 2

	taps := make([]float64, nTaps)
	sum := 0.0
	for n := range taps {
		v := 2 * fc * sinc(2*fc*(float64(n)-center)) * kaiser(n, nTaps, cfg.kaiserBeta)
		taps[n] = v
		sum += v
	}

	scale := float64(up) / sum
	phases := make([][]float64, up)
	for p := range phases {
		branch := make([]float64, 0, (nTaps-p+up-1)/up)
		for i := p; i < nTaps; i += up {
			branch = append(branch, taps[i]*scale)
		}
		phases[p] = branch
	}

	return phases
}

// ratio approximates v > 0 by a fraction using continued-fraction
// convergents, stopping before the denominator exceeds maxDen. Convergents
// are coprime by construction.
func ratio(v float64, maxDen int) (num, den int) {
	if !(v > 0) || math.IsInf(v, 0) {
		return 1, 1
	}

	a := math.Floor(v)
	h0, k0 := 1.0, 0.0
	h1, k1 := a, 1.0
	frac := v - a

	for frac != 0 {
		x := 1 / frac
		a = math.Floor(x)
		frac = x - a

		h2, k2 := a*h1+h0, a*k1+k0
		if k2 > float64(maxDen) {
			break
		}
		h0, k0, h1, k1 = h1, k1, h2, k2
	}

	if k1 < 1 || h1 < 1 {
		return 1, 1
	}
	return int(h1), int(k1)
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// kaiser evaluates the Kaiser window of length n at tap i.
func kaiser(i, n int, beta float64) float64 {
	if n <= 1 || beta == 0 {
		return 1
	}
	r := 2*float64(i)/float64(n-1) - 1
	return besselI0(beta*math.Sqrt(max(0, 1-r*r))) / besselI0(beta)
}

// besselI0 evaluates the zeroth-order modified Bessel function of the
// first kind by its power series.
func besselI0(x float64) float64 {
	q := x * x / 4
	sum, term := 1.0, 1.0
	for k := 1.0; k <= 64; k++ {
		term *= q / (k * k)
		sum += term
		if term <= sum*1e-16 {
			break
		}
	}
	return sum
}
