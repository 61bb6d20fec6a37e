// Package stft provides short-time spectral magnitude analysis on top of an
// external FFT backend.
//
// An Analyzer slices a signal into frames every hop samples, windows each
// frame, zero-pads it to the FFT size, and collects per-frame one-sided
// magnitude spectra into a Grid. Signals shorter than one full frame are
// analyzed as a single zero-padded frame, so the FFT bin resolution does not
// degrade for short inputs.
package stft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/modemlab/fskmodem/dsp/spectrum"
	"github.com/modemlab/fskmodem/dsp/window"
)

// Analyzer computes short-time magnitude spectra. It reuses internal FFT
// scratch buffers and is not safe for concurrent use; create one Analyzer
// per goroutine.
type Analyzer struct {
	fftSize int
	hop     int
	winType window.Type

	plan    *algofft.Plan[complex128]
	in, out []complex128
	winFull []float64
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithWindow selects the analysis window type. The default is Hann.
func WithWindow(t window.Type) Option {
	return func(a *Analyzer) {
		a.winType = t
	}
}

// New creates an Analyzer with the given FFT size and hop length in samples.
func New(fftSize, hop int, opts ...Option) (*Analyzer, error) {
	if fftSize < 2 {
		return nil, fmt.Errorf("stft: fft size must be >= 2: %d", fftSize)
	}
	if hop <= 0 {
		return nil, fmt.Errorf("stft: hop length must be > 0: %d", hop)
	}

	a := &Analyzer{
		fftSize: fftSize,
		hop:     hop,
		winType: window.TypeHann,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("stft: fft plan: %w", err)
	}

	a.plan = plan
	a.in = make([]complex128, fftSize)
	a.out = make([]complex128, fftSize)
	a.winFull = window.Generate(a.winType, fftSize, window.WithPeriodic())

	return a, nil
}

// FFTSize returns the transform size in samples.
func (a *Analyzer) FFTSize() int { return a.fftSize }

// HopLength returns the frame advance in samples.
func (a *Analyzer) HopLength() int { return a.hop }

// FrameCount returns the number of frames produced for n input samples.
// Frames start every hop samples; every sample belongs to at least one frame.
func (a *Analyzer) FrameCount(n int) int {
	if n <= 0 {
		return 0
	}
	return (n-1)/a.hop + 1
}

// Magnitudes computes the one-sided magnitude spectrum of every frame.
//
// Frames shorter than the FFT size (the tail of the signal, or the whole
// signal when it is shorter than one frame) are windowed at their actual
// length and zero-padded to the FFT size.
func (a *Analyzer) Magnitudes(samples []float64) (*Grid, error) {
	frames := a.FrameCount(len(samples))
	bins := spectrum.HalfBinCount(a.fftSize)

	g := &Grid{frames: frames, bins: bins}
	if frames == 0 {
		return g, nil
	}

	g.data = make([]float64, frames*bins)

	for f := range frames {
		start := f * a.hop
		end := start + a.fftSize
		if end > len(samples) {
			end = len(samples)
		}

		frame := samples[start:end]
		coeffs := a.winFull
		if len(frame) != a.fftSize {
			coeffs = window.Generate(a.winType, len(frame), window.WithPeriodic())
		}

		clear(a.in)
		for i, v := range frame {
			a.in[i] = complex(v*coeffs[i], 0)
		}

		if err := a.plan.Forward(a.out, a.in); err != nil {
			return nil, fmt.Errorf("stft: frame %d: %w", f, err)
		}

		spectrum.MagnitudeInto(g.data[f*bins:(f+1)*bins], a.out[:bins])
	}

	return g, nil
}

// Grid holds per-frame one-sided magnitude spectra in row-major layout.
type Grid struct {
	frames int
	bins   int
	data   []float64
}

// FrameCount returns the number of frames in the grid.
func (g *Grid) FrameCount() int { return g.frames }

// BinCount returns the number of spectrum bins per frame.
func (g *Grid) BinCount() int { return g.bins }

// Frame returns the magnitude spectrum of frame f as a shared slice view.
func (g *Grid) Frame(f int) []float64 {
	if f < 0 || f >= g.frames {
		return nil
	}
	return g.data[f*g.bins : (f+1)*g.bins]
}

// Average returns the per-bin mean magnitude across all frames.
// An empty grid returns nil.
func (g *Grid) Average() []float64 {
	if g.frames == 0 || g.bins == 0 {
		return nil
	}

	out := make([]float64, g.bins)
	for f := range g.frames {
		frame := g.Frame(f)
		for i, v := range frame {
			out[i] += v
		}
	}

	inv := 1 / float64(g.frames)
	for i := range out {
		out[i] *= inv
	}

	return out
}
