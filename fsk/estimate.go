package fsk

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/modemlab/fskmodem/dsp/core"
	"github.com/modemlab/fskmodem/dsp/signal"
	"github.com/modemlab/fskmodem/dsp/spectrum"
	"github.com/modemlab/fskmodem/dsp/window"
)

const (
	defaultPeakCount     = 10
	defaultNoiseQuantile = 0.25

	// Default minimum prominence: whichever is larger of 10x the spectrum
	// noise floor and 0.1% of the strongest bin.
	noiseProminenceFactor   = 10.0
	peakProminenceFloorFrac = 0.001
)

// EstimatorConfig holds carrier estimation parameters.
type EstimatorConfig struct {
	// PeakCount caps the number of accepted peaks. Default 10.
	PeakCount int

	// MinSeparationHz is the minimum spacing between accepted peaks.
	// When zero, the FFT bin width sampleRate/len(samples) is used.
	MinSeparationHz float64

	// MinProminence rejects local maxima below this height over their
	// surroundings. When zero, a noise-floor-relative default applies.
	MinProminence float64

	// WindowType is the tapering window applied before the FFT.
	// Default Hamming.
	WindowType window.Type

	// AllBins ranks every spectrum bin by magnitude instead of detecting
	// local maxima, matching naive top-k peak picking. Prominence
	// filtering is skipped in this mode.
	AllBins bool
}

// Report is the structured result of a carrier estimation pass. The peak
// list and spectrum statistics are populated even when estimation fails
// with ErrInsufficientPeaks, for diagnostics.
type Report struct {
	// Peaks holds the accepted spectral peaks in descending magnitude order.
	Peaks []spectrum.Peak

	CarrierHz   float64
	DeviationHz float64
	MarkHz      float64
	SpaceHz     float64

	// BinWidthHz is the frequency resolution of the analysis FFT.
	BinWidthHz float64
	// NoiseFloor is the quantile magnitude used to anchor the default
	// prominence threshold.
	NoiseFloor float64

	CentroidHz float64
	Flatness   float64
}

// Tone returns the estimated tone pair.
func (r *Report) Tone() ToneParams {
	return ToneParams{CarrierHz: r.CarrierHz, DeviationHz: r.DeviationHz}
}

// Estimator recovers FSK tone parameters from the spectrum of a sample
// buffer.
type Estimator struct {
	cfg EstimatorConfig
}

// NewEstimator creates an Estimator with defaults applied for zero-valued
// config fields.
func NewEstimator(cfg EstimatorConfig) *Estimator {
	return &Estimator{cfg: normalizeEstimatorConfig(cfg)}
}

// Estimate is a one-shot estimation with the given config.
func Estimate(samples []float64, sampleRate float64, cfg EstimatorConfig) (*Report, error) {
	return NewEstimator(cfg).Estimate(samples, sampleRate)
}

// Estimate surveys the spectrum of samples and derives carrier frequency
// and deviation from the two strongest accepted peaks:
// carrier = (f1+f2)/2, deviation = |f1-f2|/2.
//
// The pipeline is: remove DC, apply the tapering window, zero-pad to a
// power of two, FFT, then pick peaks with prominence filtering and greedy
// minimum-separation dedup in descending magnitude order.
//
// When fewer than two peaks survive, the returned error is
// ErrInsufficientPeaks and the Report still carries the surviving peaks
// and spectrum statistics.
func (e *Estimator) Estimate(samples []float64, sampleRate float64) (*Report, error) {
	if len(samples) < 2 {
		return nil, fmt.Errorf("fsk: estimate requires at least 2 samples: %d", len(samples))
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) {
		return nil, fmt.Errorf("fsk: sample rate must be > 0: %g", sampleRate)
	}

	buf := append([]float64(nil), samples...)
	signal.RemoveDC(buf)
	window.Apply(e.cfg.WindowType, buf)

	fftSize := core.NextPowerOfTwo(len(buf))

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("fsk: fft plan: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, v := range buf {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("fsk: fft: %w", err)
	}

	bins := spectrum.HalfBinCount(fftSize)
	mags := spectrum.Magnitude(out[:bins])
	freqs := spectrum.FrequencyBins(sampleRate, fftSize)

	noise := spectrum.NoiseFloor(mags, defaultNoiseQuantile)

	minProm := e.cfg.MinProminence
	if minProm <= 0 {
		var maxMag float64
		for _, m := range mags {
			if m > maxMag {
				maxMag = m
			}
		}
		minProm = math.Max(noiseProminenceFactor*noise, peakProminenceFloorFrac*maxMag)
	}

	sep := e.cfg.MinSeparationHz
	if sep <= 0 {
		sep = sampleRate / float64(len(samples))
	}

	peaks, err := spectrum.FindPeaks(mags, freqs, spectrum.PeakOptions{
		MinProminence:   minProm,
		MinSeparationHz: sep,
		MaxPeaks:        e.cfg.PeakCount,
		AllBins:         e.cfg.AllBins,
	})
	if err != nil {
		return nil, fmt.Errorf("fsk: peak detection: %w", err)
	}

	report := &Report{
		Peaks:      peaks,
		BinWidthHz: sampleRate / float64(fftSize),
		NoiseFloor: noise,
		CentroidHz: spectrum.Centroid(mags, sampleRate),
		Flatness:   spectrum.Flatness(mags),
	}

	if len(peaks) < 2 {
		return report, fmt.Errorf("%w: found %d, need 2", ErrInsufficientPeaks, len(peaks))
	}

	f1, f2 := peaks[0].FrequencyHz, peaks[1].FrequencyHz
	report.CarrierHz = (f1 + f2) / 2
	report.DeviationHz = math.Abs(f1-f2) / 2
	report.MarkHz = report.CarrierHz + report.DeviationHz
	report.SpaceHz = report.CarrierHz - report.DeviationHz

	return report, nil
}

func normalizeEstimatorConfig(cfg EstimatorConfig) EstimatorConfig {
	if cfg.PeakCount <= 0 {
		cfg.PeakCount = defaultPeakCount
	}

	if cfg.WindowType == 0 {
		cfg.WindowType = window.TypeHamming
	}

	return cfg
}
