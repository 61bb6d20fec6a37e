package fsk

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/modemlab/fskmodem/dsp/spectrum"
	"github.com/modemlab/fskmodem/dsp/stft"
	"github.com/modemlab/fskmodem/dsp/window"
)

const (
	defaultWindowSize = 2048
	defaultHopLength  = 512
)

// DemodulatorConfig holds bit recovery parameters.
type DemodulatorConfig struct {
	// WindowSize is the short-time analysis FFT size. Default 2048.
	WindowSize int

	// HopLength is the short-time frame advance in samples. Default 512.
	HopLength int

	// WindowType is the short-time analysis window. Default Hann.
	WindowType window.Type

	// Workers bounds the number of goroutines decoding bit windows,
	// further capped by the window count and runtime.NumCPU. Values
	// below 2 select the serial path; parallel and serial output are
	// identical.
	Workers int

	// Discriminator decides bits by comparing Goertzel power at the mark
	// and space frequencies instead of locating the dominant bin of the
	// averaged short-time spectrum.
	Discriminator bool
}

// Demodulator recovers a bit string from an FSK waveform by per-bit
// spectral analysis. Each decision is independent of its neighbors; no
// run-length smoothing or clock resynchronization is attempted.
type Demodulator struct {
	cfg DemodulatorConfig
}

// NewDemodulator creates a Demodulator with defaults applied for
// zero-valued config fields.
func NewDemodulator(cfg DemodulatorConfig) *Demodulator {
	return &Demodulator{cfg: normalizeDemodulatorConfig(cfg)}
}

// Demodulate is a one-shot bit recovery with the given config.
func Demodulate(samples []float64, tone ToneParams, timing BitTiming, sampleRate float64, cfg DemodulatorConfig) (string, error) {
	return NewDemodulator(cfg).Demodulate(samples, tone, timing, sampleRate)
}

// Demodulate slices samples into consecutive SamplesPerBit windows and
// emits one bit per full window: '1' when the window's dominant frequency
// exceeds the midpoint between carrier and mark, '0' otherwise. A short
// or empty final window is skipped, not decoded.
//
// Window decisions are independent, so they run on a bounded worker pool
// when Workers > 1; output order always matches window order.
func (d *Demodulator) Demodulate(samples []float64, tone ToneParams, timing BitTiming, sampleRate float64) (string, error) {
	if err := tone.Validate(sampleRate); err != nil {
		return "", err
	}

	spb, err := timing.SamplesPerBit(sampleRate)
	if err != nil {
		return "", err
	}

	windows := len(samples) / spb
	if windows == 0 {
		return "", nil
	}

	bits := make([]byte, windows)

	workers := min(d.cfg.Workers, windows, runtime.NumCPU())

	if workers < 2 {
		analyzer, err := d.newAnalyzer()
		if err != nil {
			return "", err
		}

		for w := 0; w < windows; w++ {
			bit, err := d.decideWindow(analyzer, samples[w*spb:(w+1)*spb], tone, sampleRate)
			if err != nil {
				return "", err
			}
			bits[w] = bit
		}

		return string(bits), nil
	}

	errs := make([]error, workers)

	var wg sync.WaitGroup
	for worker := 0; worker < workers; worker++ {
		wg.Add(1)

		go func(worker int) {
			defer wg.Done()

			analyzer, err := d.newAnalyzer()
			if err != nil {
				errs[worker] = err
				return
			}

			for w := worker; w < windows; w += workers {
				bit, err := d.decideWindow(analyzer, samples[w*spb:(w+1)*spb], tone, sampleRate)
				if err != nil {
					errs[worker] = err
					return
				}
				bits[w] = bit
			}
		}(worker)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return "", err
		}
	}

	return string(bits), nil
}

// newAnalyzer builds the per-goroutine short-time analyzer. The Goertzel
// discriminator path needs none.
func (d *Demodulator) newAnalyzer() (*stft.Analyzer, error) {
	if d.cfg.Discriminator {
		return nil, nil
	}

	analyzer, err := stft.New(d.cfg.WindowSize, d.cfg.HopLength, stft.WithWindow(d.cfg.WindowType))
	if err != nil {
		return nil, fmt.Errorf("fsk: short-time analyzer: %w", err)
	}

	return analyzer, nil
}

func (d *Demodulator) decideWindow(analyzer *stft.Analyzer, win []float64, tone ToneParams, sampleRate float64) (byte, error) {
	if d.cfg.Discriminator {
		markPower, err := spectrum.AnalyzeBlock(win, tone.MarkHz(), sampleRate)
		if err != nil {
			return 0, fmt.Errorf("fsk: mark discriminator: %w", err)
		}

		spacePower, err := spectrum.AnalyzeBlock(win, tone.SpaceHz(), sampleRate)
		if err != nil {
			return 0, fmt.Errorf("fsk: space discriminator: %w", err)
		}

		if markPower > spacePower {
			return '1', nil
		}
		return '0', nil
	}

	grid, err := analyzer.Magnitudes(win)
	if err != nil {
		return 0, fmt.Errorf("fsk: short-time analysis: %w", err)
	}

	bin := spectrum.DominantBin(grid.Average())
	if bin < 0 {
		return '0', nil
	}

	if spectrum.BinFrequency(bin, analyzer.FFTSize(), sampleRate) > tone.DecisionThresholdHz() {
		return '1', nil
	}
	return '0', nil
}

func normalizeDemodulatorConfig(cfg DemodulatorConfig) DemodulatorConfig {
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = defaultWindowSize
	}

	if cfg.HopLength <= 0 {
		cfg.HopLength = defaultHopLength
	}

	if cfg.WindowType == 0 {
		cfg.WindowType = window.TypeHann
	}

	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	return cfg
}
