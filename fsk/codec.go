package fsk

import (
	"fmt"
	"time"

	"github.com/modemlab/fskmodem/dsp/resample"
)

const (
	defaultGuardBandHz = 200.0
	defaultFilterOrder = 5
	defaultAmplitude   = 1.0
)

type codecConfig struct {
	tone        *ToneParams
	amplitude   float64
	guardBandHz float64
	filterOrder int
	targetRate  float64

	demod     DemodulatorConfig
	estimator EstimatorConfig
}

// CodecOption configures a Codec.
type CodecOption func(*codecConfig)

// WithTone fixes the tone pair instead of estimating it from the input.
// Required for encoding.
func WithTone(t ToneParams) CodecOption {
	return func(cfg *codecConfig) {
		tone := t
		cfg.tone = &tone
	}
}

// WithAmplitude sets the encode amplitude. Default 1.0.
func WithAmplitude(a float64) CodecOption {
	return func(cfg *codecConfig) {
		if a > 0 {
			cfg.amplitude = a
		}
	}
}

// WithGuardBand sets the band edge margin around the mark/space pair in Hz.
// Default 200.
func WithGuardBand(hz float64) CodecOption {
	return func(cfg *codecConfig) {
		if hz >= 0 {
			cfg.guardBandHz = hz
		}
	}
}

// WithFilterOrder sets the Butterworth order of each band edge. Default 5.
func WithFilterOrder(n int) CodecOption {
	return func(cfg *codecConfig) {
		if n >= 1 {
			cfg.filterOrder = n
		}
	}
}

// WithWindowSize sets the demodulator short-time FFT size. Default 2048.
func WithWindowSize(n int) CodecOption {
	return func(cfg *codecConfig) {
		if n > 0 {
			cfg.demod.WindowSize = n
		}
	}
}

// WithHopLength sets the demodulator short-time hop. Default 512.
func WithHopLength(n int) CodecOption {
	return func(cfg *codecConfig) {
		if n > 0 {
			cfg.demod.HopLength = n
		}
	}
}

// WithTargetSampleRate resamples decode input to approximately the given
// rate before any analysis. Off by default; decoding never resamples
// unless asked to.
func WithTargetSampleRate(rate float64) CodecOption {
	return func(cfg *codecConfig) {
		if rate > 0 {
			cfg.targetRate = rate
		}
	}
}

// WithParallel bounds the demodulator worker pool. Values below 2 keep
// the serial path.
func WithParallel(workers int) CodecOption {
	return func(cfg *codecConfig) {
		if workers > 0 {
			cfg.demod.Workers = workers
		}
	}
}

// WithDiscriminator switches bit decisions to the Goertzel mark/space
// power comparison.
func WithDiscriminator() CodecOption {
	return func(cfg *codecConfig) {
		cfg.demod.Discriminator = true
	}
}

// WithEstimator overrides carrier estimation parameters.
func WithEstimator(estimator EstimatorConfig) CodecOption {
	return func(cfg *codecConfig) {
		cfg.estimator = estimator
	}
}

// Codec orchestrates the encode and decode paths for one symbol clock.
type Codec struct {
	timing BitTiming
	cfg    codecConfig
}

// NewCodec creates a codec for the given bit timing.
func NewCodec(timing BitTiming, opts ...CodecOption) (*Codec, error) {
	if timing.BaudRate <= 0 {
		return nil, fmt.Errorf("fsk: baud rate must be > 0: %g", timing.BaudRate)
	}

	cfg := codecConfig{
		amplitude:   defaultAmplitude,
		guardBandHz: defaultGuardBandHz,
		filterOrder: defaultFilterOrder,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Codec{timing: timing, cfg: cfg}, nil
}

// Encode modulates bits at the configured tone pair, which must have been
// supplied via WithTone and be valid for the sample rate.
func (c *Codec) Encode(bits string, sampleRate float64) ([]float64, error) {
	if c.cfg.tone == nil {
		return nil, fmt.Errorf("fsk: encoding requires a tone pair (WithTone)")
	}
	if err := c.cfg.tone.Validate(sampleRate); err != nil {
		return nil, err
	}

	return Modulate(bits, *c.cfg.tone, c.timing, sampleRate, c.cfg.amplitude)
}

// DecodeResult carries the recovered bits and the parameters the decode
// path actually used.
type DecodeResult struct {
	Bits string

	// Tone is the pair used for filtering and bit decisions.
	Tone ToneParams
	// Estimated is true when Tone came from spectral estimation rather
	// than WithTone.
	Estimated bool
	// Report is the estimation report, nil when the tone was explicit.
	Report *Report

	// SampleRate is the analysis rate, after optional resampling.
	SampleRate    float64
	SamplesPerBit int
	// Duration is the recovered payload duration: bit count over baud rate.
	Duration time.Duration
}

// Decode recovers a bit string from samples.
//
// The path is: optional resampling to the configured target rate, tone
// estimation unless a pair was fixed with WithTone, Nyquist validation,
// guarded band-limiting, then per-bit demodulation. Any stage failure
// aborts the invocation with no partial result.
func (c *Codec) Decode(samples []float64, sampleRate float64) (*DecodeResult, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("fsk: sample rate must be > 0: %g", sampleRate)
	}

	work := samples
	rate := sampleRate

	if c.cfg.targetRate > 0 && c.cfg.targetRate != sampleRate {
		resampled, actual, err := resample.ToRate(samples, sampleRate, c.cfg.targetRate)
		if err != nil {
			return nil, fmt.Errorf("fsk: resample: %w", err)
		}
		work, rate = resampled, actual
	}

	result := &DecodeResult{SampleRate: rate}

	var tone ToneParams
	if c.cfg.tone != nil {
		tone = *c.cfg.tone
	} else {
		report, err := Estimate(work, rate, c.cfg.estimator)
		if err != nil {
			return nil, err
		}

		result.Report = report
		result.Estimated = true
		tone = report.Tone()
	}

	if err := tone.Validate(rate); err != nil {
		return nil, err
	}
	result.Tone = tone

	spb, err := c.timing.SamplesPerBit(rate)
	if err != nil {
		return nil, err
	}
	result.SamplesPerBit = spb

	filtered, err := Bandpass(work, GuardedFilterSpec(tone, rate, c.cfg.guardBandHz, c.cfg.filterOrder))
	if err != nil {
		return nil, err
	}

	bits, err := NewDemodulator(c.cfg.demod).Demodulate(filtered, tone, c.timing, rate)
	if err != nil {
		return nil, err
	}

	result.Bits = bits
	result.Duration = time.Duration(float64(len(bits)) / c.timing.BaudRate * float64(time.Second))

	return result, nil
}
