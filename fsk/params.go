package fsk

import (
	"fmt"
	"math"
)

// ToneParams describes the FSK tone pair by carrier frequency and
// frequency deviation, both in Hz.
type ToneParams struct {
	CarrierHz   float64
	DeviationHz float64
}

// MarkHz returns the tone frequency for bit 1.
func (t ToneParams) MarkHz() float64 { return t.CarrierHz + t.DeviationHz }

// SpaceHz returns the tone frequency for bit 0.
func (t ToneParams) SpaceHz() float64 { return t.CarrierHz - t.DeviationHz }

// DecisionThresholdHz returns the bit decision boundary, halfway between
// the carrier and the mark tone.
func (t ToneParams) DecisionThresholdHz() float64 {
	return t.CarrierHz + t.DeviationHz/2
}

// Validate reports whether the tone pair is usable at the given sample
// rate. A mark frequency at or above Nyquist yields ErrNyquist.
func (t ToneParams) Validate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) {
		return fmt.Errorf("fsk: sample rate must be > 0: %g", sampleRate)
	}
	if t.CarrierHz <= 0 {
		return fmt.Errorf("fsk: carrier frequency must be > 0: %g", t.CarrierHz)
	}
	if t.DeviationHz <= 0 {
		return fmt.Errorf("fsk: deviation must be > 0: %g", t.DeviationHz)
	}
	if t.SpaceHz() <= 0 {
		return fmt.Errorf("fsk: space frequency must be > 0: carrier %g Hz, deviation %g Hz", t.CarrierHz, t.DeviationHz)
	}
	if t.MarkHz() >= sampleRate/2 {
		return fmt.Errorf("%w: mark %g Hz at or above nyquist %g Hz", ErrNyquist, t.MarkHz(), sampleRate/2)
	}

	return nil
}

// BitTiming fixes the symbol clock of the bit stream.
type BitTiming struct {
	BaudRate float64
}

// BitDuration returns the duration of one bit in seconds.
func (b BitTiming) BitDuration() float64 { return 1 / b.BaudRate }

// SamplesPerBit returns the whole number of samples spanned by one bit at
// the given sample rate.
func (b BitTiming) SamplesPerBit(sampleRate float64) (int, error) {
	if b.BaudRate <= 0 || math.IsNaN(b.BaudRate) {
		return 0, fmt.Errorf("fsk: baud rate must be > 0: %g", b.BaudRate)
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) {
		return 0, fmt.Errorf("fsk: sample rate must be > 0: %g", sampleRate)
	}

	spb := int(math.Round(sampleRate / b.BaudRate))
	if spb < 1 {
		return 0, fmt.Errorf("fsk: baud rate %g exceeds sample rate %g: less than one sample per bit", b.BaudRate, sampleRate)
	}

	return spb, nil
}

// FilterSpec describes the band-limiting filter applied before decoding.
type FilterSpec struct {
	LowCutHz   float64
	HighCutHz  float64
	SampleRate float64
	Order      int
}

// Validate reports ErrFilterSpec unless 0 < low < high < sampleRate/2 and
// the order is at least 1.
func (s FilterSpec) Validate() error {
	if s.SampleRate <= 0 || math.IsNaN(s.SampleRate) {
		return fmt.Errorf("%w: sample rate must be > 0: %g", ErrFilterSpec, s.SampleRate)
	}
	if s.Order < 1 {
		return fmt.Errorf("%w: order must be >= 1: %d", ErrFilterSpec, s.Order)
	}
	if s.LowCutHz <= 0 {
		return fmt.Errorf("%w: low cut must be > 0: %g", ErrFilterSpec, s.LowCutHz)
	}
	if s.HighCutHz <= s.LowCutHz {
		return fmt.Errorf("%w: cutoffs must satisfy low < high: %g >= %g", ErrFilterSpec, s.LowCutHz, s.HighCutHz)
	}
	if s.HighCutHz >= s.SampleRate/2 {
		return fmt.Errorf("%w: high cut %g Hz at or above nyquist %g Hz", ErrFilterSpec, s.HighCutHz, s.SampleRate/2)
	}

	return nil
}
