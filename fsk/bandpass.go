package fsk

import (
	"github.com/modemlab/fskmodem/dsp/filter/biquad"
	"github.com/modemlab/fskmodem/dsp/filter/design"
)

// GuardedFilterSpec derives band-limiting edges from the tone pair: the
// space frequency minus the guard band up to the mark frequency plus the
// guard band. The guard band absorbs estimation error in the tone pair.
func GuardedFilterSpec(tone ToneParams, sampleRate, guardBandHz float64, order int) FilterSpec {
	return FilterSpec{
		LowCutHz:   tone.SpaceHz() - guardBandHz,
		HighCutHz:  tone.MarkHz() + guardBandHz,
		SampleRate: sampleRate,
		Order:      order,
	}
}

// Bandpass returns a band-limited copy of samples. The band is realized as
// a Butterworth highpass at the low edge cascaded with a lowpass at the
// high edge, applied forward-backward so the result has zero phase shift
// and bit edges stay aligned with the original timeline.
//
// An invalid spec yields ErrFilterSpec; the input is never modified.
func Bandpass(samples []float64, spec FilterSpec) ([]float64, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	sections := design.ButterworthBand(spec.LowCutHz, spec.HighCutHz, spec.Order, spec.SampleRate)
	chain := biquad.NewChain(sections)

	out := append([]float64(nil), samples...)
	chain.ProcessBlockZeroPhase(out)

	return out, nil
}
