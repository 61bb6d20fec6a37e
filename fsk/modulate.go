package fsk

import (
	"fmt"

	"github.com/modemlab/fskmodem/dsp/signal"
)

// Modulate synthesizes an FSK waveform from a bit string. Each bit becomes
// a contiguous block of SamplesPerBit sine samples at the mark frequency
// (bit '1') or space frequency (bit '0'), in input order.
//
// Every block restarts at phase zero, so the waveform carries phase
// discontinuities at bit boundaries. The output is hard-clipped to ±1.0;
// quantization to an integer sample format is left to the audio sink.
func Modulate(bits string, tone ToneParams, timing BitTiming, sampleRate, amplitude float64) ([]float64, error) {
	if err := validateBits(bits); err != nil {
		return nil, err
	}
	if amplitude <= 0 {
		return nil, fmt.Errorf("fsk: amplitude must be > 0: %g", amplitude)
	}
	if tone.CarrierHz <= 0 || tone.DeviationHz <= 0 || tone.SpaceHz() <= 0 {
		return nil, fmt.Errorf("fsk: tone frequencies must be positive: carrier %g Hz, deviation %g Hz", tone.CarrierHz, tone.DeviationHz)
	}

	spb, err := timing.SamplesPerBit(sampleRate)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(bits)*spb)
	for i, r := range bits {
		freq := tone.SpaceHz()
		if r == '1' {
			freq = tone.MarkHz()
		}

		signal.SineInto(out[i*spb:(i+1)*spb], freq, amplitude, sampleRate)
	}

	signal.Clip(out, 1)

	return out, nil
}

func validateBits(bits string) error {
	if len(bits) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidBits)
	}

	for i, r := range bits {
		if r != '0' && r != '1' {
			return fmt.Errorf("%w: %q at position %d", ErrInvalidBits, r, i)
		}
	}

	return nil
}
