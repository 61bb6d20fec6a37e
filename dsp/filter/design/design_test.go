package design

import (
	"math"
	"testing"

	"github.com/modemlab/fskmodem/dsp/filter/biquad"
)

const cutoffDB = -3.0102999566398120 // 20*log10(1/sqrt(2))

func TestLowpassDCGain(t *testing.T) {
	c := Lowpass(1000, defaultQ, 44100)

	if got := c.MagnitudeSquared(0, 44100); math.Abs(got-1) > 1e-12 {
		t.Fatalf("DC gain mismatch: got %v want 1", got)
	}
	if got := c.MagnitudeDB(22000, 44100); got > -40 {
		t.Fatalf("stopband attenuation too weak: got %v dB", got)
	}
}

func TestLowpassCutoffGain(t *testing.T) {
	// An RBJ lowpass has gain exactly Q at the design frequency.
	c := Lowpass(1000, defaultQ, 44100)

	if got := c.MagnitudeDB(1000, 44100); math.Abs(got-cutoffDB) > 1e-9 {
		t.Fatalf("cutoff gain mismatch: got %v dB want %v dB", got, cutoffDB)
	}
}

func TestHighpassShape(t *testing.T) {
	c := Highpass(1000, defaultQ, 44100)

	if got := c.MagnitudeSquared(0, 44100); got > 1e-12 {
		t.Fatalf("DC leakage: got %v want ~0", got)
	}
	if got := c.MagnitudeDB(1000, 44100); math.Abs(got-cutoffDB) > 1e-9 {
		t.Fatalf("cutoff gain mismatch: got %v dB want %v dB", got, cutoffDB)
	}
	if got := c.MagnitudeDB(20000, 44100); math.Abs(got) > 0.1 {
		t.Fatalf("passband gain mismatch: got %v dB want ~0 dB", got)
	}
}

func TestDesignInvalidParams(t *testing.T) {
	zero := biquad.Coefficients{}

	cases := []struct {
		name             string
		freq, sampleRate float64
	}{
		{"zero freq", 0, 44100},
		{"negative freq", -100, 44100},
		{"at nyquist", 22050, 44100},
		{"above nyquist", 30000, 44100},
		{"zero rate", 1000, 0},
		{"negative rate", 1000, -44100},
	}

	for _, tc := range cases {
		if got := Lowpass(tc.freq, defaultQ, tc.sampleRate); got != zero {
			t.Fatalf("%s: Lowpass got %+v want zero coefficients", tc.name, got)
		}
		if got := Highpass(tc.freq, defaultQ, tc.sampleRate); got != zero {
			t.Fatalf("%s: Highpass got %+v want zero coefficients", tc.name, got)
		}
	}
}

func TestDesignNonPositiveQDefaults(t *testing.T) {
	want := Lowpass(1000, defaultQ, 44100)

	if got := Lowpass(1000, 0, 44100); got != want {
		t.Fatalf("q=0 mismatch: got %+v want %+v", got, want)
	}
	if got := Lowpass(1000, -2, 44100); got != want {
		t.Fatalf("q<0 mismatch: got %+v want %+v", got, want)
	}
}
