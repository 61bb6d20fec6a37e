package signal

import (
	"math"
	"testing"
)

func TestSinePhaseZero(t *testing.T) {
	out, err := Sine(1000, 1.0, 44100, 64)
	if err != nil {
		t.Fatalf("sine failed: %v", err)
	}

	if out[0] != 0 {
		t.Fatalf("expected phase-zero start, got %v", out[0])
	}

	// Quarter period of 1 kHz at 44.1 kHz is ~11 samples; value must be
	// close to the positive crest there.
	idx := int(math.Round(44100.0 / 1000.0 / 4.0))
	if out[idx] < 0.95 {
		t.Fatalf("expected crest near quarter period, got %v", out[idx])
	}
}

func TestSineValidation(t *testing.T) {
	if _, err := Sine(1000, 1, 44100, 0); err == nil {
		t.Fatalf("expected error for zero samples")
	}

	if _, err := Sine(1000, 1, 0, 16); err == nil {
		t.Fatalf("expected error for zero sample rate")
	}
}

func TestSineIntoMatchesSine(t *testing.T) {
	want, err := Sine(2500, 0.8, 48000, 128)
	if err != nil {
		t.Fatalf("sine failed: %v", err)
	}

	got := make([]float64, 128)
	SineInto(got, 2500, 0.8, 48000)

	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("index %d mismatch: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestClip(t *testing.T) {
	buf := []float64{-2, -1, -0.5, 0, 0.5, 1, 2}
	Clip(buf, 1)

	want := []float64{-1, -1, -0.5, 0, 0.5, 1, 1}
	for i := range buf {
		if buf[i] != want[i] {
			t.Fatalf("index %d mismatch: got %v want %v", i, buf[i], want[i])
		}
	}
}

func TestClipNegativeLimit(t *testing.T) {
	buf := []float64{-3, 3}
	Clip(buf, -1)

	if buf[0] != -1 || buf[1] != 1 {
		t.Fatalf("negative limit not folded: got %v", buf)
	}
}

func TestRemoveDC(t *testing.T) {
	buf := []float64{1.5, 2.5, 3.5, 4.5}

	mean := RemoveDC(buf)
	if math.Abs(mean-3) > 1e-12 {
		t.Fatalf("mean mismatch: got %v want 3", mean)
	}

	sum := 0.0
	for _, v := range buf {
		sum += v
	}
	if math.Abs(sum) > 1e-12 {
		t.Fatalf("expected zero-mean output, residual sum %v", sum)
	}

	if got := RemoveDC(nil); got != 0 {
		t.Fatalf("empty input mean mismatch: got %v", got)
	}
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]float64{0.1, -0.4, 0.2}, 1.0)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	peak := 0.0
	for _, v := range out {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if math.Abs(peak-1) > 1e-12 {
		t.Fatalf("peak mismatch: got %v want 1", peak)
	}

	silent, err := Normalize([]float64{0, 0}, 1.0)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if silent[0] != 0 || silent[1] != 0 {
		t.Fatalf("silence should stay silent: got %v", silent)
	}

	if _, err := Normalize([]float64{1}, 0); err == nil {
		t.Fatalf("expected error for non-positive target peak")
	}
}
