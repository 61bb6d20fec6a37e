package stft

import (
	"math"
	"testing"

	"github.com/modemlab/fskmodem/dsp/spectrum"
	"github.com/modemlab/fskmodem/dsp/window"
)

func sineBlock(freqHz, sampleRate float64, n int) []float64 {
	out := make([]float64, n)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = math.Sin(step * float64(i))
	}
	return out
}

func TestNewValidation(t *testing.T) {
	if _, err := New(1, 512); err == nil {
		t.Fatalf("expected error for fft size < 2")
	}

	if _, err := New(2048, 0); err == nil {
		t.Fatalf("expected error for non-positive hop")
	}

	a, err := New(2048, 512)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if a.FFTSize() != 2048 || a.HopLength() != 512 {
		t.Fatalf("accessor mismatch: %d, %d", a.FFTSize(), a.HopLength())
	}
}

func TestFrameCount(t *testing.T) {
	a, err := New(2048, 512)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	cases := []struct{ n, want int }{
		{0, 0},
		{1, 1},
		{441, 1},
		{512, 1},
		{513, 2},
		{1764, 4},
		{4410, 9},
	}

	for _, tc := range cases {
		if got := a.FrameCount(tc.n); got != tc.want {
			t.Fatalf("FrameCount(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}

func TestMagnitudesShortSignalSingleFrame(t *testing.T) {
	const rate = 44100.0
	a, err := New(2048, 512)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	// 441 samples of a 10.5 kHz tone: one zero-padded frame with full
	// 2048-point bin resolution.
	grid, err := a.Magnitudes(sineBlock(10500, rate, 441))
	if err != nil {
		t.Fatalf("magnitudes failed: %v", err)
	}

	if grid.FrameCount() != 1 {
		t.Fatalf("frame count mismatch: got %d want 1", grid.FrameCount())
	}
	if grid.BinCount() != 1025 {
		t.Fatalf("bin count mismatch: got %d want 1025", grid.BinCount())
	}

	avg := grid.Average()
	peak := spectrum.DominantBin(avg)
	gotHz := spectrum.BinFrequency(peak, a.FFTSize(), rate)

	// The zero-padded peak must land within the main lobe of a 441-sample
	// window (~2 bins of 44100/441 = 100 Hz each).
	if math.Abs(gotHz-10500) > 200 {
		t.Fatalf("peak frequency mismatch: got %v want ~10500", gotHz)
	}
}

func TestMagnitudesLongSignal(t *testing.T) {
	const rate = 44100.0
	a, err := New(1024, 256)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	grid, err := a.Magnitudes(sineBlock(5000, rate, 8192))
	if err != nil {
		t.Fatalf("magnitudes failed: %v", err)
	}

	if want := (8192-1)/256 + 1; grid.FrameCount() != want {
		t.Fatalf("frame count mismatch: got %d want %d", grid.FrameCount(), want)
	}

	avg := grid.Average()
	peak := spectrum.DominantBin(avg)
	gotHz := spectrum.BinFrequency(peak, a.FFTSize(), rate)

	binHz := rate / float64(a.FFTSize())
	if math.Abs(gotHz-5000) > binHz {
		t.Fatalf("peak frequency mismatch: got %v want 5000 +- %v", gotHz, binHz)
	}

	// Each full frame must also individually locate the tone.
	for f := 0; f < grid.FrameCount()-4; f++ {
		bin := spectrum.DominantBin(grid.Frame(f))
		hz := spectrum.BinFrequency(bin, a.FFTSize(), rate)
		if math.Abs(hz-5000) > binHz {
			t.Fatalf("frame %d peak mismatch: got %v", f, hz)
		}
	}
}

func TestMagnitudesEmptyInput(t *testing.T) {
	a, err := New(2048, 512)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	grid, err := a.Magnitudes(nil)
	if err != nil {
		t.Fatalf("magnitudes failed: %v", err)
	}

	if grid.FrameCount() != 0 {
		t.Fatalf("expected zero frames, got %d", grid.FrameCount())
	}
	if grid.Average() != nil {
		t.Fatalf("expected nil average for empty grid")
	}
	if grid.Frame(0) != nil {
		t.Fatalf("expected nil frame for empty grid")
	}
}

func TestMagnitudesDeterministic(t *testing.T) {
	a, err := New(512, 128, WithWindow(window.TypeHamming))
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	block := sineBlock(3000, 44100, 2000)

	first, err := a.Magnitudes(block)
	if err != nil {
		t.Fatalf("magnitudes failed: %v", err)
	}

	second, err := a.Magnitudes(block)
	if err != nil {
		t.Fatalf("magnitudes failed: %v", err)
	}

	for f := 0; f < first.FrameCount(); f++ {
		a, b := first.Frame(f), second.Frame(f)
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("frame %d bin %d differs between runs", f, i)
			}
		}
	}
}

func TestGridFrameBounds(t *testing.T) {
	a, err := New(256, 64)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	grid, err := a.Magnitudes(sineBlock(1000, 8000, 256))
	if err != nil {
		t.Fatalf("magnitudes failed: %v", err)
	}

	if grid.Frame(-1) != nil || grid.Frame(grid.FrameCount()) != nil {
		t.Fatalf("out-of-range frames must return nil")
	}
}
