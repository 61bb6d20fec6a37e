package biquad

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/modemlab/fskmodem/internal/testutil"
)

func TestChainImpulseResponseFIR(t *testing.T) {
	// Pure feedforward section: the impulse response is the numerator
	// coefficients followed by zeros.
	chain := NewChain([]Coefficients{{B0: 0.5, B1: 0.25, B2: 0.125}})

	buf := testutil.Impulse(6, 0)
	chain.ProcessBlock(buf)

	want := []float64{0.5, 0.25, 0.125, 0, 0, 0}
	testutil.RequireSliceNearlyEqual(t, buf, want, 1e-15)
}

func TestChainImpulseResponseOnePole(t *testing.T) {
	// y[n] = x[n] + 0.5*y[n-1] decays as 0.5^n.
	chain := NewChain([]Coefficients{{B0: 1, A1: -0.5}})

	buf := testutil.Impulse(8, 0)
	chain.ProcessBlock(buf)

	for i, got := range buf {
		want := math.Pow(0.5, float64(i))
		if math.Abs(got-want) > 1e-15 {
			t.Fatalf("impulse response[%d] mismatch: got %v want %v", i, got, want)
		}
	}
}

func TestChainCascadeMatchesSequential(t *testing.T) {
	c1 := Coefficients{B0: 0.2, B1: 0.3, B2: 0.1, A1: -0.4, A2: 0.2}
	c2 := Coefficients{B0: 0.7, B1: -0.2, B2: 0.05, A1: 0.1, A2: -0.3}
	input := testutil.Noise(3, 1.0, 128)

	got := append([]float64(nil), input...)
	NewChain([]Coefficients{c1, c2}).ProcessBlock(got)

	want := append([]float64(nil), input...)
	NewChain([]Coefficients{c1}).ProcessBlock(want)
	NewChain([]Coefficients{c2}).ProcessBlock(want)

	testutil.RequireSliceNearlyEqual(t, got, want, 1e-15)
}

func TestChainStateCarriesAcrossBlocks(t *testing.T) {
	coeffs := []Coefficients{{B0: 0.2, B1: 0.3, B2: 0.1, A1: -0.4, A2: 0.2}}
	input := testutil.Noise(11, 1.0, 128)

	whole := append([]float64(nil), input...)
	NewChain(coeffs).ProcessBlock(whole)

	split := append([]float64(nil), input...)
	chain := NewChain(coeffs)
	chain.ProcessBlock(split[:50])
	chain.ProcessBlock(split[50:])

	testutil.RequireSliceNearlyEqual(t, split, whole, 0)
}

func TestChainReset(t *testing.T) {
	coeffs := []Coefficients{{B0: 0.2, B1: 0.3, B2: 0.1, A1: -0.4, A2: 0.2}}
	input := testutil.Noise(5, 1.0, 64)

	chain := NewChain(coeffs)
	first := append([]float64(nil), input...)
	chain.ProcessBlock(first)

	chain.Reset()
	second := append([]float64(nil), input...)
	chain.ProcessBlock(second)

	testutil.RequireSliceNearlyEqual(t, second, first, 0)
}

func TestChainNumSections(t *testing.T) {
	chain := NewChain(make([]Coefficients, 3))
	if n := chain.NumSections(); n != 3 {
		t.Fatalf("NumSections mismatch: got %d want %d", n, 3)
	}
}

func TestChainEmptyBlock(t *testing.T) {
	chain := NewChain([]Coefficients{{B0: 1}})
	chain.ProcessBlock(nil)
	chain.ProcessBlock([]float64{})
}

func TestResponseOnePole(t *testing.T) {
	c := Coefficients{B0: 1, A1: -0.5}

	// DC gain B0/(1+A1) = 2, Nyquist gain 1/(1-A1) = 2/3.
	if got := cmplx.Abs(c.Response(0, 48000)); math.Abs(got-2) > 1e-12 {
		t.Fatalf("DC gain mismatch: got %v want %v", got, 2.0)
	}
	if got := cmplx.Abs(c.Response(24000, 48000)); math.Abs(got-2.0/3) > 1e-12 {
		t.Fatalf("Nyquist gain mismatch: got %v want %v", got, 2.0/3)
	}
}

func TestMagnitudeConventions(t *testing.T) {
	c := Coefficients{B0: 0.3, B1: 0.2, B2: 0.1, A1: -0.5, A2: 0.25}
	const freq, rate = 1234.0, 48000.0

	abs := cmplx.Abs(c.Response(freq, rate))
	if got := c.MagnitudeSquared(freq, rate); math.Abs(got-abs*abs) > 1e-12 {
		t.Fatalf("MagnitudeSquared mismatch: got %v want %v", got, abs*abs)
	}
	if got := c.MagnitudeDB(freq, rate); math.Abs(got-20*math.Log10(abs)) > 1e-9 {
		t.Fatalf("MagnitudeDB mismatch: got %v want %v", got, 20*math.Log10(abs))
	}
}

func TestChainResponseIsProductOfSections(t *testing.T) {
	c1 := Coefficients{B0: 0.2, B1: 0.3, B2: 0.1, A1: -0.4, A2: 0.2}
	c2 := Coefficients{B0: 2, B1: 0, B2: 0, A1: 0, A2: 0}
	const freq, rate = 3000.0, 48000.0

	chain := NewChain([]Coefficients{c1, c2})
	want := c1.Response(freq, rate) * c2.Response(freq, rate)
	if got := chain.Response(freq, rate); cmplx.Abs(got-want) > 1e-12 {
		t.Fatalf("cascade response mismatch: got %v want %v", got, want)
	}

	wantDB := c1.MagnitudeDB(freq, rate) + c2.MagnitudeDB(freq, rate)
	if gotDB := chain.MagnitudeDB(freq, rate); math.Abs(gotDB-wantDB) > 1e-9 {
		t.Fatalf("cascade dB mismatch: got %v want %v", gotDB, wantDB)
	}
}
