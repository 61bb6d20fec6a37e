package spectrum

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Peak describes one detected spectral peak.
type Peak struct {
	Bin         int
	FrequencyHz float64
	Magnitude   float64
}

// PeakOptions controls candidate selection and deduplication in FindPeaks.
type PeakOptions struct {
	// MinProminence rejects local maxima whose height above the surrounding
	// bases is below this value. Zero disables the filter.
	MinProminence float64

	// MinSeparationHz suppresses any peak closer than this to an already
	// accepted stronger peak. Zero disables deduplication.
	MinSeparationHz float64

	// MaxPeaks caps the number of returned peaks. Zero means unlimited.
	MaxPeaks int

	// AllBins considers every interior bin a candidate instead of only
	// local maxima. Prominence filtering is skipped in this mode.
	AllBins bool
}

// FindPeaks detects peaks in a one-sided magnitude spectrum.
//
// mags and freqs must be aligned index-for-index. Bin 0 (DC) and the last
// bin never qualify as peaks since they lack a complete neighborhood.
// Accepted peaks are returned in descending magnitude order; among peaks
// closer than MinSeparationHz only the strongest survives.
func FindPeaks(mags, freqs []float64, opts PeakOptions) ([]Peak, error) {
	if len(mags) != len(freqs) {
		return nil, fmt.Errorf("spectrum: magnitude/frequency length mismatch: %d != %d", len(mags), len(freqs))
	}

	if len(mags) < 3 {
		return nil, nil
	}

	candidates := make([]Peak, 0, 16)

	for i := 1; i < len(mags)-1; i++ {
		if !opts.AllBins {
			if !(mags[i] > mags[i-1] && mags[i] >= mags[i+1]) {
				continue
			}

			if opts.MinProminence > 0 && prominence(mags, i) < opts.MinProminence {
				continue
			}
		}

		candidates = append(candidates, Peak{Bin: i, FrequencyHz: freqs[i], Magnitude: mags[i]})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Magnitude != candidates[j].Magnitude {
			return candidates[i].Magnitude > candidates[j].Magnitude
		}
		return candidates[i].Bin < candidates[j].Bin
	})

	accepted := make([]Peak, 0, len(candidates))

	for _, c := range candidates {
		if opts.MaxPeaks > 0 && len(accepted) >= opts.MaxPeaks {
			break
		}

		if opts.MinSeparationHz > 0 {
			tooClose := false
			for _, a := range accepted {
				if math.Abs(c.FrequencyHz-a.FrequencyHz) < opts.MinSeparationHz {
					tooClose = true
					break
				}
			}
			if tooClose {
				continue
			}
		}

		accepted = append(accepted, c)
	}

	return accepted, nil
}

// prominence measures how far a peak rises above its surrounding bases.
//
// On each side the base is the lowest magnitude between the peak and the
// nearest strictly higher bin (or the spectrum edge). The prominence is the
// peak height above the higher of the two bases.
func prominence(mags []float64, peak int) float64 {
	left := mags[peak]
	for i := peak - 1; i >= 0; i-- {
		if mags[i] > mags[peak] {
			break
		}
		if mags[i] < left {
			left = mags[i]
		}
	}

	right := mags[peak]
	for i := peak + 1; i < len(mags); i++ {
		if mags[i] > mags[peak] {
			break
		}
		if mags[i] < right {
			right = mags[i]
		}
	}

	return mags[peak] - math.Max(left, right)
}

// NoiseFloor estimates the broadband noise floor of a magnitude spectrum as
// the given empirical quantile (0..1) of the bin magnitudes.
func NoiseFloor(mags []float64, quantile float64) float64 {
	if len(mags) == 0 {
		return 0
	}

	q := quantile
	if q < 0 {
		q = 0
	}
	if q > 1 {
		q = 1
	}

	sorted := make([]float64, len(mags))
	copy(sorted, mags)
	sort.Float64s(sorted)

	return stat.Quantile(q, stat.Empirical, sorted, nil)
}
