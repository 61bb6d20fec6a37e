package fsk

import "errors"

var (
	// ErrInvalidBits indicates a bit string with characters outside {'0','1'},
	// or an empty bit string.
	ErrInvalidBits = errors.New("fsk: invalid bit string")

	// ErrNyquist indicates a mark frequency at or above half the sample rate.
	ErrNyquist = errors.New("fsk: nyquist violation")

	// ErrFilterSpec indicates band edges that violate the filter invariant
	// 0 < low < high < sampleRate/2, or a non-positive order.
	ErrFilterSpec = errors.New("fsk: invalid filter spec")

	// ErrInsufficientPeaks indicates that fewer than two separated spectral
	// peaks survived deduplication during parameter estimation.
	ErrInsufficientPeaks = errors.New("fsk: insufficient spectral peaks")
)
