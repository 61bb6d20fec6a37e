// Package spectrum interprets complex FFT output without computing any
// transform itself. It extracts one-sided magnitude spectra, maps bins to
// frequencies, finds and ranks spectral peaks, measures single tones via
// the Goertzel recurrence, and summarizes spectral shape (noise floor,
// centroid, flatness).
package spectrum
