// Package biquad runs cascades of second-order IIR filter sections.
//
// [Coefficients] describes a single normalized section and can report its
// own frequency response. [Chain] cascades sections with Direct Form II
// Transposed state and applies them to sample blocks, either streaming or
// forward-backward for zero-phase filtering.
//
// Coefficient design (Butterworth lowpass, highpass, bandpass) lives in
// dsp/filter/design.
package biquad
