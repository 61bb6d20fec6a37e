// Package design provides digital IIR filter coefficient designers.
//
// The functions in this package produce biquad coefficients consumable by
// dsp/filter/biquad for runtime processing. [Lowpass] and [Highpass] are
// RBJ cookbook biquads; [ButterworthLP], [ButterworthHP] and
// [ButterworthBand] build higher-order cascades from them.
//
// Out-of-range parameters (non-positive frequency, frequency at or above
// Nyquist, non-positive sample rate) yield zero-valued coefficients rather
// than an error. Callers that need strict validation should check the
// parameters before designing.
package design
