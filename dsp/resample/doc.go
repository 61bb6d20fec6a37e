// Package resample converts finished sample blocks between rates with a
// rational polyphase FIR interpolator built on a Kaiser-windowed sinc
// prototype.
//
// ToRate approximates the requested ratio by continued-fraction convergents
// under a bounded denominator and reports the rate actually produced, which
// callers must carry forward when the approximation is inexact.
package resample
