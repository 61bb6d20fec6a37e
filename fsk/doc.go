// Package fsk implements a binary frequency-shift-keying codec with
// spectral carrier estimation.
//
// Bits are encoded as fixed-duration sine blocks at the mark frequency
// (carrier + deviation, bit 1) or space frequency (carrier - deviation,
// bit 0). Decoding band-limits the input around the mark/space pair,
// slices it into per-bit windows, and decides each bit from the dominant
// frequency of the window's averaged short-time magnitude spectrum.
//
// When carrier and deviation are unknown, [Estimator] recovers them from
// the two dominant, mutually separated peaks of the full-buffer spectrum.
// [Codec] ties the stages together for the common encode/decode paths.
//
// All operations are one-shot over complete in-memory buffers; nothing in
// this package streams, retries, or keeps state across invocations.
package fsk
