package biquad

import "slices"

// ProcessBlockZeroPhase filters buf in place through the cascade twice, once
// forward and once time-reversed. The second pass cancels the phase shift of
// the first, so the result has zero phase distortion and the squared
// magnitude response of the cascade.
//
// The delay state is cleared before each pass and on return, making the call
// independent of any prior streaming use of the chain.
func (c *Chain) ProcessBlockZeroPhase(buf []float64) {
	for pass := 0; pass < 2; pass++ {
		c.Reset()
		c.ProcessBlock(buf)
		slices.Reverse(buf)
	}
	c.Reset()
}
