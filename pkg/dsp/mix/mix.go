// Package mix provides waveform blending and multi-layer mixing.
package mix

import (
	"github.com/kellylford/sounddesign/pkg/dsp"
	"github.com/kellylford/sounddesign/pkg/dsp/oscillator"
)

// BlendPair returns the secondary waveform a shape blends toward for
// warmth: square pairs with triangle, sawtooth with sine. Sine and
// triangle have no pairing.
func BlendPair(shape oscillator.Shape) (oscillator.Shape, bool) {
	switch shape {
	case oscillator.Square:
		return oscillator.Triangle, true
	case oscillator.Sawtooth:
		return oscillator.Sine, true
	default:
		return shape, false
	}
}

// CrossfadeLinear blends the secondary buffer into the primary in
// place: primary*(1-ratio) + secondary*ratio, ratio in [0,1].
func CrossfadeLinear(primary, secondary []float32, ratio float32) {
	if ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}
	inv := 1 - ratio

	n := len(primary)
	if len(secondary) < n {
		n = len(secondary)
	}
	for i := 0; i < n; i++ {
		primary[i] = primary[i]*inv + secondary[i]*ratio
	}
}

// Sequential concatenates layer buffers in list order. The output
// length is the sum of the input lengths; no crossfade is applied.
// Zero layers yield a nil buffer.
func Sequential(buffers [][]float32) []float32 {
	if len(buffers) == 0 {
		return nil
	}

	total := 0
	for _, b := range buffers {
		total += len(b)
	}

	out := make([]float32, 0, total)
	for _, b := range buffers {
		out = append(out, b...)
	}
	return out
}

// Simultaneous mixes layer buffers that play at once. Every buffer is
// zero-padded to the longest length, the mix is the elementwise mean
// (not the sum, so amplitude stays bounded as layers are added), a
// peak above the headroom level is scaled back down to it, and the
// result is hard-clipped as a final guard. A single buffer bypasses
// padding and averaging but still gets the headroom scale and clip.
// Zero layers yield a nil buffer.
func Simultaneous(buffers [][]float32) []float32 {
	if len(buffers) == 0 {
		return nil
	}

	maxLen := 0
	for _, b := range buffers {
		if len(b) > maxLen {
			maxLen = len(b)
		}
	}

	var out []float32
	if len(buffers) == 1 {
		out = make([]float32, len(buffers[0]))
		copy(out, buffers[0])
	} else {
		out = make([]float32, maxLen)
		for _, b := range buffers {
			dsp.Add(out, b)
		}
		dsp.Scale(out, 1/float32(len(buffers)))
	}

	// Headroom applies to the single-buffer path too; otherwise a
	// full-scale layer mixes to a different level alone than it does
	// averaged with identical copies of itself.
	dsp.Normalize(out, dsp.MixHeadroom)
	dsp.Clip(out, dsp.ClipLimit)
	return out
}
