// Package dsp provides digital signal processing utilities for audio rendering.
package dsp

// Common audio constants used throughout the DSP packages.
const (
	// SampleRate is the fixed render rate in Hz. Every buffer in the
	// pipeline is single-channel at this rate.
	SampleRate = 44100.0

	// MixHeadroom is the peak level the layer mixer scales down to when
	// a simultaneous mix exceeds it.
	MixHeadroom = 0.8

	// ClipLimit is the hard amplitude bound applied as a last resort.
	ClipLimit = 1.0

	// TwoPi saves a multiply in oscillator inner loops.
	TwoPi = 6.283185307179586

	// Epsilon for floating point comparisons.
	Epsilon = 1e-6
)

// Samples converts a duration in seconds to a sample count at the
// fixed render rate, rounding to nearest.
func Samples(seconds float64) int {
	if seconds <= 0 {
		return 0
	}
	return int(seconds*SampleRate + 0.5)
}
