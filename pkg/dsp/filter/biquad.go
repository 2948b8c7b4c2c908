// Package filter provides time-domain IIR filters for the effects
// chain. Spectral brick-wall filtering for noise shaping lives in the
// spectral package; the filters here are stateful and causal.
package filter

import "math"

// Biquad implements a second-order IIR filter (Direct Form I) over a
// mono signal.
type Biquad struct {
	b0, b1, b2 float32
	a1, a2     float32

	x1, x2 float32
	y1, y2 float32
}

// NewBiquad returns an identity biquad. Call one of the Set* design
// methods before processing.
func NewBiquad() *Biquad {
	return &Biquad{b0: 1.0}
}

// Reset clears the filter state
func (b *Biquad) Reset() {
	b.x1, b.x2 = 0, 0
	b.y1, b.y2 = 0, 0
}

// SetCoefficients sets the filter coefficients directly, normalized by a0
func (b *Biquad) SetCoefficients(b0, b1, b2, a0, a1, a2 float64) {
	inv := 1.0 / a0
	b.b0 = float32(b0 * inv)
	b.b1 = float32(b1 * inv)
	b.b2 = float32(b2 * inv)
	b.a1 = float32(a1 * inv)
	b.a2 = float32(a2 * inv)
}

// ProcessSample filters one sample
func (b *Biquad) ProcessSample(x0 float32) float32 {
	y0 := b.b0*x0 + b.b1*b.x1 + b.b2*b.x2 - b.a1*b.y1 - b.a2*b.y2

	b.x2 = b.x1
	b.x1 = x0
	b.y2 = b.y1
	b.y1 = y0

	return y0
}

// Process filters a buffer in place - no allocations
func (b *Biquad) Process(buffer []float32) {
	for i := range buffer {
		buffer[i] = b.ProcessSample(buffer[i])
	}
}

// SetLowpass configures as a lowpass filter
func (b *Biquad) SetLowpass(sampleRate, frequency, q float64) {
	omega := 2.0 * math.Pi * frequency / sampleRate
	sinOmega := math.Sin(omega)
	cosOmega := math.Cos(omega)
	alpha := sinOmega / (2.0 * q)

	b.SetCoefficients(
		(1.0-cosOmega)/2.0,
		1.0-cosOmega,
		(1.0-cosOmega)/2.0,
		1.0+alpha,
		-2.0*cosOmega,
		1.0-alpha,
	)
}

// SetHighpass configures as a highpass filter
func (b *Biquad) SetHighpass(sampleRate, frequency, q float64) {
	omega := 2.0 * math.Pi * frequency / sampleRate
	sinOmega := math.Sin(omega)
	cosOmega := math.Cos(omega)
	alpha := sinOmega / (2.0 * q)

	b.SetCoefficients(
		(1.0+cosOmega)/2.0,
		-(1.0 + cosOmega),
		(1.0+cosOmega)/2.0,
		1.0+alpha,
		-2.0*cosOmega,
		1.0-alpha,
	)
}

// SetAllpass configures as an allpass filter
func (b *Biquad) SetAllpass(sampleRate, frequency, q float64) {
	omega := 2.0 * math.Pi * frequency / sampleRate
	sinOmega := math.Sin(omega)
	cosOmega := math.Cos(omega)
	alpha := sinOmega / (2.0 * q)

	b.SetCoefficients(
		1.0-alpha,
		-2.0*cosOmega,
		1.0+alpha,
		1.0+alpha,
		-2.0*cosOmega,
		1.0-alpha,
	)
}
