// Package delay provides delay lines and the feedback echo effect
package delay

import "github.com/kellylford/sounddesign/pkg/dsp"

// Line implements a mono ring-buffer delay line with linear
// interpolation on fractional reads.
type Line struct {
	buffer     []float32
	size       int
	writePos   int
	sampleRate float64
}

// NewLine creates a delay line holding up to maxDelaySeconds
func NewLine(maxDelaySeconds, sampleRate float64) *Line {
	size := int(maxDelaySeconds*sampleRate) + 1
	return &Line{
		buffer:     make([]float32, size),
		size:       size,
		sampleRate: sampleRate,
	}
}

// Reset clears the delay buffer
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}

// Write adds a sample to the delay line
func (d *Line) Write(sample float32) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= d.size {
		d.writePos = 0
	}
}

// Read gets a delayed sample, interpolating between neighbors for
// fractional delays
func (d *Line) Read(delaySamples float64) float32 {
	readPos := float64(d.writePos) - delaySamples
	for readPos < 0 {
		readPos += float64(d.size)
	}

	idx := int(readPos)
	frac := float32(readPos - float64(idx))

	s1 := d.buffer[idx%d.size]
	s2 := d.buffer[(idx+1)%d.size]
	return s1*(1.0-frac) + s2*frac
}

// Process writes and reads in one operation
func (d *Line) Process(input float32, delaySamples float64) float32 {
	output := d.Read(delaySamples)
	d.Write(input)
	return output
}

// Echo applies a causal feedback delay to buf in place:
//
//	buf[i] += buf[i-delaySamples] * feedback
//
// in increasing index order, so each tap compounds recursively and
// decays geometrically while feedback stays below 1. The result is
// peak-normalized only if it exceeds full scale.
func Echo(buf []float32, delaySeconds, feedback float64, sampleRate float64) {
	delaySamples := int(delaySeconds*sampleRate + 0.5)
	if delaySamples <= 0 || delaySamples >= len(buf) {
		return
	}

	fb := float32(feedback)
	for i := delaySamples; i < len(buf); i++ {
		buf[i] += buf[i-delaySamples] * fb
	}

	dsp.Normalize(buf, 1.0)
}
