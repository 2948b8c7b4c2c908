package effects

import "math"

// Freeverb tuning constants (in samples at 44.1kHz)
const (
	numCombs     = 8
	numAllpasses = 4
	fixedGain    = 0.015
	scaleDamping = 0.4
	scaleRoom    = 0.28
	offsetRoom   = 0.7
)

var combTuning = [numCombs]int{
	1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617,
}

var allpassTuning = [numAllpasses]int{
	556, 441, 341, 225,
}

// combFilter is a feedback comb filter with a one-pole damping filter
// in the feedback path.
type combFilter struct {
	buffer      []float32
	idx         int
	feedback    float64
	filterstore float32
	damp1       float64
	damp2       float64
}

func newCombFilter(delaySamples int) *combFilter {
	return &combFilter{
		buffer: make([]float32, delaySamples),
		damp1:  0.5,
		damp2:  0.5,
	}
}

func (c *combFilter) setFeedback(feedback float64) {
	c.feedback = math.Max(0.0, math.Min(1.0, feedback))
}

func (c *combFilter) setDamping(damping float64) {
	c.damp1 = damping * scaleDamping
	c.damp2 = 1.0 - c.damp1
}

func (c *combFilter) process(input float32) float32 {
	output := c.buffer[c.idx]

	c.filterstore = float32(float64(output)*c.damp2 + float64(c.filterstore)*c.damp1)
	c.buffer[c.idx] = input + float32(c.feedback)*c.filterstore

	c.idx++
	if c.idx >= len(c.buffer) {
		c.idx = 0
	}

	return output
}

// allpassFilter diffuses the comb output. y[n] = -x[n] + x[n-D] + C*y[n-D]
type allpassFilter struct {
	buffer   []float32
	idx      int
	feedback float64
}

func newAllpassFilter(delaySamples int) *allpassFilter {
	return &allpassFilter{
		buffer:   make([]float32, delaySamples),
		feedback: 0.5,
	}
}

func (a *allpassFilter) process(input float32) float32 {
	bufout := a.buffer[a.idx]

	output := -input + bufout
	a.buffer[a.idx] = input + float32(a.feedback)*bufout

	a.idx++
	if a.idx >= len(a.buffer) {
		a.idx = 0
	}

	return output
}

// Reverb implements the Freeverb algorithm by Jezar at Dreampoint,
// reduced to a mono signal path.
type Reverb struct {
	combs     [numCombs]*combFilter
	allpasses [numAllpasses]*allpassFilter

	wetLevel float64
	dryLevel float64
}

// NewReverb creates a mono Freeverb with the given room size, damping
// and wet/dry levels, all in 0-1.
func NewReverb(sampleRate, roomSize, damping, wetLevel, dryLevel float64) *Reverb {
	r := &Reverb{
		wetLevel: wetLevel,
		dryLevel: dryLevel,
	}

	// The tuning tables assume 44.1kHz
	scale := sampleRate / 44100.0
	feedback := math.Max(0.0, math.Min(1.0, roomSize))*scaleRoom + offsetRoom

	for i := 0; i < numCombs; i++ {
		r.combs[i] = newCombFilter(int(float64(combTuning[i]) * scale))
		r.combs[i].setFeedback(feedback)
		r.combs[i].setDamping(math.Max(0.0, math.Min(1.0, damping)))
	}
	for i := 0; i < numAllpasses; i++ {
		r.allpasses[i] = newAllpassFilter(int(float64(allpassTuning[i]) * scale))
	}

	return r
}

// ProcessSample processes one mono sample
func (r *Reverb) ProcessSample(input float32) float32 {
	in := input * fixedGain

	var wet float32
	for i := 0; i < numCombs; i++ {
		wet += r.combs[i].process(in)
	}
	for i := 0; i < numAllpasses; i++ {
		wet = r.allpasses[i].process(wet)
	}

	return wet*float32(r.wetLevel) + input*float32(r.dryLevel)
}

// Process runs the reverb over a buffer in place
func (r *Reverb) Process(buf []float32) {
	for i := range buf {
		buf[i] = r.ProcessSample(buf[i])
	}
}
