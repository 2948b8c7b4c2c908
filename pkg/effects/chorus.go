package effects

import (
	"github.com/kellylford/sounddesign/pkg/dsp/delay"
	"github.com/kellylford/sounddesign/pkg/dsp/modulation"
	"github.com/kellylford/sounddesign/pkg/dsp/oscillator"
)

// Chorus thickens the signal with an LFO-modulated delay line
type Chorus struct {
	line          *delay.Line
	lfo           *modulation.LFO
	centerSamples float64
	depth         float64
	feedback      float64
	mix           float64
}

// NewChorus creates a chorus. rate is the LFO frequency in Hz, depth
// is the modulation amount in 0-1, centerDelayMs the center delay in
// milliseconds, feedback and mix in 0-1.
func NewChorus(sampleRate, rate, depth, centerDelayMs, feedback, mix float64) *Chorus {
	center := centerDelayMs / 1000.0 * sampleRate
	// The line must hold the center delay at full modulation swing
	maxDelay := centerDelayMs / 1000.0 * 2.0

	return &Chorus{
		line:          delay.NewLine(maxDelay, sampleRate),
		lfo:           modulation.NewLFO(sampleRate, oscillator.Sine, rate),
		centerSamples: center,
		depth:         clamp01(depth),
		feedback:      clamp01(feedback),
		mix:           clamp01(mix),
	}
}

// Process runs the chorus over a buffer in place
func (c *Chorus) Process(buf []float32) {
	for i := range buf {
		delaySamples := c.centerSamples * (1.0 + c.depth*c.lfo.Value(i))
		if delaySamples < 1 {
			delaySamples = 1
		}

		wet := c.line.Read(delaySamples)
		c.line.Write(buf[i] + wet*float32(c.feedback))

		buf[i] = buf[i]*float32(1.0-c.mix) + wet*float32(c.mix)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
