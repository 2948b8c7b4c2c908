package effects

import (
	"math"

	"github.com/kellylford/sounddesign/pkg/dsp/modulation"
	"github.com/kellylford/sounddesign/pkg/dsp/oscillator"
)

const phaserStages = 4

// allpassStage is a first-order allpass section:
//
//	y[n] = a*x[n] + x[n-1] - a*y[n-1]
type allpassStage struct {
	a  float64
	x1 float32
	y1 float32
}

func (s *allpassStage) process(input float32) float32 {
	output := float32(s.a)*input + s.x1 - float32(s.a)*s.y1
	s.x1 = input
	s.y1 = output
	return output
}

// Phaser sweeps a cascade of first-order allpass stages with an LFO,
// producing moving notches when mixed with the dry signal.
type Phaser struct {
	sampleRate float64
	stages     [phaserStages]allpassStage
	lfo        *modulation.LFO
	center     float64
	depth      float64
	feedback   float64
	mix        float64
	last       float32
}

// NewPhaser creates a phaser. rate is the LFO frequency in Hz, depth
// the sweep amount in 0-1, center the sweep center in Hz, feedback
// and mix in 0-1.
func NewPhaser(sampleRate, rate, depth, center, feedback, mix float64) *Phaser {
	return &Phaser{
		sampleRate: sampleRate,
		lfo:        modulation.NewLFO(sampleRate, oscillator.Sine, rate),
		center:     center,
		depth:      clamp01(depth),
		feedback:   clamp01(feedback),
		mix:        clamp01(mix),
	}
}

// Process runs the phaser over a buffer in place
func (p *Phaser) Process(buf []float32) {
	nyquistGuard := p.sampleRate * 0.45

	for i := range buf {
		freq := p.center * (1.0 + p.depth*p.lfo.Value(i))
		if freq < 20 {
			freq = 20
		}
		if freq > nyquistGuard {
			freq = nyquistGuard
		}

		// Bilinear-transform allpass coefficient for the swept frequency
		tanHalf := math.Tan(math.Pi * freq / p.sampleRate)
		a := (tanHalf - 1.0) / (tanHalf + 1.0)

		wet := buf[i] + p.last*float32(p.feedback)
		for s := range p.stages {
			p.stages[s].a = a
			wet = p.stages[s].process(wet)
		}
		p.last = wet

		buf[i] = buf[i]*float32(1.0-p.mix) + wet*float32(p.mix)
	}
}
