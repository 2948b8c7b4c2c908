// Package modulation provides low-frequency modulation effects
package modulation

import (
	"math"

	"github.com/kellylford/sounddesign/pkg/dsp/oscillator"
)

// LFO is a low-frequency oscillator evaluated over a buffer's time
// axis. Like the audio-rate generator it is stateless: value(i) is the
// closed-form waveform at t = i/sampleRate.
type LFO struct {
	sampleRate float64
	shape      oscillator.Shape
	frequency  float64
}

// NewLFO creates an LFO with the given shape and frequency in Hz
func NewLFO(sampleRate float64, shape oscillator.Shape, frequency float64) *LFO {
	return &LFO{
		sampleRate: sampleRate,
		shape:      shape,
		frequency:  frequency,
	}
}

// Value returns the oscillator output in [-1,1] at sample index i
func (l *LFO) Value(i int) float64 {
	t := float64(i) / l.sampleRate
	switch l.shape {
	case oscillator.Triangle:
		ft := t * l.frequency
		return 2*math.Abs(2*(ft-math.Floor(ft+0.5))) - 1
	case oscillator.Square:
		s := math.Sin(2 * math.Pi * l.frequency * t)
		switch {
		case s > 0:
			return 1
		case s < 0:
			return -1
		default:
			return 0
		}
	default:
		return math.Sin(2 * math.Pi * l.frequency * t)
	}
}
