// Package oscillator generates basic periodic waveforms for synthesis
package oscillator

import (
	"fmt"
	"math"
)

// Shape identifies a basic waveform
type Shape int

const (
	// Sine is a pure sine wave
	Sine Shape = iota
	// Square is the sign of a sine wave
	Square
	// Sawtooth is a rising ramp
	Sawtooth
	// Triangle is a symmetric ramp
	Triangle
)

// String returns the config-file name of the shape
func (s Shape) String() string {
	switch s {
	case Sine:
		return "sine"
	case Square:
		return "square"
	case Sawtooth:
		return "sawtooth"
	case Triangle:
		return "triangle"
	default:
		return "unknown"
	}
}

// ParseShape converts a config-file name to a Shape
func ParseShape(name string) (Shape, error) {
	switch name {
	case "sine":
		return Sine, nil
	case "square":
		return Square, nil
	case "sawtooth":
		return Sawtooth, nil
	case "triangle":
		return Triangle, nil
	default:
		return Sine, fmt.Errorf("unknown wave type %q", name)
	}
}

// Generator renders waveforms into sample buffers at a fixed rate.
// It is stateless; every call evaluates the closed-form waveform over
// the buffer's time axis starting at t=0.
type Generator struct {
	sampleRate float64
}

// New creates a generator for the given sample rate
func New(sampleRate float64) *Generator {
	return &Generator{sampleRate: sampleRate}
}

// SampleRate returns the generator's render rate
func (g *Generator) SampleRate() float64 {
	return g.sampleRate
}

// Generate fills dst with one waveform at the given frequency.
// Every output sample satisfies |y| <= 1. A non-positive frequency is
// a caller-side domain violation and is not guarded here.
func (g *Generator) Generate(dst []float32, shape Shape, freq float64) {
	switch shape {
	case Sine:
		for i := range dst {
			t := float64(i) / g.sampleRate
			dst[i] = float32(math.Sin(2 * math.Pi * freq * t))
		}
	case Square:
		for i := range dst {
			t := float64(i) / g.sampleRate
			s := math.Sin(2 * math.Pi * freq * t)
			switch {
			case s > 0:
				dst[i] = 1
			case s < 0:
				dst[i] = -1
			default:
				dst[i] = 0
			}
		}
	case Sawtooth:
		for i := range dst {
			ft := float64(i) / g.sampleRate * freq
			dst[i] = float32(2 * (ft - math.Floor(ft+0.5)))
		}
	case Triangle:
		for i := range dst {
			ft := float64(i) / g.sampleRate * freq
			dst[i] = float32(2*math.Abs(2*(ft-math.Floor(ft+0.5))) - 1)
		}
	default:
		g.Generate(dst, Sine, freq)
	}
}

// Render allocates and fills a buffer of n samples
func (g *Generator) Render(n int, shape Shape, freq float64) []float32 {
	dst := make([]float32, n)
	g.Generate(dst, shape, freq)
	return dst
}
