// Package noise generates white, pink and brown noise buffers
package noise

import (
	"fmt"
	"math/rand"

	"github.com/kellylford/sounddesign/pkg/dsp"
)

// Type selects the noise spectrum
type Type int

const (
	// White noise has equal energy at all frequencies
	White Type = iota
	// Pink noise has equal energy per octave (1/f spectrum)
	Pink
	// Brown noise has a 1/f^2 spectrum (integrated white noise)
	Brown
)

// String returns the config-file name of the noise type
func (t Type) String() string {
	switch t {
	case White:
		return "white"
	case Pink:
		return "pink"
	case Brown:
		return "brown"
	default:
		return "unknown"
	}
}

// ParseType converts a config-file name to a noise Type
func ParseType(name string) (Type, error) {
	switch name {
	case "white":
		return White, nil
	case "pink":
		return Pink, nil
	case "brown":
		return Brown, nil
	default:
		return White, fmt.Errorf("unknown noise type %q", name)
	}
}

// Paul Kellet's economy pinking filter coefficients, applied as a
// 3-pole IIR over uniform white noise.
var (
	pinkB = [4]float64{0.049922035, -0.095993537, 0.050612699, -0.004408786}
	pinkA = [4]float64{1, -2.494956002, 2.017265875, -0.522189400}
)

// Generator produces noise buffers from a seedable random source
type Generator struct {
	rand *rand.Rand
}

// New creates a noise generator with the given seed
func New(seed int64) *Generator {
	return &Generator{rand: rand.New(rand.NewSource(seed))}
}

// Generate fills dst with the selected noise type
func (g *Generator) Generate(dst []float32, t Type) {
	switch t {
	case Pink:
		g.GeneratePink(dst)
	case Brown:
		g.GenerateBrown(dst)
	default:
		g.GenerateWhite(dst)
	}
}

// GenerateWhite fills dst with i.i.d. uniform samples in (-1, 1)
func (g *Generator) GenerateWhite(dst []float32) {
	for i := range dst {
		dst[i] = float32(g.rand.Float64()*2 - 1)
	}
}

// GeneratePink fills dst with white noise filtered through the fixed
// pinking IIR, then peak-normalized to full scale.
func (g *Generator) GeneratePink(dst []float32) {
	n := len(dst)
	white := make([]float64, n)
	for i := range white {
		white[i] = g.rand.Float64()*2 - 1
	}

	pink := make([]float64, n)
	for i := 3; i < n; i++ {
		pink[i] = pinkB[0]*white[i] + pinkB[1]*white[i-1] +
			pinkB[2]*white[i-2] + pinkB[3]*white[i-3] -
			pinkA[1]*pink[i-1] - pinkA[2]*pink[i-2] - pinkA[3]*pink[i-3]
	}

	peak := 0.0
	for _, v := range pink {
		if v > peak {
			peak = v
		} else if -v > peak {
			peak = -v
		}
	}
	if peak > 0 {
		for i := range dst {
			dst[i] = float32(pink[i] / peak)
		}
	} else {
		dsp.Clear(dst)
	}
}

// GenerateBrown fills dst with the cumulative sum of white noise,
// peak-normalized to full scale.
func (g *Generator) GenerateBrown(dst []float32) {
	sum := 0.0
	peak := 0.0
	walk := make([]float64, len(dst))
	for i := range walk {
		sum += g.rand.Float64()*2 - 1
		walk[i] = sum
		if sum > peak {
			peak = sum
		} else if -sum > peak {
			peak = -sum
		}
	}

	if peak > 0 {
		for i := range dst {
			dst[i] = float32(walk[i] / peak)
		}
	} else {
		dsp.Clear(dst)
	}
}
