// Package harmonics layers overtone partials onto a fundamental waveform
package harmonics

import (
	"github.com/kellylford/sounddesign/pkg/dsp"
	"github.com/kellylford/sounddesign/pkg/dsp/oscillator"
)

// Config sets the per-partial gains. A zero volume skips that partial.
type Config struct {
	OctaveVolume  float64 // partial at 2f
	FifthVolume   float64 // partial at 1.5f
	SubBassVolume float64 // partial at 0.5f
}

// Enabled reports whether any partial would be generated
func (c Config) Enabled() bool {
	return c.OctaveVolume > 0 || c.FifthVolume > 0 || c.SubBassVolume > 0
}

// Apply adds the configured partials to buf, generating each at the
// same waveform shape as the fundamental. If the combined signal
// exceeds full scale it is divided by its peak - a protective
// pre-envelope normalization, independent of the mixer's.
func Apply(buf []float32, gen *oscillator.Generator, shape oscillator.Shape, freq float64, cfg Config) {
	partials := []struct {
		ratio  float64
		volume float64
	}{
		{2.0, cfg.OctaveVolume},
		{1.5, cfg.FifthVolume},
		{0.5, cfg.SubBassVolume},
	}

	var scratch []float32
	for _, p := range partials {
		if p.volume <= 0 {
			continue
		}
		if scratch == nil {
			scratch = make([]float32, len(buf))
		}
		gen.Generate(scratch, shape, freq*p.ratio)
		dsp.AddScaled(buf, scratch, float32(p.volume))
	}

	dsp.Normalize(buf, 1.0)
}
