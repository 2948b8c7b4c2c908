// Package render turns layer configurations into audio. It is the
// orchestration layer: each LayerConfig describes one sound (waveform,
// envelope, harmonics, advanced synthesis, effects) and a Document
// collects layers with a mixing mode.
package render

import (
	"fmt"

	"github.com/kellylford/sounddesign/pkg/dsp/envelope"
	"github.com/kellylford/sounddesign/pkg/dsp/noise"
	"github.com/kellylford/sounddesign/pkg/dsp/oscillator"
	"github.com/kellylford/sounddesign/pkg/effects"
)

// SynthesisMode selects the sound source for a layer. The modes are
// mutually exclusive: exactly one source produces the layer's signal.
type SynthesisMode int

const (
	// SynthWaveform uses the basic oscillator, with optional
	// harmonics and waveform blending.
	SynthWaveform SynthesisMode = iota
	// SynthFM uses two-operator frequency modulation
	SynthFM
	// SynthNoise uses a noise generator with an optional filter
	SynthNoise
	// SynthKarplus uses Karplus-Strong plucked string synthesis
	SynthKarplus
)

func (m SynthesisMode) String() string {
	switch m {
	case SynthWaveform:
		return "waveform"
	case SynthFM:
		return "fm"
	case SynthNoise:
		return "noise"
	case SynthKarplus:
		return "karplus"
	default:
		return "unknown"
	}
}

// ParseSynthesisMode converts a mode name to a SynthesisMode
func ParseSynthesisMode(name string) (SynthesisMode, error) {
	switch name {
	case "waveform", "":
		return SynthWaveform, nil
	case "fm":
		return SynthFM, nil
	case "noise":
		return SynthNoise, nil
	case "karplus":
		return SynthKarplus, nil
	default:
		return SynthWaveform, fmt.Errorf("unknown synthesis mode %q", name)
	}
}

// FilterType selects the spectral filter applied to noise
type FilterType int

const (
	// FilterBandpass keeps frequencies between Low and High
	FilterBandpass FilterType = iota
	// FilterLowpass keeps frequencies below High
	FilterLowpass
	// FilterHighpass keeps frequencies above Low
	FilterHighpass
)

// HarmonicsConfig adds octave, fifth and sub-bass partials to the
// base waveform.
type HarmonicsConfig struct {
	Enabled bool
	Octave  float64 // volume of the 2f partial, 0-1
	Fifth   float64 // volume of the 1.5f partial, 0-1
	SubBass float64 // volume of the 0.5f partial, 0-1
}

// BlendConfig crossfades the base waveform with its blend partner
// (square with triangle, sawtooth with sine).
type BlendConfig struct {
	Enabled bool
	Ratio   float64 // 0 = all base, 1 = all partner
}

// FilterConfig shapes noise with a spectral filter
type FilterConfig struct {
	Enabled bool
	Type    FilterType
	Low     float64 // Hz
	High    float64 // Hz
}

// LFOConfig applies tremolo amplitude modulation
type LFOConfig struct {
	Enabled   bool
	Frequency float64 // Hz
	Depth     float64 // 0-1
	Shape     oscillator.Shape
}

// EchoConfig applies a feedback echo after the envelope
type EchoConfig struct {
	Enabled  bool
	Delay    float64 // seconds
	Feedback float64 // 0-1
}

// AdvancedConfig holds the alternative synthesis sources and the
// post-envelope modulation effects.
type AdvancedConfig struct {
	Synthesis SynthesisMode

	FMModRatio float64 // modulator/carrier frequency ratio
	FMModIndex float64 // modulation index

	NoiseType   noise.Type
	NoiseFilter FilterConfig

	LFO  LFOConfig
	Echo EchoConfig
}

// InstrumentConfig renders the layer through a NoteRenderer instead
// of the synthesis pipeline. If the renderer is unavailable the layer
// falls back to synthesis.
type InstrumentConfig struct {
	Enabled      bool
	Note         int // MIDI note 0-127
	Velocity     int // 0-127
	Program      int
	Bank         int
	UseFrequency bool // derive the note from the layer frequency
}

// LayerConfig describes one sound layer
type LayerConfig struct {
	Name      string
	Frequency float64 // Hz
	Wave      oscillator.Shape
	Duration  float64 // seconds
	Volume    float64 // 0-1, applied at mix time

	Envelope   envelope.ADSR
	Harmonics  HarmonicsConfig
	Blending   BlendConfig
	Advanced   AdvancedConfig
	Instrument InstrumentConfig
	Effects    effects.Config
}

// MixMode selects how a document's layers combine
type MixMode int

const (
	// MixSimultaneous averages layers into one buffer
	MixSimultaneous MixMode = iota
	// MixSequential concatenates layers end to end
	MixSequential
)

func (m MixMode) String() string {
	if m == MixSequential {
		return "sequential"
	}
	return "simultaneous"
}

// ParseMixMode converts a mode name to a MixMode
func ParseMixMode(name string) (MixMode, error) {
	switch name {
	case "simultaneous", "":
		return MixSimultaneous, nil
	case "sequential":
		return MixSequential, nil
	default:
		return MixSimultaneous, fmt.Errorf("unknown mix mode %q", name)
	}
}

// Document is a named collection of layers and a mixing mode
type Document struct {
	Name   string
	Layers []LayerConfig
	Mode   MixMode
}

// DefaultLayer returns a layer with the standard starting sound: a
// 440Hz sine with a gentle envelope and mild harmonics.
func DefaultLayer() LayerConfig {
	return LayerConfig{
		Frequency: 440.0,
		Wave:      oscillator.Sine,
		Duration:  0.5,
		Volume:    0.3,
		Envelope: envelope.ADSR{
			Attack:  0.01,
			Decay:   0.1,
			Sustain: 0.7,
			Release: 0.15,
		},
		Harmonics: HarmonicsConfig{
			Enabled: true,
			Octave:  0.3,
			Fifth:   0.2,
		},
		Blending: BlendConfig{
			Enabled: true,
			Ratio:   0.5,
		},
		Advanced: AdvancedConfig{
			Synthesis:  SynthWaveform,
			FMModRatio: 1.4,
			FMModIndex: 5.0,
			NoiseType:  noise.White,
			NoiseFilter: FilterConfig{
				Type: FilterBandpass,
				Low:  200.0,
				High: 2000.0,
			},
			LFO: LFOConfig{
				Frequency: 5.0,
				Depth:     0.3,
				Shape:     oscillator.Sine,
			},
			Echo: EchoConfig{
				Delay:    0.3,
				Feedback: 0.4,
			},
		},
		Instrument: InstrumentConfig{
			Note:         69,
			Velocity:     100,
			UseFrequency: true,
		},
		Effects: effects.DefaultConfig(),
	}
}

// BlankLayer returns a layer with every feature switched off: a plain
// full-level sine with a flat envelope. Useful as a starting point for
// tests and for building sounds from scratch.
func BlankLayer() LayerConfig {
	return LayerConfig{
		Frequency: 440.0,
		Wave:      oscillator.Sine,
		Duration:  0.5,
		Volume:    1.0,
		Envelope:  envelope.ADSR{Sustain: 1.0},
		Advanced: AdvancedConfig{
			NoiseType: noise.White,
			NoiseFilter: FilterConfig{
				Type: FilterBandpass,
				Low:  200.0,
				High: 2000.0,
			},
		},
		Instrument: InstrumentConfig{
			Note:         69,
			Velocity:     100,
			UseFrequency: true,
		},
		Effects: effects.DefaultConfig(),
	}
}

// ConfigError reports an invalid layer parameter
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("layer config: %s: %s", e.Field, e.Message)
}

// Validate checks the layer's parameters and returns a *ConfigError
// describing the first problem found.
func (c *LayerConfig) Validate() error {
	if c.Frequency <= 0 {
		return &ConfigError{Field: "frequency", Message: "must be positive"}
	}
	if c.Duration < 0 {
		return &ConfigError{Field: "duration", Message: "must not be negative"}
	}
	if c.Volume < 0 || c.Volume > 1 {
		return &ConfigError{Field: "volume", Message: "must be in 0-1"}
	}
	if c.Envelope.Attack < 0 || c.Envelope.Decay < 0 || c.Envelope.Release < 0 {
		return &ConfigError{Field: "envelope", Message: "times must not be negative"}
	}
	if c.Envelope.Sustain < 0 || c.Envelope.Sustain > 1 {
		return &ConfigError{Field: "envelope", Message: "sustain level must be in 0-1"}
	}
	if c.Blending.Enabled && (c.Blending.Ratio < 0 || c.Blending.Ratio > 1) {
		return &ConfigError{Field: "blending", Message: "ratio must be in 0-1"}
	}
	if c.Advanced.Synthesis == SynthFM && c.Advanced.FMModRatio <= 0 {
		return &ConfigError{Field: "fm", Message: "modulator ratio must be positive"}
	}
	if c.Advanced.Echo.Enabled && c.Advanced.Echo.Delay <= 0 {
		return &ConfigError{Field: "echo", Message: "delay must be positive"}
	}
	if c.Instrument.Enabled {
		if c.Instrument.Note < 0 || c.Instrument.Note > 127 {
			return &ConfigError{Field: "instrument", Message: "note must be in 0-127"}
		}
		if c.Instrument.Velocity < 0 || c.Instrument.Velocity > 127 {
			return &ConfigError{Field: "instrument", Message: "velocity must be in 0-127"}
		}
	}
	return nil
}
