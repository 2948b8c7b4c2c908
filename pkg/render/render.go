package render

import (
	"log/slog"

	"github.com/kellylford/sounddesign/pkg/dsp"
	"github.com/kellylford/sounddesign/pkg/dsp/delay"
	"github.com/kellylford/sounddesign/pkg/dsp/envelope"
	"github.com/kellylford/sounddesign/pkg/dsp/harmonics"
	"github.com/kellylford/sounddesign/pkg/dsp/karplus"
	"github.com/kellylford/sounddesign/pkg/dsp/mix"
	"github.com/kellylford/sounddesign/pkg/dsp/modulation"
	"github.com/kellylford/sounddesign/pkg/dsp/noise"
	"github.com/kellylford/sounddesign/pkg/dsp/oscillator"
	"github.com/kellylford/sounddesign/pkg/dsp/spectral"
	"github.com/kellylford/sounddesign/pkg/effects"
	"github.com/kellylford/sounddesign/pkg/instrument"
)

// EffectsProcessor applies an effects configuration to a buffer in
// place. The effects chain is the production implementation; external
// collaborators report failure through the error, and the renderer
// falls back to the unprocessed layer.
type EffectsProcessor interface {
	Process(buf []float32, cfg effects.Config) error
}

// Renderer turns layer configurations into sample buffers
type Renderer struct {
	sampleRate float64
	log        *slog.Logger
	seed       int64

	osc      *oscillator.Generator
	env      *envelope.Shaper
	spectral *spectral.Filter
	effects  EffectsProcessor
	inst     instrument.NoteRenderer
}

// Option configures a Renderer
type Option func(*Renderer)

// WithLogger sets the renderer's logger
func WithLogger(log *slog.Logger) Option {
	return func(r *Renderer) { r.log = log }
}

// WithInstrument sets the note renderer used for instrument layers
func WithInstrument(inst instrument.NoteRenderer) Option {
	return func(r *Renderer) { r.inst = inst }
}

// WithEffects sets the effects processor applied per layer
func WithEffects(fx EffectsProcessor) Option {
	return func(r *Renderer) { r.effects = fx }
}

// WithSeed fixes the seed for noise and Karplus excitation, making
// renders reproducible.
func WithSeed(seed int64) Option {
	return func(r *Renderer) { r.seed = seed }
}

// NewRenderer creates a renderer at the given sample rate. By default
// it logs through slog's default handler, runs the standard effects
// chain, and renders instrument layers with the built-in plucked
// string.
func NewRenderer(sampleRate float64, opts ...Option) *Renderer {
	r := &Renderer{
		sampleRate: sampleRate,
		log:        slog.Default(),
		seed:       1,
		osc:        oscillator.New(sampleRate),
		env:        envelope.New(sampleRate),
		spectral:   spectral.New(sampleRate),
		effects:    effects.NewChain(sampleRate),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.inst == nil {
		r.inst = instrument.NewPluckedString(sampleRate, r.seed)
	}
	return r
}

// SampleRate returns the renderer's sample rate
func (r *Renderer) SampleRate() float64 {
	return r.sampleRate
}

// RenderLayer renders one layer without its volume or effects, which
// apply at document level. The pipeline is: source (waveform with
// harmonics and blending, FM, filtered noise, Karplus, or an
// instrument note), then envelope, then tremolo, then echo.
func (r *Renderer) RenderLayer(layer LayerConfig) ([]float32, error) {
	if err := layer.Validate(); err != nil {
		return nil, err
	}

	n := dsp.Samples(layer.Duration)
	if n == 0 {
		return []float32{}, nil
	}

	buf := r.renderSource(layer, n)

	r.env.Apply(buf, layer.Envelope)

	if layer.Advanced.LFO.Enabled {
		lfo := modulation.NewLFO(r.sampleRate, layer.Advanced.LFO.Shape, layer.Advanced.LFO.Frequency)
		modulation.Tremolo(buf, lfo, layer.Advanced.LFO.Depth)
	}

	if layer.Advanced.Echo.Enabled {
		delay.Echo(buf, layer.Advanced.Echo.Delay, layer.Advanced.Echo.Feedback, r.sampleRate)
	}

	return buf, nil
}

// renderSource produces the layer's raw signal before the envelope
func (r *Renderer) renderSource(layer LayerConfig, n int) []float32 {
	if layer.Instrument.Enabled {
		if buf, ok := r.renderInstrument(layer, n); ok {
			return buf
		}
	}

	switch layer.Advanced.Synthesis {
	case SynthFM:
		return r.osc.RenderFM(n, layer.Frequency, layer.Advanced.FMModRatio, layer.Advanced.FMModIndex)

	case SynthNoise:
		buf := make([]float32, n)
		noise.New(r.seed).Generate(buf, layer.Advanced.NoiseType)
		if f := layer.Advanced.NoiseFilter; f.Enabled {
			switch f.Type {
			case FilterLowpass:
				r.spectral.Lowpass(buf, f.High)
			case FilterHighpass:
				r.spectral.Highpass(buf, f.Low)
			default:
				r.spectral.Bandpass(buf, f.Low, f.High)
			}
		}
		return buf

	case SynthKarplus:
		return karplus.New(r.sampleRate, r.seed).Render(n, layer.Frequency)

	default:
		return r.renderWaveform(layer, n)
	}
}

// renderWaveform produces the basic oscillator signal with optional
// harmonics and blending.
func (r *Renderer) renderWaveform(layer LayerConfig, n int) []float32 {
	buf := r.osc.Render(n, layer.Wave, layer.Frequency)

	if layer.Harmonics.Enabled {
		harmonics.Apply(buf, r.osc, layer.Wave, layer.Frequency, harmonics.Config{
			OctaveVolume:  layer.Harmonics.Octave,
			FifthVolume:   layer.Harmonics.Fifth,
			SubBassVolume: layer.Harmonics.SubBass,
		})
	}

	if layer.Blending.Enabled {
		if partner, ok := mix.BlendPair(layer.Wave); ok {
			secondary := r.osc.Render(n, partner, layer.Frequency)
			mix.CrossfadeLinear(buf, secondary, float32(layer.Blending.Ratio))
		}
	}

	return buf
}

// renderInstrument tries the note renderer, falling back to synthesis
// when it cannot serve the request.
func (r *Renderer) renderInstrument(layer LayerConfig, n int) ([]float32, bool) {
	note := layer.Instrument.Note
	if layer.Instrument.UseFrequency {
		note = instrument.FrequencyToMIDI(layer.Frequency)
	}

	buf, err := r.inst.RenderNote(note, layer.Instrument.Velocity, layer.Duration,
		layer.Instrument.Program, layer.Instrument.Bank)
	if err != nil {
		r.log.Warn("instrument unavailable, falling back to synthesis",
			"note", note, "error", err)
		return nil, false
	}

	// Renderers may round duration differently
	if len(buf) > n {
		buf = buf[:n]
	} else if len(buf) < n {
		buf = dsp.ZeroPad(buf, n)
	}
	return buf, true
}

// applyEffects runs the effects processor over a copy of buf and
// keeps the original when the processor fails, so a misbehaving
// collaborator degrades the layer instead of corrupting it.
func (r *Renderer) applyEffects(buf []float32, cfg effects.Config) []float32 {
	processed := make([]float32, len(buf))
	copy(processed, buf)

	if err := r.effects.Process(processed, cfg); err != nil {
		r.log.Warn("effects chain failed, using unprocessed layer", "error", err)
		return buf
	}
	return processed
}

// RenderDocument renders every layer, applies per-layer volume and
// effects, and combines the results according to the document's mix
// mode. Rendering an empty document returns nil.
func (r *Renderer) RenderDocument(doc Document) ([]float32, error) {
	if len(doc.Layers) == 0 {
		return nil, nil
	}

	buffers := make([][]float32, 0, len(doc.Layers))
	for i, layer := range doc.Layers {
		buf, err := r.RenderLayer(layer)
		if err != nil {
			return nil, err
		}

		dsp.Scale(buf, float32(layer.Volume))
		buf = r.applyEffects(buf, layer.Effects)

		r.log.Debug("rendered layer",
			"index", i, "name", layer.Name, "samples", len(buf))
		buffers = append(buffers, buf)
	}

	if doc.Mode == MixSequential {
		return mix.Sequential(buffers), nil
	}
	return mix.Simultaneous(buffers), nil
}
