package render

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/kellylford/sounddesign/pkg/dsp"
	"github.com/kellylford/sounddesign/pkg/dsp/harmonics"
	"github.com/kellylford/sounddesign/pkg/dsp/oscillator"
	"github.com/kellylford/sounddesign/pkg/effects"
	"github.com/kellylford/sounddesign/pkg/instrument"
)

func testRenderer(opts ...Option) *Renderer {
	base := []Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithSeed(1),
	}
	return NewRenderer(dsp.SampleRate, append(base, opts...)...)
}

func peak(buf []float32) float64 {
	var p float64
	for _, v := range buf {
		if a := math.Abs(float64(v)); a > p {
			p = a
		}
	}
	return p
}

func TestRenderPlainSine(t *testing.T) {
	layer := BlankLayer()
	layer.Duration = 1.0

	buf, err := testRenderer().RenderLayer(layer)
	if err != nil {
		t.Fatalf("RenderLayer: %v", err)
	}

	if len(buf) != 44100 {
		t.Fatalf("length %d, want 44100", len(buf))
	}
	if got := math.Abs(float64(buf[0])); got > 1e-6 {
		t.Errorf("sine starts at %f, want 0", got)
	}
	// First positive peak of 440Hz lands near sample 25
	if got := float64(buf[25]); got < 0.999 {
		t.Errorf("quarter-period sample %f, want about 1", got)
	}
	if p := peak(buf); p < 0.999 || p > 1.0 {
		t.Errorf("peak %f, want 1", p)
	}
}

func TestRenderRejectsInvalidLayer(t *testing.T) {
	r := testRenderer()

	bad := BlankLayer()
	bad.Frequency = 0
	if _, err := r.RenderLayer(bad); err == nil {
		t.Error("expected error for zero frequency")
	}

	bad = BlankLayer()
	bad.Duration = -1
	if _, err := r.RenderLayer(bad); err == nil {
		t.Error("expected error for negative duration")
	}

	bad = BlankLayer()
	bad.Volume = 1.5
	if _, err := r.RenderLayer(bad); err == nil {
		t.Error("expected error for volume above 1")
	}
}

func TestRenderZeroDurationLayer(t *testing.T) {
	layer := BlankLayer()
	layer.Duration = 0

	buf, err := testRenderer().RenderLayer(layer)
	if err != nil {
		t.Fatalf("RenderLayer: %v", err)
	}
	if len(buf) != 0 {
		t.Errorf("zero duration gave %d samples", len(buf))
	}
}

func TestEnvelopeShapesLayer(t *testing.T) {
	layer := BlankLayer()
	layer.Duration = 1.0
	layer.Envelope.Attack = 0.1
	layer.Envelope.Decay = 0.1
	layer.Envelope.Sustain = 0.5
	layer.Envelope.Release = 0.1

	buf, err := testRenderer().RenderLayer(layer)
	if err != nil {
		t.Fatalf("RenderLayer: %v", err)
	}

	// Attack starts from silence and the release ends in silence
	if got := peak(buf[:100]); got > 0.05 {
		t.Errorf("early attack peak %f, want near 0", got)
	}
	if got := peak(buf[len(buf)-50:]); got > 0.05 {
		t.Errorf("tail peak %f, want near 0", got)
	}
	// The sustain region sits at half level
	if got := peak(buf[22050 : 22050+1000]); math.Abs(got-0.5) > 0.05 {
		t.Errorf("sustain peak %f, want 0.5", got)
	}
}

func TestHarmonicsMatchManualMix(t *testing.T) {
	layer := BlankLayer()
	layer.Frequency = 110
	layer.Harmonics = HarmonicsConfig{Enabled: true, Octave: 0.3, Fifth: 0.2, SubBass: 0.1}

	buf, err := testRenderer().RenderLayer(layer)
	if err != nil {
		t.Fatalf("RenderLayer: %v", err)
	}

	osc := oscillator.New(dsp.SampleRate)
	want := osc.Render(len(buf), oscillator.Sine, 110)
	harmonics.Apply(want, osc, oscillator.Sine, 110, harmonics.Config{
		OctaveVolume:  0.3,
		FifthVolume:   0.2,
		SubBassVolume: 0.1,
	})

	for i := range buf {
		if buf[i] != want[i] {
			t.Fatalf("harmonic mix differs at sample %d: %v vs %v", i, buf[i], want[i])
		}
	}
}

func TestHarmonicsKeepLayerBounded(t *testing.T) {
	layer := BlankLayer()
	layer.Harmonics = HarmonicsConfig{Enabled: true, Octave: 0.5, Fifth: 0.3, SubBass: 0.4}

	buf, err := testRenderer().RenderLayer(layer)
	if err != nil {
		t.Fatalf("RenderLayer: %v", err)
	}
	if p := peak(buf); p > 1.0 {
		t.Errorf("harmonics peak %f, want <= 1", p)
	}
}

func TestBlendingMatchesManualCrossfade(t *testing.T) {
	r := testRenderer()

	layer := BlankLayer()
	layer.Wave = oscillator.Square
	layer.Blending = BlendConfig{Enabled: true, Ratio: 0.25}

	buf, err := r.RenderLayer(layer)
	if err != nil {
		t.Fatalf("RenderLayer: %v", err)
	}

	osc := oscillator.New(dsp.SampleRate)
	square := osc.Render(len(buf), oscillator.Square, 440)
	triangle := osc.Render(len(buf), oscillator.Triangle, 440)

	for i := range buf {
		want := square[i]*0.75 + triangle[i]*0.25
		if math.Abs(float64(buf[i]-want)) > 1e-6 {
			t.Fatalf("sample %d: got %v want %v", i, buf[i], want)
		}
	}
}

func TestBlendingIgnoredForUnpairedWave(t *testing.T) {
	r := testRenderer()

	plain := BlankLayer()

	blended := BlankLayer()
	blended.Blending = BlendConfig{Enabled: true, Ratio: 0.5}

	a, err := r.RenderLayer(plain)
	if err != nil {
		t.Fatalf("RenderLayer: %v", err)
	}
	b, err := r.RenderLayer(blended)
	if err != nil {
		t.Fatalf("RenderLayer: %v", err)
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sine layer changed by blending at sample %d", i)
		}
	}
}

func TestFMSynthesis(t *testing.T) {
	layer := BlankLayer()
	layer.Advanced.Synthesis = SynthFM
	layer.Advanced.FMModRatio = 1.4
	layer.Advanced.FMModIndex = 5.0

	buf, err := testRenderer().RenderLayer(layer)
	if err != nil {
		t.Fatalf("RenderLayer: %v", err)
	}
	if len(buf) != 22050 {
		t.Fatalf("length %d, want 22050", len(buf))
	}
	if p := peak(buf); p > 1.0 {
		t.Errorf("FM peak %f, want <= 1", p)
	}
}

func TestNoiseSynthesisWithFilter(t *testing.T) {
	layer := BlankLayer()
	layer.Advanced.Synthesis = SynthNoise
	layer.Advanced.NoiseFilter.Enabled = true

	buf, err := testRenderer().RenderLayer(layer)
	if err != nil {
		t.Fatalf("RenderLayer: %v", err)
	}
	if len(buf) != 22050 {
		t.Fatalf("length %d, want 22050", len(buf))
	}
	if p := peak(buf); p == 0 {
		t.Error("filtered noise is silent")
	}
}

func TestKarplusSynthesisDecays(t *testing.T) {
	layer := BlankLayer()
	layer.Duration = 1.0
	layer.Advanced.Synthesis = SynthKarplus

	buf, err := testRenderer().RenderLayer(layer)
	if err != nil {
		t.Fatalf("RenderLayer: %v", err)
	}

	early := peak(buf[:4410])
	late := peak(buf[len(buf)-4410:])
	if late >= early {
		t.Errorf("pluck did not decay: early %f late %f", early, late)
	}
}

func TestTremoloModulatesAmplitude(t *testing.T) {
	r := testRenderer()

	layer := BlankLayer()
	layer.Duration = 1.0
	layer.Advanced.LFO = LFOConfig{Enabled: true, Frequency: 2.0, Depth: 1.0, Shape: oscillator.Sine}

	buf, err := r.RenderLayer(layer)
	if err != nil {
		t.Fatalf("RenderLayer: %v", err)
	}

	// At depth 1 a 2Hz LFO silences the signal three quarters of the
	// way through its cycle (gain = 1 + sin(3π/2) = 0)
	trough := int(0.75*dsp.SampleRate) / 2
	if got := peak(buf[trough-10 : trough+10]); got > 0.05 {
		t.Errorf("LFO trough peak %f, want near 0", got)
	}
	if got := peak(buf); got < 1.5 {
		t.Errorf("LFO crest peak %f, want near 2", got)
	}
}

func TestEchoPreservesLength(t *testing.T) {
	layer := BlankLayer()
	layer.Advanced.Echo = EchoConfig{Enabled: true, Delay: 0.1, Feedback: 0.5}

	buf, err := testRenderer().RenderLayer(layer)
	if err != nil {
		t.Fatalf("RenderLayer: %v", err)
	}
	if len(buf) != 22050 {
		t.Fatalf("length %d, want 22050", len(buf))
	}
	if p := peak(buf); p > 1.0 {
		t.Errorf("echo peak %f, want <= 1", p)
	}
}

// failingInstrument always reports unavailable
type failingInstrument struct{}

func (failingInstrument) RenderNote(note, velocity int, duration float64, program, bank int) ([]float32, error) {
	return nil, instrument.ErrUnavailable
}

func TestInstrumentFallbackToSynthesis(t *testing.T) {
	r := testRenderer(WithInstrument(failingInstrument{}))

	layer := BlankLayer()
	layer.Instrument.Enabled = true

	buf, err := r.RenderLayer(layer)
	if err != nil {
		t.Fatalf("RenderLayer: %v", err)
	}

	want, err := testRenderer().RenderLayer(BlankLayer())
	if err != nil {
		t.Fatalf("RenderLayer: %v", err)
	}
	for i := range buf {
		if buf[i] != want[i] {
			t.Fatalf("fallback differs from plain synthesis at sample %d", i)
		}
	}
}

func TestInstrumentRendersThroughPluckedString(t *testing.T) {
	r := testRenderer()

	layer := BlankLayer()
	layer.Instrument.Enabled = true
	layer.Instrument.UseFrequency = false
	layer.Instrument.Note = 60

	buf, err := r.RenderLayer(layer)
	if err != nil {
		t.Fatalf("RenderLayer: %v", err)
	}
	if len(buf) != 22050 {
		t.Fatalf("length %d, want 22050", len(buf))
	}

	// A plucked note decays; a raw sine does not
	early := peak(buf[:4410])
	late := peak(buf[len(buf)-4410:])
	if late >= early {
		t.Errorf("instrument note did not decay: early %f late %f", early, late)
	}
}

// failingEffects reports failure without touching the buffer
type failingEffects struct{}

func (failingEffects) Process(buf []float32, cfg effects.Config) error {
	return errors.New("effects backend missing")
}

// mutingEffects silences the buffer to prove it ran
type mutingEffects struct{}

func (mutingEffects) Process(buf []float32, cfg effects.Config) error {
	for i := range buf {
		buf[i] = 0
	}
	return nil
}

func TestEffectsFailureFallsBackToUnprocessed(t *testing.T) {
	layer := BlankLayer()
	layer.Volume = 0.3
	doc := Document{Layers: []LayerConfig{layer}}

	broken, err := testRenderer(WithEffects(failingEffects{})).RenderDocument(doc)
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}

	want, err := testRenderer().RenderDocument(doc)
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}

	// The default chain is disabled by config, so the failing
	// collaborator must yield the same unprocessed output
	if len(broken) != len(want) {
		t.Fatalf("length mismatch: %d vs %d", len(broken), len(want))
	}
	for i := range broken {
		if broken[i] != want[i] {
			t.Fatalf("failed collaborator altered sample %d: %v vs %v",
				i, broken[i], want[i])
		}
	}
}

func TestEffectsSuccessReplacesLayer(t *testing.T) {
	layer := BlankLayer()
	layer.Volume = 0.3

	out, err := testRenderer(WithEffects(mutingEffects{})).RenderDocument(
		Document{Layers: []LayerConfig{layer}})
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}

	if got := peak(out); got != 0 {
		t.Errorf("muting collaborator left peak %f, want 0", got)
	}
}

func TestDocumentSimultaneousIdenticalLayers(t *testing.T) {
	r := testRenderer()

	layer := BlankLayer()
	layer.Volume = 0.3

	single, err := r.RenderDocument(Document{Layers: []LayerConfig{layer}})
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}

	triple, err := r.RenderDocument(Document{
		Layers: []LayerConfig{layer, layer, layer},
	})
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}

	if len(single) != len(triple) {
		t.Fatalf("lengths differ: %d vs %d", len(single), len(triple))
	}
	for i := range single {
		if math.Abs(float64(single[i]-triple[i])) > 1e-6 {
			t.Fatalf("averaging identical layers changed sample %d: %v vs %v",
				i, single[i], triple[i])
		}
	}
}

func TestDocumentSequentialConcatenates(t *testing.T) {
	r := testRenderer()

	first := BlankLayer()
	first.Volume = 0.3

	second := BlankLayer()
	second.Duration = 1.0
	second.Frequency = 220
	second.Volume = 0.3

	out, err := r.RenderDocument(Document{
		Layers: []LayerConfig{first, second},
		Mode:   MixSequential,
	})
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}

	if len(out) != 22050+44100 {
		t.Fatalf("length %d, want 66150", len(out))
	}

	// Each segment is the layer rendered on its own
	a, _ := r.RenderLayer(first)
	for i := range a {
		if math.Abs(float64(out[i]-a[i]*0.3)) > 1e-6 {
			t.Fatalf("first segment differs at sample %d", i)
		}
	}
}

func TestDocumentMixedDurationsPadToLongest(t *testing.T) {
	r := testRenderer()

	short := BlankLayer()
	short.Volume = 0.5

	long := BlankLayer()
	long.Duration = 1.0
	long.Volume = 0.5

	out, err := r.RenderDocument(Document{Layers: []LayerConfig{short, long}})
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	if len(out) != 44100 {
		t.Fatalf("length %d, want longest layer 44100", len(out))
	}
}

func TestDocumentEmptyReturnsNil(t *testing.T) {
	out, err := testRenderer().RenderDocument(Document{})
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	if out != nil {
		t.Errorf("empty document gave %d samples, want nil", len(out))
	}
}

func TestDocumentOutputBounded(t *testing.T) {
	r := testRenderer()

	loud := BlankLayer()
	loud.Volume = 1.0

	out, err := r.RenderDocument(Document{
		Layers: []LayerConfig{loud, loud, loud},
	})
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}

	if p := peak(out); p > 0.8+1e-6 {
		t.Errorf("mixed peak %f, want <= 0.8 headroom", p)
	}
}
