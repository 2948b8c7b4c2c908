package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kellylford/sounddesign/pkg/dsp"
	"github.com/kellylford/sounddesign/pkg/dsp/noise"
	"github.com/kellylford/sounddesign/pkg/dsp/oscillator"
	"github.com/kellylford/sounddesign/pkg/playback"
	"github.com/kellylford/sounddesign/pkg/render"
	"github.com/kellylford/sounddesign/pkg/wav"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sounddesign",
	Short: "Parametric sound synthesis and mixing",
	Long: `sounddesign renders parametric sounds: basic waveforms with
harmonics, blending and ADSR envelopes, plus FM, noise and
Karplus-Strong synthesis with tremolo and echo.`,
	Version: version,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a sound to a WAV file",
	Long: `Render a sound described by the flags to a mono 16-bit WAV file.

Examples:
  sounddesign render -o tone.wav --frequency 440 --wave sine
  sounddesign render -o pluck.wav --synthesis karplus --duration 2
  sounddesign render -o wind.wav --synthesis noise --noise pink --noise-filter lowpass --filter-high 800`,
	RunE: runRender,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Render a sound and play it",
	Long: `Render the sound described by the flags and play it through the
default audio device.

Example:
  sounddesign play --frequency 220 --wave square --blend --blend-ratio 0.5`,
	RunE: runPlay,
}

var (
	flagOutput   string
	flagVerbose  bool
	flagSeed     int64
	flagFreq     float64
	flagWave     string
	flagDuration float64
	flagVolume   float64

	flagAttack  float64
	flagDecay   float64
	flagSustain float64
	flagRelease float64

	flagHarmonics bool
	flagOctave    float64
	flagFifth     float64
	flagSubBass   float64

	flagBlend      bool
	flagBlendRatio float64

	flagSynthesis string
	flagFMRatio   float64
	flagFMIndex   float64

	flagNoise       string
	flagNoiseFilter string
	flagFilterLow   float64
	flagFilterHigh  float64

	flagLFO      bool
	flagLFORate  float64
	flagLFODepth float64
	flagLFOShape string

	flagEcho         bool
	flagEchoDelay    float64
	flagEchoFeedback float64
)

func init() {
	for _, cmd := range []*cobra.Command{renderCmd, playCmd} {
		f := cmd.Flags()
		f.Float64Var(&flagFreq, "frequency", 440.0, "frequency in Hz")
		f.StringVar(&flagWave, "wave", "sine", "waveform: sine, square, sawtooth, triangle")
		f.Float64Var(&flagDuration, "duration", 0.5, "duration in seconds")
		f.Float64Var(&flagVolume, "volume", 0.3, "layer volume 0-1")

		f.Float64Var(&flagAttack, "attack", 0.01, "envelope attack in seconds")
		f.Float64Var(&flagDecay, "decay", 0.1, "envelope decay in seconds")
		f.Float64Var(&flagSustain, "sustain", 0.7, "envelope sustain level 0-1")
		f.Float64Var(&flagRelease, "release", 0.15, "envelope release in seconds")

		f.BoolVar(&flagHarmonics, "harmonics", false, "add harmonic partials")
		f.Float64Var(&flagOctave, "octave", 0.3, "octave partial volume")
		f.Float64Var(&flagFifth, "fifth", 0.2, "fifth partial volume")
		f.Float64Var(&flagSubBass, "sub-bass", 0.0, "sub-bass partial volume")

		f.BoolVar(&flagBlend, "blend", false, "blend with the paired waveform")
		f.Float64Var(&flagBlendRatio, "blend-ratio", 0.5, "blend ratio 0-1")

		f.StringVar(&flagSynthesis, "synthesis", "waveform", "synthesis mode: waveform, fm, noise, karplus")
		f.Float64Var(&flagFMRatio, "fm-ratio", 1.4, "FM modulator frequency ratio")
		f.Float64Var(&flagFMIndex, "fm-index", 5.0, "FM modulation index")

		f.StringVar(&flagNoise, "noise", "white", "noise type: white, pink, brown")
		f.StringVar(&flagNoiseFilter, "noise-filter", "off", "noise filter: off, bandpass, lowpass, highpass")
		f.Float64Var(&flagFilterLow, "filter-low", 200.0, "filter low cutoff in Hz")
		f.Float64Var(&flagFilterHigh, "filter-high", 2000.0, "filter high cutoff in Hz")

		f.BoolVar(&flagLFO, "lfo", false, "apply tremolo")
		f.Float64Var(&flagLFORate, "lfo-rate", 5.0, "tremolo rate in Hz")
		f.Float64Var(&flagLFODepth, "lfo-depth", 0.3, "tremolo depth 0-1")
		f.StringVar(&flagLFOShape, "lfo-shape", "sine", "tremolo LFO shape")

		f.BoolVar(&flagEcho, "echo", false, "apply echo")
		f.Float64Var(&flagEchoDelay, "echo-delay", 0.3, "echo delay in seconds")
		f.Float64Var(&flagEchoFeedback, "echo-feedback", 0.4, "echo feedback 0-1")

		f.Int64Var(&flagSeed, "seed", 1, "seed for noise and pluck excitation")
		f.BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
	}

	renderCmd.Flags().StringVarP(&flagOutput, "output", "o", "out.wav", "output WAV path")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(playCmd)
}

func buildLayer() (render.LayerConfig, error) {
	layer := render.BlankLayer()
	layer.Frequency = flagFreq
	layer.Duration = flagDuration
	layer.Volume = flagVolume

	shape, err := oscillator.ParseShape(flagWave)
	if err != nil {
		return layer, err
	}
	layer.Wave = shape

	layer.Envelope.Attack = flagAttack
	layer.Envelope.Decay = flagDecay
	layer.Envelope.Sustain = flagSustain
	layer.Envelope.Release = flagRelease

	layer.Harmonics = render.HarmonicsConfig{
		Enabled: flagHarmonics,
		Octave:  flagOctave,
		Fifth:   flagFifth,
		SubBass: flagSubBass,
	}
	layer.Blending = render.BlendConfig{Enabled: flagBlend, Ratio: flagBlendRatio}

	mode, err := render.ParseSynthesisMode(flagSynthesis)
	if err != nil {
		return layer, err
	}
	layer.Advanced.Synthesis = mode
	layer.Advanced.FMModRatio = flagFMRatio
	layer.Advanced.FMModIndex = flagFMIndex

	noiseType, err := noise.ParseType(flagNoise)
	if err != nil {
		return layer, err
	}
	layer.Advanced.NoiseType = noiseType

	switch flagNoiseFilter {
	case "off":
		layer.Advanced.NoiseFilter.Enabled = false
	case "bandpass":
		layer.Advanced.NoiseFilter = render.FilterConfig{
			Enabled: true, Type: render.FilterBandpass,
			Low: flagFilterLow, High: flagFilterHigh,
		}
	case "lowpass":
		layer.Advanced.NoiseFilter = render.FilterConfig{
			Enabled: true, Type: render.FilterLowpass, High: flagFilterHigh,
		}
	case "highpass":
		layer.Advanced.NoiseFilter = render.FilterConfig{
			Enabled: true, Type: render.FilterHighpass, Low: flagFilterLow,
		}
	default:
		return layer, fmt.Errorf("unknown noise filter %q", flagNoiseFilter)
	}

	lfoShape, err := oscillator.ParseShape(flagLFOShape)
	if err != nil {
		return layer, err
	}
	layer.Advanced.LFO = render.LFOConfig{
		Enabled:   flagLFO,
		Frequency: flagLFORate,
		Depth:     flagLFODepth,
		Shape:     lfoShape,
	}
	layer.Advanced.Echo = render.EchoConfig{
		Enabled:  flagEcho,
		Delay:    flagEchoDelay,
		Feedback: flagEchoFeedback,
	}

	return layer, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func renderFromFlags() ([]float32, *slog.Logger, error) {
	logger := newLogger()

	layer, err := buildLayer()
	if err != nil {
		return nil, logger, err
	}

	r := render.NewRenderer(dsp.SampleRate,
		render.WithLogger(logger),
		render.WithSeed(flagSeed))

	out, err := r.RenderDocument(render.Document{Layers: []render.LayerConfig{layer}})
	if err != nil {
		return nil, logger, err
	}
	return out, logger, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	out, logger, err := renderFromFlags()
	if err != nil {
		return err
	}

	f, err := os.Create(flagOutput)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := wav.Encode(f, out, int(dsp.SampleRate)); err != nil {
		return err
	}

	logger.Info("wrote output", "path", flagOutput, "samples", len(out))
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	out, logger, err := renderFromFlags()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("playing", "samples", len(out))
	return playback.Play(ctx, out, int(dsp.SampleRate))
}
