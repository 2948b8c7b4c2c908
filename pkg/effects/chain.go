package effects

import (
	"fmt"

	"github.com/kellylford/sounddesign/pkg/dsp/filter"
)

// Chain applies the configured effects to a rendered buffer in a
// fixed order: reverb, delay, distortion, chorus, phaser, compressor,
// highpass, lowpass, limiter. The limiter runs last so nothing after
// it can push the signal back over the ceiling.
type Chain struct {
	sampleRate float64
}

// NewChain creates an effects chain for the given sample rate
func NewChain(sampleRate float64) *Chain {
	return &Chain{sampleRate: sampleRate}
}

// SampleRate returns the chain's sample rate
func (c *Chain) SampleRate() float64 {
	return c.sampleRate
}

// validate rejects parameter values the enabled effects cannot run
// with. It runs before any effect touches the buffer, so a failed
// Process leaves the input unchanged.
func (c *Chain) validate(cfg Config) error {
	if cfg.DelayEnabled && cfg.DelayTime <= 0 {
		return fmt.Errorf("effects: delay time %g must be positive", cfg.DelayTime)
	}
	if cfg.ChorusEnabled && cfg.ChorusDelay <= 0 {
		return fmt.Errorf("effects: chorus delay %g must be positive", cfg.ChorusDelay)
	}
	nyquist := c.sampleRate / 2
	if cfg.HighpassEnabled && (cfg.HighpassCutoff <= 0 || cfg.HighpassCutoff >= nyquist) {
		return fmt.Errorf("effects: highpass cutoff %g out of range", cfg.HighpassCutoff)
	}
	if cfg.LowpassEnabled && (cfg.LowpassCutoff <= 0 || cfg.LowpassCutoff >= nyquist) {
		return fmt.Errorf("effects: lowpass cutoff %g out of range", cfg.LowpassCutoff)
	}
	return nil
}

// Process applies every enabled effect in cfg to buf in place. It is
// a no-op unless cfg.Enabled is set. Each call starts from clean
// effect state, so layers never bleed into each other.
func (c *Chain) Process(buf []float32, cfg Config) error {
	if !cfg.Enabled || len(buf) == 0 {
		return nil
	}
	if err := c.validate(cfg); err != nil {
		return err
	}

	if cfg.ReverbEnabled {
		NewReverb(c.sampleRate, cfg.ReverbRoomSize, cfg.ReverbDamping,
			cfg.ReverbWetLevel, cfg.ReverbDryLevel).Process(buf)
	}

	if cfg.DelayEnabled {
		NewFeedbackDelay(c.sampleRate, cfg.DelayTime, cfg.DelayFeedback,
			cfg.DelayMix).Process(buf)
	}

	if cfg.DistortionEnabled {
		NewDistortion(cfg.DistortionDrive).Process(buf)
	}

	if cfg.ChorusEnabled {
		NewChorus(c.sampleRate, cfg.ChorusRate, cfg.ChorusDepth,
			cfg.ChorusDelay, cfg.ChorusFeedback, cfg.ChorusMix).Process(buf)
	}

	if cfg.PhaserEnabled {
		NewPhaser(c.sampleRate, cfg.PhaserRate, cfg.PhaserDepth,
			cfg.PhaserFrequency, cfg.PhaserFeedback, cfg.PhaserMix).Process(buf)
	}

	if cfg.CompressorEnabled {
		NewCompressor(c.sampleRate, cfg.CompressorThreshold, cfg.CompressorRatio,
			cfg.CompressorAttack, cfg.CompressorRelease).Process(buf)
	}

	if cfg.HighpassEnabled {
		hp := filter.NewBiquad()
		hp.SetHighpass(c.sampleRate, cfg.HighpassCutoff, 0.7071)
		hp.Process(buf)
	}

	if cfg.LowpassEnabled {
		lp := filter.NewBiquad()
		lp.SetLowpass(c.sampleRate, cfg.LowpassCutoff, 0.7071)
		lp.Process(buf)
	}

	if cfg.LimiterEnabled {
		NewLimiter(c.sampleRate, cfg.LimiterThreshold,
			cfg.LimiterRelease).Process(buf)
	}

	return nil
}
