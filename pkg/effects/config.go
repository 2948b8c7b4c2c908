// Package effects implements the per-layer studio effects chain.
//
// The chain is the render core's default effects collaborator: a flat
// configuration of per-effect toggles and parameters, applied to a
// finished layer buffer in a fixed order with the limiter always last.
package effects

// Config holds the flat per-effect settings for one layer. The zero
// value disables everything; DefaultConfig supplies the usual
// parameter defaults with only the limiter armed.
type Config struct {
	Enabled bool

	ReverbEnabled  bool
	ReverbRoomSize float64 // 0-1
	ReverbDamping  float64 // 0-1
	ReverbWetLevel float64 // 0-1
	ReverbDryLevel float64 // 0-1

	DelayEnabled  bool
	DelayTime     float64 // seconds
	DelayFeedback float64 // 0-1
	DelayMix      float64 // 0-1

	DistortionEnabled bool
	DistortionDrive   float64 // dB

	ChorusEnabled  bool
	ChorusRate     float64 // Hz
	ChorusDepth    float64 // 0-1
	ChorusDelay    float64 // center delay, ms
	ChorusFeedback float64 // 0-1
	ChorusMix      float64 // 0-1

	PhaserEnabled   bool
	PhaserRate      float64 // Hz
	PhaserDepth     float64 // 0-1
	PhaserFrequency float64 // center Hz
	PhaserFeedback  float64 // 0-1
	PhaserMix       float64 // 0-1

	CompressorEnabled   bool
	CompressorThreshold float64 // dB
	CompressorRatio     float64 // n:1
	CompressorAttack    float64 // ms
	CompressorRelease   float64 // ms

	HighpassEnabled bool
	HighpassCutoff  float64 // Hz

	LowpassEnabled bool
	LowpassCutoff  float64 // Hz

	LimiterEnabled   bool
	LimiterThreshold float64 // dB
	LimiterRelease   float64 // ms
}

// DefaultConfig returns the chain's standard parameter values. The
// master toggle and every effect except the limiter start disabled.
func DefaultConfig() Config {
	return Config{
		Enabled: false,

		ReverbRoomSize: 0.5,
		ReverbDamping:  0.5,
		ReverbWetLevel: 0.3,
		ReverbDryLevel: 0.8,

		DelayTime:     0.5,
		DelayFeedback: 0.5,
		DelayMix:      0.5,

		DistortionDrive: 10.0,

		ChorusRate:     1.0,
		ChorusDepth:    0.25,
		ChorusDelay:    7.0,
		ChorusFeedback: 0.0,
		ChorusMix:      0.5,

		PhaserRate:      1.0,
		PhaserDepth:     0.5,
		PhaserFrequency: 1300.0,
		PhaserFeedback:  0.0,
		PhaserMix:       0.5,

		CompressorThreshold: -20.0,
		CompressorRatio:     4.0,
		CompressorAttack:    1.0,
		CompressorRelease:   100.0,

		HighpassCutoff: 80.0,
		LowpassCutoff:  8000.0,

		LimiterEnabled:   true,
		LimiterThreshold: -1.0,
		LimiterRelease:   100.0,
	}
}
