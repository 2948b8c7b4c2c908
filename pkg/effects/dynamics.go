package effects

import "math"

// follower is a one-pole peak envelope follower with separate attack
// and release time constants.
type follower struct {
	attackCoef  float64
	releaseCoef float64
	envelope    float64
}

func newFollower(sampleRate, attackMs, releaseMs float64) *follower {
	return &follower{
		attackCoef:  timeCoef(sampleRate, attackMs),
		releaseCoef: timeCoef(sampleRate, releaseMs),
	}
}

// timeCoef converts a time constant in milliseconds to a one-pole
// smoothing coefficient. Zero or negative times give instant response.
func timeCoef(sampleRate, ms float64) float64 {
	if ms <= 0 {
		return 0
	}
	return math.Exp(-1.0 / (ms / 1000.0 * sampleRate))
}

func (f *follower) detect(input float32) float64 {
	level := math.Abs(float64(input))
	if level > f.envelope {
		f.envelope = level + f.attackCoef*(f.envelope-level)
	} else {
		f.envelope = level + f.releaseCoef*(f.envelope-level)
	}
	return f.envelope
}

// Compressor implements a feed-forward hard-knee compressor
type Compressor struct {
	threshold float64 // dB
	ratio     float64
	detector  *follower
}

// NewCompressor creates a compressor with the threshold in dB, ratio
// as n:1, and attack/release in milliseconds.
func NewCompressor(sampleRate, thresholdDB, ratio, attackMs, releaseMs float64) *Compressor {
	return &Compressor{
		threshold: thresholdDB,
		ratio:     math.Max(1.0, ratio),
		detector:  newFollower(sampleRate, attackMs, releaseMs),
	}
}

// ProcessSample compresses one sample
func (c *Compressor) ProcessSample(input float32) float32 {
	envelope := c.detector.detect(input)

	inputDB := -96.0
	if envelope > 0 {
		inputDB = 20.0 * math.Log10(envelope)
	}

	if inputDB <= c.threshold {
		return input
	}

	// reduction = (input - threshold) * (1 - 1/ratio)
	reductionDB := (inputDB - c.threshold) * (1.0 - 1.0/c.ratio)
	gain := math.Pow(10.0, -reductionDB/20.0)

	return input * float32(gain)
}

// Process compresses a buffer in place
func (c *Compressor) Process(buf []float32) {
	for i := range buf {
		buf[i] = c.ProcessSample(buf[i])
	}
}

// Limiter is a brick-wall limiter with instant attack
type Limiter struct {
	ceiling  float64 // linear
	detector *follower
}

// NewLimiter creates a limiter with the ceiling in dB (at most 0) and
// release in milliseconds.
func NewLimiter(sampleRate, thresholdDB, releaseMs float64) *Limiter {
	return &Limiter{
		ceiling:  math.Pow(10.0, math.Min(0.0, thresholdDB)/20.0),
		detector: newFollower(sampleRate, 0, releaseMs),
	}
}

// ProcessSample limits one sample
func (l *Limiter) ProcessSample(input float32) float32 {
	envelope := l.detector.detect(input)

	gain := 1.0
	if envelope > l.ceiling {
		gain = l.ceiling / envelope
	}

	return input * float32(gain)
}

// Process limits a buffer in place
func (l *Limiter) Process(buf []float32) {
	for i := range buf {
		buf[i] = l.ProcessSample(buf[i])
	}
}
