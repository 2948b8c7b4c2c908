package effects

import "github.com/kellylford/sounddesign/pkg/dsp/delay"

// FeedbackDelay is a wet/dry feedback delay built on a delay line.
// Unlike the offline echo in the dsp delay package it is a streaming
// effect with an explicit mix control.
type FeedbackDelay struct {
	line         *delay.Line
	delaySamples float64
	feedback     float64
	mix          float64
}

// NewFeedbackDelay creates a delay with the time in seconds and
// feedback and mix in 0-1.
func NewFeedbackDelay(sampleRate, delaySeconds, feedback, mix float64) *FeedbackDelay {
	return &FeedbackDelay{
		line:         delay.NewLine(delaySeconds, sampleRate),
		delaySamples: delaySeconds * sampleRate,
		feedback:     clamp01(feedback),
		mix:          clamp01(mix),
	}
}

// Process runs the delay over a buffer in place
func (f *FeedbackDelay) Process(buf []float32) {
	if f.delaySamples < 1 {
		return
	}
	for i := range buf {
		wet := f.line.Read(f.delaySamples)
		f.line.Write(buf[i] + wet*float32(f.feedback))

		buf[i] = buf[i]*float32(1.0-f.mix) + wet*float32(f.mix)
	}
}
