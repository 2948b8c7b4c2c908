// Package karplus implements Karplus-Strong plucked-string synthesis.
//
// A delay line one period long is seeded with a noise burst. Each
// output sample is read from the head of the line while a damped
// average of the first two samples is fed back to the tail, so the
// burst decays into a string-like tone at the line's resonant
// frequency.
package karplus

import "math/rand"

// damping applied to the two-sample average on every pass through the
// delay line; values below 1 make the string decay.
const damping = 0.996

// Synth renders plucked-string tones at a fixed sample rate
type Synth struct {
	sampleRate float64
	rand       *rand.Rand
}

// New creates a Karplus-Strong synth with the given seed
func New(sampleRate float64, seed int64) *Synth {
	return &Synth{
		sampleRate: sampleRate,
		rand:       rand.New(rand.NewSource(seed)),
	}
}

// Pluck fills dst with a plucked string at the given frequency. The
// delay line length round(sampleRate/freq) sets the pitch; frequencies
// so high that the line would hold fewer than two samples are a
// caller-side domain violation.
func (s *Synth) Pluck(dst []float32, freq float64) {
	delayLen := int(s.sampleRate/freq + 0.5)
	if delayLen < 2 {
		delayLen = 2
	}

	line := make([]float32, delayLen)
	for i := range line {
		line[i] = float32(s.rand.Float64()*2 - 1)
	}

	// head indexes the rotating line; head+1 is the neighbor used for
	// the low-pass feedback average
	head := 0
	for i := range dst {
		dst[i] = line[head]

		next := head + 1
		if next == delayLen {
			next = 0
		}
		line[head] = damping * 0.5 * (line[head] + line[next])
		head = next
	}
}

// Render allocates and fills a plucked-string buffer of n samples
func (s *Synth) Render(n int, freq float64) []float32 {
	dst := make([]float32, n)
	s.Pluck(dst, freq)
	return dst
}
