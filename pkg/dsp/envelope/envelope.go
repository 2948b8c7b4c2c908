// Package envelope provides amplitude envelope shaping for rendered buffers
package envelope

// ADSR describes a four-phase linear amplitude envelope. Attack, Decay
// and Release are durations in seconds; Sustain is a level in [0,1].
type ADSR struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64
}

// Segments holds the clamped per-phase sample counts for a buffer.
// The four counts always sum exactly to the total the buffer was
// segmented for, whatever the envelope times were.
type Segments struct {
	Attack  int
	Decay   int
	Sustain int
	Release int
}

// Total returns the summed length of all four phases
func (s Segments) Total() int {
	return s.Attack + s.Decay + s.Sustain + s.Release
}

// Shaper builds and applies ADSR envelopes at a fixed sample rate
type Shaper struct {
	sampleRate float64
}

// New creates an envelope shaper for the given sample rate
func New(sampleRate float64) *Shaper {
	return &Shaper{sampleRate: sampleRate}
}

func (s *Shaper) samples(seconds float64) int {
	if seconds <= 0 {
		return 0
	}
	return int(seconds*s.sampleRate + 0.5)
}

// Segments clamps the envelope to a buffer of total samples. Each
// phase consumes only what the earlier phases left over, so degenerate
// configurations (attack longer than the buffer, attack+decay+release
// exceeding it) shrink later phases instead of overflowing.
func (s *Shaper) Segments(env ADSR, total int) Segments {
	attack := s.samples(env.Attack)
	if attack > total {
		attack = total
	}

	decay := s.samples(env.Decay)
	if decay > total-attack {
		decay = total - attack
	}

	remaining := total - attack - decay

	release := s.samples(env.Release)
	if release > remaining {
		release = remaining
	}

	return Segments{
		Attack:  attack,
		Decay:   decay,
		Sustain: remaining - release,
		Release: release,
	}
}

// Shape fills dst with the envelope gain curve: a linear ramp 0 to 1,
// a ramp 1 down to the sustain level, a constant hold, and a ramp to
// 0. When attack, decay and sustain are all empty the release ramps
// from full scale instead of the sustain level.
func (s *Shaper) Shape(dst []float32, env ADSR) {
	seg := s.Segments(env, len(dst))
	idx := 0

	if seg.Attack > 0 {
		ramp(dst[idx:idx+seg.Attack], 0, 1)
		idx += seg.Attack
	}
	if seg.Decay > 0 {
		ramp(dst[idx:idx+seg.Decay], 1, float32(env.Sustain))
		idx += seg.Decay
	}
	if seg.Sustain > 0 {
		level := float32(env.Sustain)
		for i := idx; i < idx+seg.Sustain; i++ {
			dst[i] = level
		}
		idx += seg.Sustain
	}
	if seg.Release > 0 {
		start := float32(env.Sustain)
		if idx == 0 {
			start = 1.0
		}
		ramp(dst[idx:idx+seg.Release], start, 0)
	}
}

// Apply multiplies the buffer elementwise by the envelope curve
func (s *Shaper) Apply(buf []float32, env ADSR) {
	curve := make([]float32, len(buf))
	s.Shape(curve, env)
	for i := range buf {
		buf[i] *= curve[i]
	}
}

// ramp writes a linear segment from start to end inclusive, matching
// the endpoint behavior of an n-point linspace.
func ramp(dst []float32, start, end float32) {
	n := len(dst)
	if n == 0 {
		return
	}
	if n == 1 {
		dst[0] = start
		return
	}
	step := (end - start) / float32(n-1)
	for i := range dst {
		dst[i] = start + step*float32(i)
	}
}
