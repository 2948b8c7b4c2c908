package instrument

import (
	"github.com/kellylford/sounddesign/pkg/dsp"
	"github.com/kellylford/sounddesign/pkg/dsp/karplus"
)

// PluckedString renders notes with Karplus-Strong string synthesis.
// It is the built-in NoteRenderer, used when no external instrument
// backend is wired in. Program and bank are ignored; every note is the
// same plucked string.
type PluckedString struct {
	sampleRate float64
	seed       int64
}

// NewPluckedString creates a plucked string renderer. The seed fixes
// the excitation noise so identical notes render identically.
func NewPluckedString(sampleRate float64, seed int64) *PluckedString {
	return &PluckedString{sampleRate: sampleRate, seed: seed}
}

// RenderNote renders one plucked note. Velocity scales the output
// level linearly, with 127 mapping to full scale.
func (p *PluckedString) RenderNote(note, velocity int, duration float64, program, bank int) ([]float32, error) {
	if note < 0 || note > 127 {
		return nil, ErrUnavailable
	}

	n := dsp.Samples(duration)
	if n == 0 {
		return []float32{}, nil
	}

	buf := karplus.New(p.sampleRate, p.seed).Render(n, MIDIToFrequency(note))
	if peak := dsp.Peak(buf); peak > 0 {
		dsp.Scale(buf, 1.0/peak)
	}

	gain := float32(velocity) / 127.0
	if gain < 0 {
		gain = 0
	}
	if gain > 1 {
		gain = 1
	}
	dsp.Scale(buf, gain)

	return buf, nil
}
