// Package instrument renders layers as discrete notes instead of raw
// waveforms. A NoteRenderer takes MIDI-style note parameters and
// returns a finished buffer; the render core falls back to ordinary
// synthesis when a renderer reports it cannot serve a request.
package instrument

import (
	"errors"
	"math"
)

// ErrUnavailable reports that a note renderer cannot produce audio,
// either because its backend is missing or the program is unsupported.
// The render core treats it as a signal to fall back to waveform
// synthesis rather than fail the layer.
var ErrUnavailable = errors.New("instrument: renderer unavailable")

// NoteRenderer produces a buffer of samples for one note.
type NoteRenderer interface {
	// RenderNote renders the given MIDI note (0-127) at the given
	// velocity (0-127) for duration seconds. program and bank select
	// the instrument sound where the renderer supports them.
	RenderNote(note, velocity int, duration float64, program, bank int) ([]float32, error)
}

// FrequencyToMIDI converts a frequency in Hz to the nearest MIDI note
// number, clamped to 0-127. A4 (440Hz) maps to 69.
func FrequencyToMIDI(freq float64) int {
	if freq <= 0 {
		return 0
	}
	note := int(math.Round(69.0 + 12.0*math.Log2(freq/440.0)))
	if note < 0 {
		return 0
	}
	if note > 127 {
		return 127
	}
	return note
}

// MIDIToFrequency converts a MIDI note number to its frequency in Hz
func MIDIToFrequency(note int) float64 {
	return 440.0 * math.Pow(2.0, float64(note-69)/12.0)
}
