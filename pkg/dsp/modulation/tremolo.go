package modulation

// Tremolo amplitude-modulates buf in place with gain
// (1 + depth*lfo(t)). Depth above 1 would swing the gain negative at
// the modulation trough, so it is clamped to [0,1].
func Tremolo(buf []float32, lfo *LFO, depth float64) {
	if depth < 0 {
		depth = 0
	} else if depth > 1 {
		depth = 1
	}

	for i := range buf {
		buf[i] *= float32(1 + depth*lfo.Value(i))
	}
}
