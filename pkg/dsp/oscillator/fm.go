package oscillator

import "math"

// GenerateFM fills dst with a frequency-modulated sine. The modulator
// runs at freq*ratio and deflects the carrier phase by index radians:
//
//	y = sin(2*pi*freq*t + index*sin(2*pi*freq*ratio*t))
//
// Ratio and index are unbounded free parameters; a few useful
// starting points are bell (ratio 1.4, index 5), brass (1.0, 5) and
// organ (0.5, 2).
func (g *Generator) GenerateFM(dst []float32, freq, ratio, index float64) {
	modFreq := freq * ratio
	for i := range dst {
		t := float64(i) / g.sampleRate
		mod := math.Sin(2 * math.Pi * modFreq * t)
		dst[i] = float32(math.Sin(2*math.Pi*freq*t + index*mod))
	}
}

// RenderFM allocates and fills an FM buffer of n samples
func (g *Generator) RenderFM(n int, freq, ratio, index float64) []float32 {
	dst := make([]float32, n)
	g.GenerateFM(dst, freq, ratio, index)
	return dst
}
