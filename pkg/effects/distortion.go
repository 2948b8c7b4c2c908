package effects

import "math"

// Distortion applies tanh soft clipping with a drive gain
type Distortion struct {
	gain float64
}

// NewDistortion creates a distortion with the drive in dB
func NewDistortion(driveDB float64) *Distortion {
	return &Distortion{
		gain: math.Pow(10.0, driveDB/20.0),
	}
}

// ProcessSample shapes one sample
func (d *Distortion) ProcessSample(input float32) float32 {
	return float32(math.Tanh(float64(input) * d.gain))
}

// Process shapes a buffer in place
func (d *Distortion) Process(buf []float32) {
	for i := range buf {
		buf[i] = d.ProcessSample(buf[i])
	}
}
