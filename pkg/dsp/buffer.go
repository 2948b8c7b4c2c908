package dsp

import "math"

// Buffer utilities for common audio operations

// Clear zeroes a buffer - no allocations
func Clear(buffer []float32) {
	for i := range buffer {
		buffer[i] = 0
	}
}

// Add adds source to destination - no allocations
func Add(dst, src []float32) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		dst[i] += src[i]
	}
}

// AddScaled adds scaled source to destination - no allocations
func AddScaled(dst, src []float32, scale float32) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		dst[i] += src[i] * scale
	}
}

// Scale multiplies buffer by a constant - no allocations
func Scale(buffer []float32, scale float32) {
	for i := range buffer {
		buffer[i] *= scale
	}
}

// Peak finds the maximum absolute value in a buffer
func Peak(buffer []float32) float32 {
	peak := float32(0)
	for _, sample := range buffer {
		abs := sample
		if abs < 0 {
			abs = -abs
		}
		if abs > peak {
			peak = abs
		}
	}
	return peak
}

// RMS calculates the root mean square of a buffer
func RMS(buffer []float32) float32 {
	if len(buffer) == 0 {
		return 0
	}

	sum := float32(0)
	for _, sample := range buffer {
		sum += sample * sample
	}

	return float32(math.Sqrt(float64(sum / float32(len(buffer)))))
}

// Clip limits samples to [-limit, limit]
func Clip(buffer []float32, limit float32) {
	for i := range buffer {
		if buffer[i] > limit {
			buffer[i] = limit
		} else if buffer[i] < -limit {
			buffer[i] = -limit
		}
	}
}

// Normalize divides the buffer by its peak when the peak exceeds
// target, leaving quieter signals untouched.
func Normalize(buffer []float32, target float32) {
	peak := Peak(buffer)
	if peak > target && peak > 0 {
		Scale(buffer, target/peak)
	}
}

// ZeroPad returns the buffer extended with zeros to length n. The
// original buffer is returned unchanged when already long enough.
func ZeroPad(buffer []float32, n int) []float32 {
	if len(buffer) >= n {
		return buffer
	}
	padded := make([]float32, n)
	copy(padded, buffer)
	return padded
}
