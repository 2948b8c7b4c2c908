// Package spectral implements offline whole-buffer frequency filters.
//
// The filters transform the complete buffer, zero the bins outside the
// pass band and transform back. This is a non-causal block filter:
// fine for this renderer, which always materializes fixed-length
// buffers before output, but not usable for streaming audio.
package spectral

import (
	"github.com/mjibson/go-dsp/fft"
)

// Filter applies band filters to complete buffers at a fixed rate
type Filter struct {
	sampleRate float64
}

// New creates a spectral filter for the given sample rate
func New(sampleRate float64) *Filter {
	return &Filter{sampleRate: sampleRate}
}

// Bandpass keeps only frequencies between low and high Hz
func (f *Filter) Bandpass(buf []float32, low, high float64) {
	f.apply(buf, func(freq float64) bool {
		return freq >= low && freq <= high
	})
}

// Highpass removes frequencies below cutoff Hz
func (f *Filter) Highpass(buf []float32, cutoff float64) {
	f.apply(buf, func(freq float64) bool {
		return freq >= cutoff
	})
}

// Lowpass removes frequencies above cutoff Hz
func (f *Filter) Lowpass(buf []float32, cutoff float64) {
	f.apply(buf, func(freq float64) bool {
		return freq <= cutoff
	})
}

// apply zeroes every spectrum bin whose frequency fails keep, writing
// the filtered signal back into buf. Mirror bins are zeroed together
// to preserve conjugate symmetry, so the inverse transform stays real.
func (f *Filter) apply(buf []float32, keep func(float64) bool) {
	n := len(buf)
	if n == 0 {
		return
	}

	x := make([]float64, n)
	for i, v := range buf {
		x[i] = float64(v)
	}

	spectrum := fft.FFTReal(x)
	binWidth := f.sampleRate / float64(n)

	for k := 0; k <= n/2; k++ {
		if keep(float64(k) * binWidth) {
			continue
		}
		spectrum[k] = 0
		if k > 0 && k < n-k {
			spectrum[n-k] = 0
		}
	}

	signal := fft.IFFT(spectrum)
	for i := range buf {
		buf[i] = float32(real(signal[i]))
	}
}
