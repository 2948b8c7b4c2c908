package mix

import (
	"math"
	"testing"

	"github.com/kellylford/sounddesign/pkg/dsp/oscillator"
)

func TestBlendPair(t *testing.T) {
	tests := []struct {
		shape     oscillator.Shape
		secondary oscillator.Shape
		paired    bool
	}{
		{oscillator.Square, oscillator.Triangle, true},
		{oscillator.Sawtooth, oscillator.Sine, true},
		{oscillator.Sine, oscillator.Sine, false},
		{oscillator.Triangle, oscillator.Triangle, false},
	}

	for _, tt := range tests {
		secondary, ok := BlendPair(tt.shape)
		if ok != tt.paired {
			t.Errorf("BlendPair(%v) paired = %v, want %v", tt.shape, ok, tt.paired)
		}
		if ok && secondary != tt.secondary {
			t.Errorf("BlendPair(%v) = %v, want %v", tt.shape, secondary, tt.secondary)
		}
	}
}

func TestCrossfadeLinear(t *testing.T) {
	primary := []float32{1, 1, 1, 1}
	secondary := []float32{0, 0, 0, 0}

	CrossfadeLinear(primary, secondary, 0.25)

	for i, v := range primary {
		if math.Abs(float64(v-0.75)) > 1e-6 {
			t.Errorf("sample %d = %f, want 0.75", i, v)
		}
	}
}

func TestCrossfadeClampsRatio(t *testing.T) {
	primary := []float32{1, 1}
	secondary := []float32{-1, -1}

	CrossfadeLinear(primary, secondary, 1.5)
	for i, v := range primary {
		if v != -1 {
			t.Errorf("ratio above 1 should yield pure secondary, sample %d = %f", i, v)
		}
	}
}

func TestSequentialLength(t *testing.T) {
	a := make([]float32, 22050)
	b := make([]float32, 44100)
	for i := range a {
		a[i] = 0.5
	}
	for i := range b {
		b[i] = -0.25
	}

	out := Sequential([][]float32{a, b})

	if len(out) != 66150 {
		t.Fatalf("sequential length = %d, want 66150", len(out))
	}
	for i := 0; i < len(a); i++ {
		if out[i] != a[i] {
			t.Fatalf("first segment differs at sample %d", i)
		}
	}
	for i := 0; i < len(b); i++ {
		if out[len(a)+i] != b[i] {
			t.Fatalf("second segment differs at sample %d", i)
		}
	}
}

func TestSequentialEmpty(t *testing.T) {
	if out := Sequential(nil); out != nil {
		t.Errorf("empty input should yield nil, got %d samples", len(out))
	}
}

func TestSimultaneousMeanNotSum(t *testing.T) {
	gen := oscillator.New(44100.0)
	layer := gen.Render(4410, oscillator.Sine, 440.0)

	copies := make([][]float32, 4)
	for i := range copies {
		c := make([]float32, len(layer))
		copy(c, layer)
		copies[i] = c
	}

	mixed := Simultaneous(copies)
	single := Simultaneous([][]float32{layer})

	if len(mixed) != len(single) {
		t.Fatalf("length mismatch: %d vs %d", len(mixed), len(single))
	}
	for i := range mixed {
		if math.Abs(float64(mixed[i]-single[i])) > 1e-5 {
			t.Fatalf("mean of identical copies differs from single at %d: %f vs %f",
				i, mixed[i], single[i])
		}
	}
}

func TestSimultaneousPadsToMax(t *testing.T) {
	a := make([]float32, 100)
	b := make([]float32, 300)
	for i := range a {
		a[i] = 0.4
	}
	for i := range b {
		b[i] = 0.2
	}

	out := Simultaneous([][]float32{a, b})

	if len(out) != 300 {
		t.Fatalf("length = %d, want 300", len(out))
	}
	if math.Abs(float64(out[50]-0.3)) > 1e-6 {
		t.Errorf("overlapping region = %f, want 0.3", out[50])
	}
	// Past the short buffer only the long one contributes to the mean
	if math.Abs(float64(out[200]-0.1)) > 1e-6 {
		t.Errorf("padded region = %f, want 0.1", out[200])
	}
}

func TestSimultaneousOrderIndependent(t *testing.T) {
	gen := oscillator.New(44100.0)
	a := gen.Render(2000, oscillator.Sine, 220.0)
	b := gen.Render(3000, oscillator.Triangle, 330.0)
	c := gen.Render(1000, oscillator.Sawtooth, 550.0)

	ab := Simultaneous([][]float32{a, b, c})
	ba := Simultaneous([][]float32{c, a, b})

	for i := range ab {
		if math.Abs(float64(ab[i]-ba[i])) > 1e-6 {
			t.Fatalf("mix order changed output at sample %d", i)
		}
	}
}

func TestSimultaneousHeadroom(t *testing.T) {
	// Two identical full-scale buffers: mean is still full scale and
	// must be scaled back to the headroom level
	a := make([]float32, 100)
	b := make([]float32, 100)
	for i := range a {
		a[i] = 1.0
		b[i] = 1.0
	}

	out := Simultaneous([][]float32{a, b})
	for i, v := range out {
		if math.Abs(float64(v-0.8)) > 1e-6 {
			t.Fatalf("headroom scaling wrong at %d: %f, want 0.8", i, v)
		}
	}
}

func TestSimultaneousSingleBufferHeadroom(t *testing.T) {
	// The single-buffer bypass must apply the same headroom scale as
	// the averaging path, or one full-scale layer mixes louder alone
	// than alongside identical copies of itself
	a := make([]float32, 100)
	for i := range a {
		a[i] = 1.0
	}

	out := Simultaneous([][]float32{a})
	for i, v := range out {
		if math.Abs(float64(v-0.8)) > 1e-6 {
			t.Fatalf("single-buffer headroom wrong at %d: %f, want 0.8", i, v)
		}
	}
	// Input is not mutated
	if a[0] != 1.0 {
		t.Error("mixer scaled its input buffer in place")
	}
}

func TestSimultaneousEmpty(t *testing.T) {
	if out := Simultaneous(nil); out != nil {
		t.Errorf("empty input should yield nil, got %d samples", len(out))
	}
}
