package core

import (
	"math"
	"testing"
)

func TestEnsureLenReuse(t *testing.T) {
	buf := make([]float64, 4, 8)

	out := EnsureLen(buf, 6)
	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}

	if cap(out) != cap(buf) {
		t.Fatalf("cap = %d, want %d", cap(out), cap(buf))
	}
}

func TestEnsureLenGrow(t *testing.T) {
	out := EnsureLen(make([]float64, 1), 3)
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
}

func TestZero(t *testing.T) {
	buf := []float64{1, 2, 3}
	Zero(buf)

	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %v, want 0", i, v)
		}
	}
}

func TestCloneIsCopy(t *testing.T) {
	src := []float64{1, 2}
	c := Clone(src)
	src[0] = 9

	if c[0] != 1 {
		t.Fatalf("Clone shares storage: c[0] = %v", c[0])
	}

	if Clone(nil) == nil {
		t.Fatal("Clone(nil) should be non-nil")
	}
}

func TestReversed(t *testing.T) {
	got := Reversed([]float64{1, 2, 3})
	want := []float64{3, 2, 1}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLinearToDB(t *testing.T) {
	if got := LinearToDB(1); got != 0 {
		t.Fatalf("LinearToDB(1) = %v, want 0", got)
	}

	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("LinearToDB(0) should be -Inf")
	}

	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("LinearToDB(-1) should be NaN")
	}
}

func TestApplyProcessorOptionsIgnoresInvalid(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(-1), WithBlockSize(0), WithBitDepth(12), nil)
	if cfg != DefaultProcessorConfig() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}
