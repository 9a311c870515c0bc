package signal

import (
	"fmt"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// Add returns the element-wise sum of a and b. The shorter operand is
// treated as zero-padded, so the result has the longer length.
func Add(a, b []float64) []float64 {
	if len(a) < len(b) {
		a, b = b, a
	}
	out := make([]float64, len(a))
	n := len(b)
	if n > 0 {
		vecmath.AddBlock(out[:n], a[:n], b)
	}
	copy(out[n:], a[n:])
	return out
}

// Scale returns x multiplied by s.
func Scale(x []float64, s float64) []float64 {
	out := make([]float64, len(x))
	if len(x) > 0 {
		vecmath.ScaleBlock(out, x, s)
	}
	return out
}

// Concat joins the given signals in order.
func Concat(parts ...[]float64) []float64 {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]float64, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Peak returns the largest absolute sample value, 0 for an empty signal.
func Peak(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return vecmath.MaxAbs(x)
}

// Energy returns the sum of squared samples.
func Energy(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return vecmath.DotProduct(x, x)
}

// Normalize scales data to target peak amplitude and returns a new slice.
// A silent input stays silent.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	peak := vecmath.MaxAbs(data)
	if peak == 0 || targetPeak == 0 {
		return make([]float64, len(data)), nil
	}
	return Scale(data, targetPeak/peak), nil
}

// NormalizeAll scales every channel by one common factor so that the
// loudest sample across all channels reaches targetPeak.
func NormalizeAll(channels [][]float64, targetPeak float64) error {
	if targetPeak < 0 {
		return fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	peak := 0.0
	for _, ch := range channels {
		peak = max(peak, Peak(ch))
	}
	if peak == 0 {
		return nil
	}
	for _, ch := range channels {
		if len(ch) > 0 {
			vecmath.ScaleBlockInPlace(ch, targetPeak/peak)
		}
	}
	return nil
}

// Chunks splits x into consecutive slices of at most size samples. The
// slices alias x.
func Chunks(x []float64, size int) [][]float64 {
	if size <= 0 || len(x) == 0 {
		return nil
	}
	out := make([][]float64, 0, (len(x)+size-1)/size)
	for lo := 0; lo < len(x); lo += size {
		out = append(out, x[lo:min(lo+size, len(x))])
	}
	return out
}
