package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// Clone returns a copy of src. A nil or empty src yields an empty, non-nil slice.
func Clone(src []float64) []float64 {
	out := make([]float64, len(src))
	copy(out, src)
	return out
}

// Reversed returns a copy of src in reverse order.
func Reversed(src []float64) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		out[len(src)-1-i] = v
	}
	return out
}
