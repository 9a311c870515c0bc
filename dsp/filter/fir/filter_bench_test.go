package fir

import (
	"fmt"
	"testing"
)

func benchFilter(b *testing.B, taps int) *Filter {
	b.Helper()

	coeffs := make([]float64, taps)
	for i := range coeffs {
		coeffs[i] = 1.0 / float64(taps)
	}

	f, err := New(coeffs)
	if err != nil {
		b.Fatal(err)
	}

	return f
}

func BenchmarkProcessSample(b *testing.B) {
	for _, taps := range []int{8, 32, 128, 512} {
		b.Run(fmt.Sprintf("taps=%d", taps), func(b *testing.B) {
			f := benchFilter(b, taps)

			x := 1.0
			for b.Loop() {
				x = f.ProcessSample(x)
			}

			_ = x
		})
	}
}

func BenchmarkProcessBlock(b *testing.B) {
	for _, taps := range []int{8, 32, 128, 512} {
		b.Run(fmt.Sprintf("taps=%d", taps), func(b *testing.B) {
			f := benchFilter(b, taps)

			buf := make([]float64, 1024)
			for i := range buf {
				buf[i] = float64(i) * 0.001
			}

			b.SetBytes(1024 * 8)
			b.ResetTimer()

			for range b.N {
				f.ProcessBlock(buf)
			}
		})
	}
}
