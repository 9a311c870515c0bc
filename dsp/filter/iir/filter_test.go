package iir

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-12

func TestNewValidation(t *testing.T) {
	_, err := New(nil, []float64{1})
	require.ErrorIs(t, err, ErrNoNumerator)

	_, err = New([]float64{1}, nil)
	require.ErrorIs(t, err, ErrNoDenominator)

	f, err := New([]float64{1}, []float64{0})
	require.NoError(t, err, "a[0] == 0 is reported per sample, not at construction")
	require.NotNil(t, f)
}

func TestPassThrough(t *testing.T) {
	f, err := New([]float64{1}, []float64{1})
	require.NoError(t, err)

	input := []float64{0.5, -3, 1e-300, 7.25, 0, -0.125, 1e12}
	for i, x := range input {
		y, err := f.ProcessSample(x)
		require.NoError(t, err)
		assert.Equal(t, x, y, "sample %d", i)
	}
}

func TestImpulseResponse(t *testing.T) {
	f, err := New([]float64{0.1, 0.1}, []float64{1, -0.8})
	require.NoError(t, err)

	want := []float64{0.1, 0.18, 0.144, 0.1152, 0.09216}
	for i, x := range []float64{1, 0, 0, 0, 0} {
		y, err := f.ProcessSample(x)
		require.NoError(t, err)
		assert.InDelta(t, want[i], y, eps, "sample %d", i)
	}
}

func TestNormalization(t *testing.T) {
	// Scaling every coefficient by the same factor must not change the output.
	ref, err := New([]float64{0.2, 0.3, -0.1}, []float64{1, -0.5, 0.06})
	require.NoError(t, err)

	scaled, err := New([]float64{0.8, 1.2, -0.4}, []float64{4, -2, 0.24})
	require.NoError(t, err)

	for i, x := range []float64{1, 0.5, -0.25, 0, 0.75, -1, 0.3} {
		y1, err := ref.ProcessSample(x)
		require.NoError(t, err)

		y2, err := scaled.ProcessSample(x)
		require.NoError(t, err)

		assert.InDelta(t, y1, y2, 1e-12, "sample %d", i)
	}
}

func TestMatchesDirectRecurrence(t *testing.T) {
	b := []float64{0.3, -0.2, 0.05}
	a := []float64{2, -0.6, 0.1, 0.02}
	input := []float64{1, -0.5, 0.25, 0.9, 0, -0.3, 0.6, -1, 0.2, 0.4}

	f, err := New(b, a)
	require.NoError(t, err)

	out := make([]float64, len(input))
	for n, x := range input {
		var acc float64
		for i, bi := range b {
			if n-i >= 0 {
				acc += bi * input[n-i]
			}
		}
		for j := 1; j < len(a); j++ {
			if n-j >= 0 {
				acc -= a[j] * out[n-j]
			}
		}
		out[n] = acc / a[0]

		y, err := f.ProcessSample(x)
		require.NoError(t, err)
		assert.InDelta(t, out[n], y, 1e-12, "sample %d", n)
	}
}

func TestDivisionByZeroLeavesStateUntouched(t *testing.T) {
	f, err := New([]float64{1, 1}, []float64{0, 0.5})
	require.NoError(t, err)

	_, err = f.ProcessSample(1)
	require.True(t, errors.Is(err, ErrDivisionByZero))
	assert.Contains(t, err.Error(), "division by zero")

	assert.Equal(t, []float64{0, 0}, f.InputHistory())
	assert.Equal(t, []float64{0}, f.OutputHistory())
}

func TestProcessBlockToStopsOnError(t *testing.T) {
	f, err := New([]float64{1}, []float64{0})
	require.NoError(t, err)

	dst := []float64{9, 9, 9}
	n, err := f.ProcessBlockTo(dst, []float64{1, 2, 3})
	require.ErrorIs(t, err, ErrDivisionByZero)
	assert.Equal(t, 0, n)
	assert.Equal(t, []float64{9, 9, 9}, dst)
}

func TestProcessBlockToMatchesSample(t *testing.T) {
	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8}

	f1, err := New([]float64{0.1, 0.1}, []float64{1, -0.8})
	require.NoError(t, err)

	ref := make([]float64, len(input))
	for i, x := range input {
		ref[i], err = f1.ProcessSample(x)
		require.NoError(t, err)
	}

	f2, err := New([]float64{0.1, 0.1}, []float64{1, -0.8})
	require.NoError(t, err)

	dst := make([]float64, len(input))
	n, err := f2.ProcessBlockTo(dst, input)
	require.NoError(t, err)
	assert.Equal(t, len(input), n)
	assert.Equal(t, ref, dst)
}

func TestReset(t *testing.T) {
	f, err := New([]float64{0.1, 0.1}, []float64{1, -0.8})
	require.NoError(t, err)

	first := make([]float64, 5)
	for i, x := range []float64{1, 0, 0, 0, 0} {
		first[i], _ = f.ProcessSample(x)
	}

	f.Reset()
	assert.Equal(t, []float64{0, 0}, f.InputHistory())
	assert.Equal(t, []float64{0}, f.OutputHistory())

	for i, x := range []float64{1, 0, 0, 0, 0} {
		y, _ := f.ProcessSample(x)
		assert.Equal(t, first[i], y, "sample %d after reset", i)
	}
}

func TestCoefficientCopies(t *testing.T) {
	b := []float64{1, 2}
	a := []float64{1, 0.5}

	f, err := New(b, a)
	require.NoError(t, err)

	b[0], a[1] = 99, 99
	assert.Equal(t, []float64{1, 2}, f.Numerator())
	assert.Equal(t, []float64{1, 0.5}, f.Denominator())

	f.Numerator()[0] = 42
	assert.Equal(t, 1.0, f.Numerator()[0])
}

func TestResponse(t *testing.T) {
	// One-pole lowpass: H(1) = sum(b) / sum(a) at DC.
	f, err := New([]float64{0.1, 0.1}, []float64{1, -0.8})
	require.NoError(t, err)

	dc := f.Response(0, 48000)
	assert.InDelta(t, 1.0, cmplx.Abs(dc), 1e-12)
	assert.InDelta(t, 0.0, f.MagnitudeDB(0, 48000), 1e-9)

	// Zero at Nyquist from b = [0.1, 0.1].
	assert.True(t, math.IsInf(f.MagnitudeDB(24000, 48000), -1) || f.MagnitudeDB(24000, 48000) < -200)
}
