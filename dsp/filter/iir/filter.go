package iir

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-blockgraph/dsp/core"
	"github.com/cwbudde/algo-blockgraph/dsp/delay"
)

var (
	// ErrDivisionByZero is returned by ProcessSample when a[0] is zero.
	ErrDivisionByZero = errors.New("iir: division by zero: a[0] is zero")

	// ErrNoNumerator is returned by New for an empty b.
	ErrNoNumerator = errors.New("iir: at least one feed-forward coefficient is required")

	// ErrNoDenominator is returned by New for an empty a.
	ErrNoDenominator = errors.New("iir: at least one feedback coefficient is required")
)

// Filter is a direct-form I IIR filter.
type Filter struct {
	b, a []float64

	// Taps stored oldest-first for the history dot products.
	bRev []float64
	aRev []float64 // a[1:] reversed

	x *delay.Line // last Nb inputs, x[n] included once written
	y *delay.Line // last Na-1 outputs
}

// New creates an IIR filter from feed-forward coefficients b and feedback
// coefficients a. Both slices are copied.
func New(b, a []float64) (*Filter, error) {
	if len(b) == 0 {
		return nil, ErrNoNumerator
	}

	if len(a) == 0 {
		return nil, ErrNoDenominator
	}

	x, err := delay.New(len(b))
	if err != nil {
		return nil, err
	}

	y, err := delay.New(len(a) - 1)
	if err != nil {
		return nil, err
	}

	return &Filter{
		b:    core.Clone(b),
		a:    core.Clone(a),
		bRev: core.Reversed(b),
		aRev: core.Reversed(a[1:]),
		x:    x,
		y:    y,
	}, nil
}

// ProcessSample filters one input sample. When a[0] is zero it returns
// ErrDivisionByZero without advancing the filter state.
func (f *Filter) ProcessSample(x float64) (float64, error) {
	a0 := f.a[0]
	if a0 == 0 {
		return 0, ErrDivisionByZero
	}

	f.x.Write(x)
	y := (f.x.Dot(f.bRev) - f.y.Dot(f.aRev)) / a0
	f.y.Write(y)

	return y, nil
}

// ProcessBlockTo filters src into dst and returns the number of samples
// written. On error, dst[:n] holds the samples produced before the failure.
func (f *Filter) ProcessBlockTo(dst, src []float64) (int, error) {
	for i, x := range src {
		y, err := f.ProcessSample(x)
		if err != nil {
			return i, err
		}
		dst[i] = y
	}
	return len(src), nil
}

// Reset zeroes the input and output histories. Coefficients are untouched.
func (f *Filter) Reset() {
	f.x.Reset()
	f.y.Reset()
}

// Numerator returns a copy of b.
func (f *Filter) Numerator() []float64 {
	return core.Clone(f.b)
}

// Denominator returns a copy of a.
func (f *Filter) Denominator() []float64 {
	return core.Clone(f.a)
}

// InputHistory returns the last Nb inputs, most recent first.
func (f *Filter) InputHistory() []float64 {
	return f.x.Snapshot()
}

// OutputHistory returns the last Na-1 outputs, most recent first.
func (f *Filter) OutputHistory() []float64 {
	return f.y.Snapshot()
}

// Response computes H(e^{jw}) = B(e^{jw}) / A(e^{jw}) at the given frequency
// and sample rate (both in Hz).
func (f *Filter) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	return polyval(f.b, w) / polyval(f.a, w)
}

// MagnitudeDB returns the magnitude response in dB at the given frequency.
func (f *Filter) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return core.LinearToDB(cmplx.Abs(f.Response(freqHz, sampleRate)))
}

func polyval(coeffs []float64, w float64) complex128 {
	var h complex128
	for k, c := range coeffs {
		h += complex(c, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}
	return h
}
