package fir

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-blockgraph/dsp/core"
	"github.com/cwbudde/algo-blockgraph/dsp/delay"
)

// ErrNoCoefficients is returned by New when the coefficient slice is empty.
var ErrNoCoefficients = errors.New("fir: at least one coefficient is required")

// Filter implements a direct-form FIR filter.
//
// The coefficients are kept in reverse order next to the history line, which
// turns the convolution into a single dot product over the line's window.
type Filter struct {
	coeffs   []float64
	reversed []float64
	history  *delay.Line
}

// New creates a FIR filter from the given coefficient slice.
// The coefficients are copied. The filter order is len(coeffs)-1.
func New(coeffs []float64) (*Filter, error) {
	if len(coeffs) == 0 {
		return nil, ErrNoCoefficients
	}

	history, err := delay.New(len(coeffs))
	if err != nil {
		return nil, err
	}

	return &Filter{
		coeffs:   core.Clone(coeffs),
		reversed: core.Reversed(coeffs),
		history:  history,
	}, nil
}

// ProcessSample pushes x into the history and returns
//
//	y[n] = sum_{k=0}^{M-1} h[k] * x[n-k]
//
// with x[n-k] = 0 for samples before the first call or the last Reset.
func (f *Filter) ProcessSample(x float64) float64 {
	f.history.Write(x)
	return f.history.Dot(f.reversed)
}

// ProcessBlock filters a block of samples in-place.
func (f *Filter) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// ProcessBlockTo filters src into dst. dst must be at least as long as src.
func (f *Filter) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}

	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// Reset clears the history to zero.
func (f *Filter) Reset() {
	f.history.Reset()
}

// Order returns the filter order (len(coeffs) - 1).
func (f *Filter) Order() int {
	return len(f.coeffs) - 1
}

// Coefficients returns a copy of the filter coefficients.
func (f *Filter) Coefficients() []float64 {
	return core.Clone(f.coeffs)
}

// History returns the current delay line, most recent sample first.
func (f *Filter) History() []float64 {
	return f.history.Snapshot()
}

// Response computes the complex frequency response H(e^{jw}) at the given
// frequency (Hz) and sample rate (Hz).
func (f *Filter) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	var h complex128
	for k, c := range f.coeffs {
		h += complex(c, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}
	return h
}

// MagnitudeDB returns the magnitude response in dB at the given frequency.
func (f *Filter) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return core.LinearToDB(cmplx.Abs(f.Response(freqHz, sampleRate)))
}
