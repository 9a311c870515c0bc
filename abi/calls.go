package abi

import (
	"fmt"

	"github.com/cwbudde/algo-blockgraph/dsp/system"
)

// AddFIR adds a FIR block using the first n taps of coeffs.
func (t *Table) AddFIR(h Handle, name string, coeffs []float64, n int) {
	s, err := t.lookup(h)
	if err == nil {
		err = checkCount("coeffs", n, len(coeffs))
	}
	if err == nil {
		err = s.AddFIR(name, coeffs[:n])
	}
	if err != nil {
		t.fail("addFIR", err)
	}
}

// AddIIR adds an IIR block using the first nb values of b and the first na
// values of a.
func (t *Table) AddIIR(h Handle, name string, b []float64, nb int, a []float64, na int) {
	s, err := t.lookup(h)
	if err == nil {
		err = checkCount("b", nb, len(b))
	}
	if err == nil {
		err = checkCount("a", na, len(a))
	}
	if err == nil {
		err = s.AddIIR(name, b[:nb], a[:na])
	}
	if err != nil {
		t.fail("addIIR", err)
	}
}

// AddSummator adds a Summator block computing u*source1 + v*source2.
func (t *Table) AddSummator(h Handle, name string, u, v float64) {
	s, err := t.lookup(h)
	if err == nil {
		err = s.AddSummator(name, u, v)
	}
	if err != nil {
		t.fail("addSummator", err)
	}
}

// Connect declares the first n entries of sources as the inputs of
// consumer, replacing any earlier declaration. n == 0 clears it.
func (t *Table) Connect(h Handle, consumer string, sources []string, n int) {
	s, err := t.lookup(h)
	if err == nil {
		err = checkCount("sources", n, len(sources))
	}
	if err == nil {
		err = s.Connect(consumer, sources[:n])
	}
	if err != nil {
		t.fail("connect", err)
	}
}

// ResetAll returns every block of the System to its initial state.
func (t *Table) ResetAll(h Handle) {
	s, err := t.lookup(h)
	if err != nil {
		t.fail("resetAll", err)
		return
	}
	s.ResetAll()
}

// ProcessSignal runs length samples of in through the named block, writing
// into out. Both buffers must hold at least length samples. On an invalid
// handle, an unknown name or a bad length, out is left untouched; when a
// sample fails the samples before it stay written.
func (t *Table) ProcessSignal(h Handle, name string, in, out []float64, length int) {
	s, err := t.lookup(h)
	if err == nil {
		err = checkCount("input", length, len(in))
	}
	if err == nil {
		err = checkCount("output", length, len(out))
	}
	if err == nil {
		err = s.ProcessSignal(name, in[:length], out[:length])
	}
	if err != nil {
		t.fail("processSignal", err)
	}
}

// ComputeBlock feeds one sample to the named block and returns its output,
// or 0 on failure.
func (t *Table) ComputeBlock(h Handle, name string, x float64) float64 {
	s, err := t.lookup(h)
	if err != nil {
		t.fail("computeBlock", err)
		return 0
	}
	y, err := s.ComputeBlock(name, x)
	if err != nil {
		t.fail("computeBlock", err)
		return 0
	}
	return y
}

func checkCount(what string, n, size int) error {
	if n < 0 || n > size {
		return fmt.Errorf("%w: %s count %d, buffer holds %d", system.ErrDimensionMismatch, what, n, size)
	}
	return nil
}
