package block

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-blockgraph/dsp/filter/fir"
	"github.com/cwbudde/algo-blockgraph/dsp/filter/iir"
)

var (
	// ErrDimensionMismatch reports invalid coefficient counts or a wrong
	// number of inputs.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrDivisionByZero reports an IIR block whose a[0] is zero.
	ErrDivisionByZero = iir.ErrDivisionByZero
)

// Params holds the immutable, kind-specific parameters of a block.
// Only the fields of the block's kind are set.
type Params struct {
	Coeffs []float64 // FIR taps
	B      []float64 // IIR feed-forward
	A      []float64 // IIR feedback, A[0] normalises
	U, V   float64   // Summator weights
}

// Block is one named processing unit.
type Block struct {
	name  string
	kind  Kind
	state State

	fir  *fir.Filter
	iir  *iir.Filter
	u, v float64
}

// NewFIR creates a FIR block. The coefficients are copied.
func NewFIR(name string, coeffs []float64) (*Block, error) {
	f, err := fir.New(coeffs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDimensionMismatch, err)
	}
	return &Block{name: name, kind: KindFIR, fir: f}, nil
}

// NewIIR creates an IIR block from feed-forward b and feedback a.
// A zero a[0] is accepted here and reported by Process.
func NewIIR(name string, b, a []float64) (*Block, error) {
	f, err := iir.New(b, a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDimensionMismatch, err)
	}
	return &Block{name: name, kind: KindIIR, iir: f}, nil
}

// NewSummator creates a Summator computing u*in[0] + v*in[1].
func NewSummator(name string, u, v float64) *Block {
	return &Block{name: name, kind: KindSummator, u: u, v: v}
}

// Name returns the block name.
func (b *Block) Name() string { return b.name }

// Kind returns the block variant.
func (b *Block) Kind() Kind { return b.kind }

// State returns the current lifecycle phase.
func (b *Block) State() State { return b.state }

// Arity returns the number of inputs Process expects.
func (b *Block) Arity() int { return b.kind.Arity() }

// Params returns a copy of the block parameters.
func (b *Block) Params() Params {
	switch b.kind {
	case KindFIR:
		return Params{Coeffs: b.fir.Coefficients()}
	case KindIIR:
		return Params{B: b.iir.Numerator(), A: b.iir.Denominator()}
	default:
		return Params{U: b.u, V: b.v}
	}
}

// History returns the kind-specific history, most recent sample first:
// FIR inputs, IIR inputs followed by IIR outputs, nothing for a Summator.
func (b *Block) History() []float64 {
	switch b.kind {
	case KindFIR:
		return b.fir.History()
	case KindIIR:
		return append(b.iir.InputHistory(), b.iir.OutputHistory()...)
	default:
		return nil
	}
}

// Process consumes len(in) == Arity() samples and returns one output.
// A failed call leaves the block state unchanged.
func (b *Block) Process(in []float64) (float64, error) {
	if len(in) != b.kind.Arity() {
		return 0, fmt.Errorf("%w: %s block %q takes %d input(s), got %d",
			ErrDimensionMismatch, b.kind, b.name, b.kind.Arity(), len(in))
	}

	var y float64
	switch b.kind {
	case KindFIR:
		y = b.fir.ProcessSample(in[0])
	case KindIIR:
		var err error
		y, err = b.iir.ProcessSample(in[0])
		if err != nil {
			return 0, err
		}
	case KindSummator:
		y = b.u*in[0] + b.v*in[1]
	}

	b.state = StateStreaming
	return y, nil
}

// ProcessSample is Process for single-input kinds.
func (b *Block) ProcessSample(x float64) (float64, error) {
	in := [1]float64{x}
	return b.Process(in[:])
}

// Reset zeroes all history and returns the block to StateFresh.
// Parameters are untouched.
func (b *Block) Reset() {
	switch b.kind {
	case KindFIR:
		b.fir.Reset()
	case KindIIR:
		b.iir.Reset()
	}
	b.state = StateFresh
}

// Clone returns a Fresh copy of b with identical name and parameters.
func (b *Block) Clone() *Block {
	switch b.kind {
	case KindFIR:
		c, _ := NewFIR(b.name, b.fir.Coefficients())
		return c
	case KindIIR:
		c, _ := NewIIR(b.name, b.iir.Numerator(), b.iir.Denominator())
		return c
	default:
		return NewSummator(b.name, b.u, b.v)
	}
}
