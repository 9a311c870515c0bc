package system

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-blockgraph/dsp/block"
)

var (
	// ErrNameConflict is returned when adding a block whose name is taken.
	ErrNameConflict = errors.New("name conflict")

	// ErrNameNotFound is returned for a reference to an absent block.
	ErrNameNotFound = errors.New("name not found")

	// ErrDimensionMismatch is returned for invalid coefficient counts, an
	// empty name, a wrong number of sources, or a short output buffer.
	ErrDimensionMismatch = block.ErrDimensionMismatch

	// ErrDivisionByZero is returned when an IIR block has a[0] == 0.
	ErrDivisionByZero = block.ErrDivisionByZero

	// ErrDanglingConnection is returned when Connect cites an unknown source.
	ErrDanglingConnection = errors.New("dangling connection reference")

	// ErrCycle is returned when Connect would close a cycle.
	ErrCycle = errors.New("connection cycle")

	// ErrUnknownKind is returned by graph descriptions with an unknown block type.
	ErrUnknownKind = block.ErrUnknownKind
)

// BlockError records the operation, block name and, for batch evaluation,
// the sample index at which a failure happened.
type BlockError struct {
	Op     string
	Name   string
	Sample int // -1 when not evaluating a batch
	Err    error
}

func (e *BlockError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	if e.Sample >= 0 {
		return fmt.Sprintf("%s %q at sample %d: %v", e.Op, e.Name, e.Sample, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Name, e.Err)
}

func (e *BlockError) Unwrap() error {
	return e.Err
}

func opError(op, name string, err error) error {
	return &BlockError{Op: op, Name: name, Sample: -1, Err: err}
}
