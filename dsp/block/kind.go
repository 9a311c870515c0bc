package block

import (
	"errors"
	"fmt"
	"strings"
)

// Kind selects the block variant.
type Kind int

const (
	KindFIR Kind = iota + 1
	KindIIR
	KindSummator
)

// ErrUnknownKind is returned by ParseKind for unrecognised names.
var ErrUnknownKind = errors.New("unknown block kind")

func (k Kind) String() string {
	switch k {
	case KindFIR:
		return "fir"
	case KindIIR:
		return "iir"
	case KindSummator:
		return "summator"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Arity returns the number of inputs a block of this kind consumes per sample.
func (k Kind) Arity() int {
	if k == KindSummator {
		return 2
	}
	return 1
}

// ParseKind maps "fir", "iir" and "summator" (case-insensitive, "sum" is
// accepted as an alias) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fir":
		return KindFIR, nil
	case "iir":
		return KindIIR, nil
	case "summator", "sum":
		return KindSummator, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// State is the history lifecycle phase of a block.
type State int

const (
	// StateFresh means all history is zero: after creation or Reset.
	StateFresh State = iota
	// StateStreaming means at least one sample was processed since StateFresh.
	StateStreaming
)

func (s State) String() string {
	if s == StateStreaming {
		return "streaming"
	}
	return "fresh"
}
