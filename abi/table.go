package abi

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-blockgraph/dsp/system"
	"github.com/cwbudde/algo-blockgraph/internal/log"
)

// ErrInvalidHandle is recorded for calls on a zero, destroyed or unknown
// handle.
var ErrInvalidHandle = errors.New("invalid system handle")

// Handle is an opaque reference to a System owned by a Table. The zero
// Handle is never issued.
type Handle uint64

func makeHandle(index, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(index))
}

func (h Handle) index() uint32 { return uint32(h) }

func (h Handle) generation() uint32 { return uint32(h >> 32) }

func (h Handle) String() string {
	return fmt.Sprintf("%d:%d", h.index(), h.generation())
}

type slot struct {
	gen uint32
	sys *system.System
}

// Table owns Systems on behalf of handle holders and keeps the last error
// message.
type Table struct {
	mu      sync.Mutex
	slots   []slot
	free    []uint32
	lastErr string
	live    int

	log logrus.FieldLogger
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithLogger sets the logger used for failures and for the Systems the
// Table creates.
func WithLogger(l logrus.FieldLogger) TableOption {
	return func(t *Table) {
		if l != nil {
			t.log = l
		}
	}
}

// NewTable creates an empty handle table.
func NewTable(opts ...TableOption) *Table {
	t := &Table{log: log.GetLogger()}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Len returns the number of live handles.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.live
}

// CreateSystem allocates an empty System and returns its handle. It never
// fails.
func (t *Table) CreateSystem() Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		// Slot 0 stays unused so that no issued handle is zero.
		if len(t.slots) == 0 {
			t.slots = append(t.slots, slot{})
		}
		idx = uint32(len(t.slots))
		t.slots = append(t.slots, slot{})
	}

	s := &t.slots[idx]
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.sys = system.New(system.WithLogger(t.log))
	t.live++

	h := makeHandle(idx, s.gen)
	t.log.WithFields(logrus.Fields{"handle": h.String(), "system": s.sys.ID()}).Debug("system created")
	return h
}

// DestroySystem releases the System behind h. The handle, and every copy of
// it, becomes invalid. Destroying an invalid handle records
// ErrInvalidHandle.
func (t *Table) DestroySystem(h Handle) {
	t.mu.Lock()
	s, err := t.slotLocked(h)
	if err != nil {
		t.mu.Unlock()
		t.fail("destroySystem", err)
		return
	}
	sys := s.sys
	s.sys = nil
	s.gen++
	t.free = append(t.free, h.index())
	t.live--
	l := t.log
	t.mu.Unlock()

	sys.Close()
	l.WithField("handle", h.String()).Debug("system destroyed")
}

// GetLastError returns the message of the most recent failure and clears
// it. It returns "" when nothing failed since the previous read.
func (t *Table) GetLastError() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	msg := t.lastErr
	t.lastErr = ""
	return msg
}

func (t *Table) lookup(h Handle) (*system.System, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, err := t.slotLocked(h)
	if err != nil {
		return nil, err
	}
	return s.sys, nil
}

func (t *Table) slotLocked(h Handle) (*slot, error) {
	idx := h.index()
	if h == 0 || int(idx) >= len(t.slots) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHandle, h)
	}
	s := &t.slots[idx]
	if s.sys == nil || s.gen != h.generation() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHandle, h)
	}
	return s, nil
}

func (t *Table) fail(op string, err error) {
	t.mu.Lock()
	t.lastErr = err.Error()
	l := t.log
	t.mu.Unlock()

	l.WithError(err).WithField("op", op).Error("call failed")
}
