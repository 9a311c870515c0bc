package system

import (
	"fmt"
	"sort"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-blockgraph/dsp/block"
	"github.com/cwbudde/algo-blockgraph/internal/log"
)

// System owns a set of uniquely named blocks and the connections declared
// between them.
type System struct {
	id  string
	log logrus.FieldLogger

	blocks map[string]*block.Block
	conns  map[string][]string

	// Evaluation plans, rebuilt lazily after the topology changes.
	order []string
	plans map[string][]string

	// Per-tick scratch.
	values map[string]float64
	inBuf  []float64
}

// New creates an empty System.
func New(opts ...Option) *System {
	s := &System{
		id:     xid.New().String(),
		log:    log.GetLogger(),
		blocks: make(map[string]*block.Block),
		conns:  make(map[string][]string),
		values: make(map[string]float64),
		inBuf:  make([]float64, 0, 2),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.log = s.log.WithField("system", s.id)
	return s
}

// ID returns the unique identifier used to tag this System's log entries.
func (s *System) ID() string {
	return s.id
}

// AddFIR registers a FIR block with the given taps.
func (s *System) AddFIR(name string, coeffs []float64) error {
	if err := s.checkName("addFIR", name); err != nil {
		return err
	}
	b, err := block.NewFIR(name, coeffs)
	if err != nil {
		return opError("addFIR", name, err)
	}
	s.insert(b)
	return nil
}

// AddIIR registers an IIR block with feed-forward b and feedback a.
// A zero a[0] is accepted and reported as ErrDivisionByZero on evaluation.
func (s *System) AddIIR(name string, b, a []float64) error {
	if err := s.checkName("addIIR", name); err != nil {
		return err
	}
	blk, err := block.NewIIR(name, b, a)
	if err != nil {
		return opError("addIIR", name, err)
	}
	s.insert(blk)
	return nil
}

// AddSummator registers a Summator computing u*source1 + v*source2.
// A Summator must be connected to exactly two sources before it is evaluated.
func (s *System) AddSummator(name string, u, v float64) error {
	if err := s.checkName("addSummator", name); err != nil {
		return err
	}
	s.insert(block.NewSummator(name, u, v))
	return nil
}

func (s *System) checkName(op, name string) error {
	if name == "" {
		return opError(op, name, fmt.Errorf("%w: empty block name", ErrDimensionMismatch))
	}
	if _, ok := s.blocks[name]; ok {
		return opError(op, name, ErrNameConflict)
	}
	return nil
}

func (s *System) insert(b *block.Block) {
	if s.blocks == nil {
		s.blocks = make(map[string]*block.Block)
	}
	s.blocks[b.Name()] = b
	s.invalidate()
	s.log.WithFields(logrus.Fields{"block": b.Name(), "kind": b.Kind()}).Debug("block added")
}

// Block returns the named block.
func (s *System) Block(name string) (*block.Block, error) {
	b, ok := s.blocks[name]
	if !ok {
		return nil, opError("block", name, ErrNameNotFound)
	}
	return b, nil
}

// State returns the lifecycle phase of the named block.
func (s *System) State(name string) (block.State, error) {
	b, err := s.Block(name)
	if err != nil {
		return block.StateFresh, err
	}
	return b.State(), nil
}

// Names returns all block names in lexical order.
func (s *System) Names() []string {
	names := make([]string, 0, len(s.blocks))
	for name := range s.blocks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered blocks.
func (s *System) Len() int {
	return len(s.blocks)
}

// ResetAll returns every block to its Fresh state. It never fails.
func (s *System) ResetAll() {
	for _, b := range s.blocks {
		b.Reset()
	}
	s.log.WithField("blocks", len(s.blocks)).Debug("reset all")
}

// Close releases every block and the connection table at once. A closed
// System behaves like an empty one: lookups fail with ErrNameNotFound.
func (s *System) Close() {
	s.blocks = nil
	s.conns = nil
	s.values = make(map[string]float64)
	s.invalidate()
	s.log.Debug("system closed")
}

func (s *System) invalidate() {
	s.order = nil
	s.plans = nil
}
