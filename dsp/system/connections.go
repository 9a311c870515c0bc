package system

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// Connect declares the ordered sources feeding consumer, replacing any
// previous declaration. An empty sources list removes the declaration so
// that consumer is fed by the external sample again.
//
// Checks run in order: the consumer must exist (ErrNameNotFound), every
// source must exist (ErrDanglingConnection), the number of sources must
// match the consumer's arity (ErrDimensionMismatch) and the new edges must
// not close a cycle (ErrCycle). On failure the table is unchanged.
func (s *System) Connect(consumer string, sources []string) error {
	b, ok := s.blocks[consumer]
	if !ok {
		return opError("connect", consumer, ErrNameNotFound)
	}

	for _, src := range sources {
		if _, ok := s.blocks[src]; !ok {
			return opError("connect", consumer, fmt.Errorf("%w: source %q", ErrDanglingConnection, src))
		}
	}

	if len(sources) == 0 {
		delete(s.conns, consumer)
		s.invalidate()
		s.log.WithField("block", consumer).Debug("connections cleared")
		return nil
	}

	if len(sources) != b.Arity() {
		return opError("connect", consumer, fmt.Errorf("%w: %s block takes %d source(s), got %d",
			ErrDimensionMismatch, b.Kind(), b.Arity(), len(sources)))
	}

	next := make(map[string][]string, len(s.conns)+1)
	for k, v := range s.conns {
		next[k] = v
	}
	next[consumer] = append([]string(nil), sources...)

	order, err := topoOrder(s.Names(), next)
	if err != nil {
		return opError("connect", consumer, err)
	}

	s.conns = next
	s.invalidate()
	s.order = order
	s.log.WithFields(logrus.Fields{"block": consumer, "sources": sources}).Debug("connected")

	return nil
}

// Sources returns a copy of the sources declared for name, or nil when name
// is fed by the external sample.
func (s *System) Sources(name string) ([]string, error) {
	if _, ok := s.blocks[name]; !ok {
		return nil, opError("sources", name, ErrNameNotFound)
	}
	src := s.conns[name]
	if len(src) == 0 {
		return nil, nil
	}
	return append([]string(nil), src...), nil
}

// Connections returns a copy of the whole connection table.
func (s *System) Connections() map[string][]string {
	out := make(map[string][]string, len(s.conns))
	for k, v := range s.conns {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Order returns every block name in an order where sources precede their
// consumers. Ties are broken lexically.
func (s *System) Order() []string {
	return append([]string(nil), s.evalOrder()...)
}

func (s *System) evalOrder() []string {
	if s.order == nil {
		// The table is kept acyclic by Connect, so this cannot fail.
		s.order, _ = topoOrder(s.Names(), s.conns)
	}
	return s.order
}

// topoOrder sorts names with Kahn's algorithm over edges source -> consumer.
// names must be sorted; the result is deterministic.
func topoOrder(names []string, conns map[string][]string) ([]string, error) {
	indegree := make(map[string]int, len(names))
	outgoing := make(map[string][]string, len(names))
	for _, name := range names {
		indegree[name] = 0
	}

	for _, consumer := range names {
		for _, src := range conns[consumer] {
			outgoing[src] = append(outgoing[src], consumer)
			indegree[consumer]++
		}
	}

	queue := make([]string, 0, len(names))
	for _, name := range names {
		if indegree[name] == 0 {
			queue = append(queue, name)
		}
	}

	order := make([]string, 0, len(names))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		order = append(order, id)

		var ready []string
		for _, to := range outgoing[id] {
			indegree[to]--
			if indegree[to] == 0 {
				ready = append(ready, to)
			}
		}
		sort.Strings(ready)
		queue = append(queue, ready...)
	}

	if len(order) != len(names) {
		return nil, ErrCycle
	}

	return order, nil
}
