package system

import (
	"fmt"
)

// ComputeBlock evaluates the named block for one input sample and returns
// its output. Upstream sources are evaluated first for the same tick.
//
// It fails with ErrNameNotFound for an unknown name, ErrDivisionByZero when
// an IIR block on the path has a[0] == 0, and ErrDimensionMismatch when a
// Summator on the path has no declared sources. Blocks evaluated before the
// failing one keep their advanced state; the failing block does not.
func (s *System) ComputeBlock(name string, x float64) (float64, error) {
	if _, ok := s.blocks[name]; !ok {
		return 0, opError("computeBlock", name, ErrNameNotFound)
	}

	y, err := s.tick(s.plan(name), x)
	if err != nil {
		return 0, opError("computeBlock", name, err)
	}
	return y, nil
}

// ProcessSignal evaluates the named block over input, strictly left to
// right, writing output[i] for input[i]. output must be at least as long as
// input.
//
// On an unknown name or a short output buffer nothing is written. When a
// sample fails, the loop stops: output[:i] keeps the values already written
// and output[i:] is left untouched. The returned *BlockError carries i.
func (s *System) ProcessSignal(name string, input, output []float64) error {
	if _, ok := s.blocks[name]; !ok {
		return opError("processSignal", name, ErrNameNotFound)
	}

	if len(output) < len(input) {
		return opError("processSignal", name, fmt.Errorf("%w: output holds %d samples, input has %d",
			ErrDimensionMismatch, len(output), len(input)))
	}

	plan := s.plan(name)
	for i, x := range input {
		y, err := s.tick(plan, x)
		if err != nil {
			return &BlockError{Op: "processSignal", Name: name, Sample: i, Err: err}
		}
		output[i] = y
	}

	return nil
}

// ComputeAll evaluates every block for one input sample and returns the
// output of each, keyed by name.
func (s *System) ComputeAll(x float64) (map[string]float64, error) {
	order := s.evalOrder()
	if len(order) == 0 {
		return map[string]float64{}, nil
	}

	if _, err := s.tick(order, x); err != nil {
		return nil, opError("computeAll", "", err)
	}

	out := make(map[string]float64, len(order))
	for _, name := range order {
		out[name] = s.values[name]
	}
	return out, nil
}

// plan returns the names that must be evaluated, in order, to produce the
// output of target. target is always last.
func (s *System) plan(target string) []string {
	if p, ok := s.plans[target]; ok {
		return p
	}

	needed := map[string]bool{target: true}
	stack := []string{target}
	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, src := range s.conns[name] {
			if !needed[src] {
				needed[src] = true
				stack = append(stack, src)
			}
		}
	}

	p := make([]string, 0, len(needed))
	for _, name := range s.evalOrder() {
		if needed[name] {
			p = append(p, name)
		}
	}

	if s.plans == nil {
		s.plans = make(map[string][]string)
	}
	s.plans[target] = p

	return p
}

// tick runs one sample through the blocks of plan and returns the output of
// the last one.
func (s *System) tick(plan []string, x float64) (float64, error) {
	var y float64
	for _, name := range plan {
		in := s.inBuf[:0]
		if sources := s.conns[name]; len(sources) > 0 {
			for _, src := range sources {
				in = append(in, s.values[src])
			}
		} else {
			in = append(in, x)
		}

		var err error
		y, err = s.blocks[name].Process(in)
		if err != nil {
			if name != plan[len(plan)-1] {
				return 0, fmt.Errorf("upstream block %q: %w", name, err)
			}
			return 0, err
		}
		s.values[name] = y
	}
	return y, nil
}
