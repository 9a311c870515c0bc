package system

import (
	"encoding/json"
	"fmt"

	"github.com/cwbudde/algo-blockgraph/dsp/block"
)

// BlockSpec is a JSON-serializable block declaration.
type BlockSpec struct {
	Name   string    `json:"name"`
	Type   string    `json:"type"`
	Coeffs []float64 `json:"coeffs,omitempty"`
	B      []float64 `json:"b,omitempty"`
	A      []float64 `json:"a,omitempty"`
	U      float64   `json:"u,omitempty"`
	V      float64   `json:"v,omitempty"`
}

// ConnectionSpec is a JSON-serializable connection declaration.
type ConnectionSpec struct {
	To   string   `json:"to"`
	From []string `json:"from"`
}

// Description is the root JSON structure of a block graph.
type Description struct {
	Blocks      []BlockSpec      `json:"blocks"`
	Connections []ConnectionSpec `json:"connections,omitempty"`
}

// ParseGraph decodes a JSON graph description.
func ParseGraph(raw []byte) (*Description, error) {
	var d Description
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("invalid graph json: %w", err)
	}
	return &d, nil
}

// LoadGraph decodes a JSON graph description and builds a System from it.
func LoadGraph(raw []byte, opts ...Option) (*System, error) {
	d, err := ParseGraph(raw)
	if err != nil {
		return nil, err
	}
	return d.Build(opts...)
}

// Build creates a System, adds every block in declaration order and then
// applies the connections. It stops at the first error.
func (d *Description) Build(opts ...Option) (*System, error) {
	s := New(opts...)
	if err := d.Apply(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Apply adds the described blocks and connections to an existing System.
func (d *Description) Apply(s *System) error {
	for _, spec := range d.Blocks {
		if err := addSpec(s, spec); err != nil {
			return err
		}
	}

	for _, c := range d.Connections {
		if err := s.Connect(c.To, c.From); err != nil {
			return err
		}
	}

	return nil
}

func addSpec(s *System, spec BlockSpec) error {
	kind, err := block.ParseKind(spec.Type)
	if err != nil {
		return opError("load", spec.Name, err)
	}

	switch kind {
	case block.KindFIR:
		return s.AddFIR(spec.Name, spec.Coeffs)
	case block.KindIIR:
		return s.AddIIR(spec.Name, spec.B, spec.A)
	default:
		return s.AddSummator(spec.Name, spec.U, spec.V)
	}
}

// Describe returns the description of s: blocks in lexical order and
// connections in lexical order of their consumer.
func (s *System) Describe() *Description {
	d := &Description{}
	for _, name := range s.Names() {
		b := s.blocks[name]
		p := b.Params()
		d.Blocks = append(d.Blocks, BlockSpec{
			Name:   name,
			Type:   b.Kind().String(),
			Coeffs: p.Coeffs,
			B:      p.B,
			A:      p.A,
			U:      p.U,
			V:      p.V,
		})
		if src := s.conns[name]; len(src) > 0 {
			d.Connections = append(d.Connections, ConnectionSpec{To: name, From: append([]string(nil), src...)})
		}
	}
	return d
}

// MarshalJSON encodes the System as its Description.
func (s *System) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Describe())
}
