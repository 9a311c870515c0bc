package signal

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/cwbudde/algo-blockgraph/dsp/core"
)

// Generator creates deterministic excitation signals for probing block
// graphs.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the noise seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a Generator for the given processor configuration.
func NewGenerator(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Impulse returns a unit impulse at sample 0.
func (g *Generator) Impulse(samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("impulse samples must be > 0: %d", samples)
	}
	out := make([]float64, samples)
	out[0] = 1
	return out, nil
}

// Step returns a unit step starting at sample 0.
func (g *Generator) Step(samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("step samples must be > 0: %d", samples)
	}
	out := make([]float64, samples)
	for i := range out {
		out[i] = 1
	}
	return out, nil
}

// Sine returns a sine at freqHz relative to the configured sample rate.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	if freqHz < 0 || freqHz > g.cfg.SampleRate/2 {
		return nil, fmt.Errorf("sine frequency must be in [0, %g]: %g", g.cfg.SampleRate/2, freqHz)
	}
	out := make([]float64, samples)
	w := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(w*float64(i))
	}
	return out, nil
}

// Noise returns seeded white noise in [-amplitude, amplitude].
func (g *Generator) Noise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	rng := rand.New(rand.NewSource(g.seed))
	out := make([]float64, samples)
	for i := range out {
		out[i] = amplitude * (2*rng.Float64() - 1)
	}
	return out, nil
}

// Excitation returns the named probe signal: "impulse", "step", "noise"
// (unit amplitude) or "sine" (unit amplitude at freqHz).
func (g *Generator) Excitation(kind string, freqHz float64, samples int) ([]float64, error) {
	switch strings.ToLower(kind) {
	case "impulse":
		return g.Impulse(samples)
	case "step":
		return g.Step(samples)
	case "noise":
		return g.Noise(1, samples)
	case "sine":
		return g.Sine(freqHz, 1, samples)
	default:
		return nil, fmt.Errorf("unknown excitation %q", kind)
	}
}
