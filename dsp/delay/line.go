package delay

import (
	"fmt"

	"github.com/cwbudde/algo-blockgraph/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Line is a fixed-length sample history.
//
// Every sample is written twice, at writePos and writePos+size, so the newest
// size samples are always available as one contiguous window ordered from
// oldest to newest. A zero-length line is valid and holds nothing.
type Line struct {
	buffer   []float64
	size     int
	writePos int
}

// New returns a history line holding the last size samples.
func New(size int) (*Line, error) {
	if size < 0 {
		return nil, fmt.Errorf("delay size must be >= 0: %d", size)
	}
	return &Line{buffer: make([]float64, 2*size), size: size}, nil
}

// Len returns the number of samples the line holds.
func (d *Line) Len() int {
	return d.size
}

// Write pushes one sample, discarding the oldest.
func (d *Line) Write(sample float64) {
	if d.size == 0 {
		return
	}
	d.writePos++
	if d.writePos >= d.size {
		d.writePos = 0
	}
	d.buffer[d.writePos] = sample
	d.buffer[d.writePos+d.size] = sample
}

// Read returns the sample written delay writes ago; 0 is the newest.
// Out-of-range delays read as zero.
func (d *Line) Read(delay int) float64 {
	if delay < 0 || delay >= d.size {
		return 0
	}
	return d.buffer[d.writePos+d.size-delay]
}

// Window returns the held samples from oldest to newest. The slice aliases
// the line and is only valid until the next Write or Reset.
func (d *Line) Window() []float64 {
	if d.size == 0 {
		return d.buffer[:0]
	}
	return d.buffer[d.writePos+1 : d.writePos+1+d.size]
}

// Dot returns sum(taps[k] * Read(k)). taps must be stored oldest-first,
// i.e. reversed relative to the usual h[0]..h[M-1] order, and have Len entries.
func (d *Line) Dot(taps []float64) float64 {
	if d.size == 0 {
		return 0
	}
	return vecmath.DotProduct(taps, d.Window())
}

// Snapshot returns a copy of the history, most recent sample first.
func (d *Line) Snapshot() []float64 {
	out := make([]float64, d.size)
	for i := range out {
		out[i] = d.Read(i)
	}
	return out
}

// Reset clears line state.
func (d *Line) Reset() {
	core.Zero(d.buffer)
	d.writePos = 0
}
