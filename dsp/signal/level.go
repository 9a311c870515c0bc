package signal

import (
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-blockgraph/dsp/core"
)

// Level summarizes the amplitude of a signal.
type Level struct {
	Frames        int
	DC            float64 // mean
	RMS           float64
	Peak          float64 // max |x|
	CrestFactor   float64 // peak / RMS, 0 for silence
	ZeroCrossings int
}

// PeakDB returns the peak in dBFS.
func (l Level) PeakDB() float64 { return core.LinearToDB(l.Peak) }

// RMSDB returns the RMS level in dBFS.
func (l Level) RMSDB() float64 { return core.LinearToDB(l.RMS) }

// Meter accumulates a Level over consecutive chunks of one signal. The
// result does not depend on how the signal is split.
type Meter struct {
	n         int
	sum       float64
	sumSq     float64
	peak      float64
	last      float64
	crossings int
}

// Update adds the next chunk.
func (m *Meter) Update(x []float64) {
	if len(x) == 0 {
		return
	}

	m.sum += vecmath.Sum(x)
	m.sumSq += vecmath.DotProduct(x, x)
	m.peak = max(m.peak, vecmath.MaxAbs(x))

	prev := m.last
	for i, v := range x {
		if (i > 0 || m.n > 0) && prev*v < 0 {
			m.crossings++
		}
		prev = v
	}
	m.last = prev
	m.n += len(x)
}

// Level returns the statistics of everything seen since the last Reset.
func (m *Meter) Level() Level {
	if m.n == 0 {
		return Level{}
	}
	nf := float64(m.n)
	l := Level{
		Frames:        m.n,
		DC:            m.sum / nf,
		RMS:           math.Sqrt(m.sumSq / nf),
		Peak:          m.peak,
		ZeroCrossings: m.crossings,
	}
	if l.RMS > 0 {
		l.CrestFactor = l.Peak / l.RMS
	}
	return l
}

// Reset clears the meter.
func (m *Meter) Reset() {
	*m = Meter{}
}

// Measure returns the Level of x.
func Measure(x []float64) Level {
	var m Meter
	m.Update(x)
	return m.Level()
}
