package abi

import (
	"github.com/sirupsen/logrus"
)

var std = NewTable()

// Default returns the process-wide table used by the package-level calls.
func Default() *Table {
	return std
}

// SetLogger replaces the logger of the process-wide table. Systems created
// afterwards use it too.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		return
	}
	std.mu.Lock()
	std.log = l
	std.mu.Unlock()
}

// CreateSystem allocates an empty System in the process-wide table.
func CreateSystem() Handle { return std.CreateSystem() }

// DestroySystem releases the System behind h.
func DestroySystem(h Handle) { std.DestroySystem(h) }

// AddFIR adds a FIR block using the first n taps of coeffs.
func AddFIR(h Handle, name string, coeffs []float64, n int) {
	std.AddFIR(h, name, coeffs, n)
}

// AddIIR adds an IIR block with nb feed-forward and na feedback coefficients.
func AddIIR(h Handle, name string, b []float64, nb int, a []float64, na int) {
	std.AddIIR(h, name, b, nb, a, na)
}

// AddSummator adds a Summator block computing u*source1 + v*source2.
func AddSummator(h Handle, name string, u, v float64) {
	std.AddSummator(h, name, u, v)
}

// Connect declares the first n entries of sources as the inputs of consumer.
func Connect(h Handle, consumer string, sources []string, n int) {
	std.Connect(h, consumer, sources, n)
}

// ResetAll returns every block of the System to its initial state.
func ResetAll(h Handle) { std.ResetAll(h) }

// ProcessSignal runs length samples of in through the named block into out.
func ProcessSignal(h Handle, name string, in, out []float64, length int) {
	std.ProcessSignal(h, name, in, out, length)
}

// ComputeBlock feeds one sample to the named block and returns its output.
func ComputeBlock(h Handle, name string, x float64) float64 {
	return std.ComputeBlock(h, name, x)
}

// GetLastError returns and clears the last failure message.
func GetLastError() string { return std.GetLastError() }
