// Package fir provides a direct-form FIR filter runtime.
//
// A [Filter] applies a fixed set of coefficients ("taps") to an input stream.
// Before the first sample the history is all zero, so the first M-1 outputs
// are partial sums. The inner product is delegated to algo-vecmath, which
// selects a SIMD kernel for the running CPU.
//
// This package provides the processing runtime only. Coefficient design
// is a separate concern.
package fir
