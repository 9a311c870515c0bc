// Package iir provides a direct-form I IIR filter runtime with arbitrary
// numerator and denominator lengths.
//
// The filter evaluates
//
//	y[n] = (b[0]x[n] + ... + b[Nb-1]x[n-Nb+1] - a[1]y[n-1] - ... - a[Na-1]y[n-Na+1]) / a[0]
//
// A zero a[0] is accepted at construction and reported per sample as
// [ErrDivisionByZero], leaving the filter state untouched.
package iir
