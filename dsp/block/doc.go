// Package block defines the processing unit of a block graph.
//
// A [Block] is a tagged variant over three kinds: a FIR filter, an IIR filter
// and a two-input weighted Summator. All kinds share one contract: Process
// consumes exactly Arity input samples and returns one output sample, Reset
// returns the block to its Fresh state.
//
// Blocks are not safe for concurrent use.
package block
