// Package system implements a named block graph: a registry of FIR, IIR and
// Summator blocks, a table of declared connections between them, and an
// evaluator that drives a block over a batch of samples or one sample at a
// time.
//
// # Evaluation
//
// Connections are honoured. Evaluating a block first evaluates its declared
// sources, in topological order, for the same sample tick; a block without
// declared sources consumes the external sample. Each block processes at
// most once per tick, so a source shared by several consumers advances its
// history once. Connect rejects edges that would close a cycle.
//
// Calling ComputeBlock N times with x[0..N) yields exactly the same outputs
// as one ProcessSignal call over the same array.
//
// # Concurrency
//
// A System is not safe for concurrent use. Use one System per goroutine or
// guard it with a mutex. ProcessSignal is synchronous and cannot be
// cancelled once started.
package system
