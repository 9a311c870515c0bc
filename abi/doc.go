// Package abi exposes block graphs through a flat, handle-based call surface
// suited to foreign callers.
//
// Systems are referenced by opaque Handle values. A Handle packs a slot
// index with a generation counter, so calls on a destroyed or never-issued
// handle are detected and reported as ErrInvalidHandle instead of touching
// freed state.
//
// Calls never return errors or panic. A failing call returns a neutral value
// (nothing for void calls, an untouched output buffer for ProcessSignal,
// 0 for ComputeBlock), logs the failure and records its message in a single
// process-wide error slot. GetLastError returns that message once and then
// clears it, so callers must poll immediately after each call whose
// preconditions they cannot guarantee. A successful call does not clear a
// pending message.
//
// Handle creation and destruction are safe for concurrent use. The System
// behind one handle is not: callers use one handle per goroutine or provide
// their own mutual exclusion.
package abi
