// Package signal provides sample-vector arithmetic and deterministic
// excitation signals for driving block graphs.
package signal
