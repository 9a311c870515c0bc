// Package wavio reads and writes PCM WAV files as per-channel float64
// sample slices in [-1, 1].
//
// Samples are scaled the same way in both directions: an n-bit integer k
// maps to (k+0.5)/(2^(n-1)-0.5), so that writing what was read is lossless.
// Writing can add TPDF dither before quantization.
package wavio
