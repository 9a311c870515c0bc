package wavio

import (
	"errors"
	"fmt"
	"io"
	"os"

	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-blockgraph/dsp/core"
)

const (
	pcmFormat = 1

	// Frames converted per encoder write.
	chunkFrames = 4096
)

type writeConfig struct {
	ditherGain float64
	ditherSeed int64
}

// WriteOption configures Write and Encode.
type WriteOption func(*writeConfig)

// WithDither adds TPDF dither with the given gain in LSB units before
// quantization. A gain of 1 gives 2 LSB peak to peak.
func WithDither(gain float64, seed int64) WriteOption {
	return func(cfg *writeConfig) {
		cfg.ditherGain = gain
		cfg.ditherSeed = seed
	}
}

// Write encodes a to a new WAV file at path, using a.BitDepth.
func Write(path string, a *Audio, opts ...WriteOption) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Encode(f, a, opts...); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// Encode writes a as interleaved PCM. All channels must have the same
// length.
func Encode(w io.WriteSeeker, a *Audio, opts ...WriteOption) error {
	if a == nil || len(a.Channels) == 0 {
		return errors.New("wavio: no channels to write")
	}
	if a.SampleRate <= 0 {
		return fmt.Errorf("wavio: sample rate must be > 0: %d", a.SampleRate)
	}
	frames := a.NumFrames()
	if frames == 0 {
		return errors.New("wavio: no samples to write")
	}
	for c, ch := range a.Channels {
		if len(ch) != frames {
			return fmt.Errorf("wavio: channel %d has %d samples, want %d", c, len(ch), frames)
		}
	}

	sc, err := newScale(a.BitDepth)
	if err != nil {
		return err
	}

	var cfg writeConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	var state *vecmath.DitherState
	if cfg.ditherGain > 0 {
		state = vecmath.NewDitherState(cfg.ditherSeed)
	}

	numChannels := len(a.Channels)
	encoder := wav.NewEncoder(w, a.SampleRate, a.BitDepth, numChannels, pcmFormat)
	ib := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  a.SampleRate,
		},
		SourceBitDepth: a.BitDepth,
	}

	ints := make([]int, chunkFrames)
	var scratch []float64
	for lo := 0; lo < frames; lo += chunkFrames {
		hi := min(lo+chunkFrames, frames)
		n := hi - lo

		ib.Data = make([]int, n*numChannels)
		for c, ch := range a.Channels {
			scratch = core.EnsureLen(scratch, n)
			sc.quantize(ints[:n], ch[lo:hi], scratch, cfg.ditherGain, state)
			for i, v := range ints[:n] {
				ib.Data[i*numChannels+c] = v
			}
		}

		if err := encoder.Write(ib); err != nil {
			return fmt.Errorf("wavio: encode: %w", err)
		}
	}

	return encoder.Close()
}
