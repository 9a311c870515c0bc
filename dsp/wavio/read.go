package wavio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/wav"
)

// Audio is a decoded multi-channel PCM signal.
type Audio struct {
	Channels   [][]float64
	SampleRate int
	BitDepth   int
}

// NumChannels returns the channel count.
func (a *Audio) NumChannels() int {
	return len(a.Channels)
}

// NumFrames returns the number of samples per channel.
func (a *Audio) NumFrames() int {
	if len(a.Channels) == 0 {
		return 0
	}
	return len(a.Channels[0])
}

// Read decodes the WAV file at path.
func Read(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// Decode reads a whole WAV stream and splits it into channels.
func Decode(r io.ReadSeeker) (*Audio, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, errors.New("wavio: wav is not valid")
	}

	bitDepth := int(decoder.BitDepth)
	sc, err := newScale(bitDepth)
	if err != nil {
		return nil, err
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wavio: decode pcm: %w", err)
	}

	numChannels := buf.Format.NumChannels
	frames := len(buf.Data) / numChannels
	channels := make([][]float64, numChannels)
	for c := range channels {
		channels[c] = make([]float64, frames)
	}
	for i := 0; i < frames; i++ {
		for c := range channels {
			channels[c][i] = sc.toFloat(buf.Data[i*numChannels+c])
		}
	}

	return &Audio{
		Channels:   channels,
		SampleRate: int(decoder.SampleRate),
		BitDepth:   bitDepth,
	}, nil
}
