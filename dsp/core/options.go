package core

// ProcessorConfig defines common processing settings shared by the
// file-based tools: sample rate, chunk size and PCM bit depth.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
	BitDepth   int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns sensible defaults for offline processing.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 48000,
		BlockSize:  1024,
		BitDepth:   16,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the number of samples handed to one ProcessSignal call.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithBitDepth sets the PCM bit depth used when writing files.
// Only 16, 24 and 32 are accepted; other values are ignored.
func WithBitDepth(bitDepth int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		switch bitDepth {
		case 16, 24, 32:
			cfg.BitDepth = bitDepth
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
