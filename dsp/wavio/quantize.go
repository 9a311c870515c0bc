package wavio

import (
	"errors"
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-blockgraph/dsp/core"
)

// ErrUnsupportedBitDepth is returned for bit depths other than 16, 24 and 32.
var ErrUnsupportedBitDepth = errors.New("wavio: only 16, 24 and 32 bit depth is supported")

type scale struct {
	mul     float64
	div     float64
	limitLo int
	limitHi int
}

func newScale(bitDepth int) (scale, error) {
	switch bitDepth {
	case 16, 24, 32:
	default:
		return scale{}, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	mul := math.Exp2(float64(bitDepth-1)) - 0.5
	return scale{
		mul:     mul,
		div:     1 / mul,
		limitLo: -int(math.Round(mul + 0.5)),
		limitHi: int(math.Round(mul - 0.5)),
	}, nil
}

func (s scale) toFloat(v int) float64 {
	return (float64(v) + 0.5) * s.div
}

// quantize converts src into dst, adding TPDF dither of the given gain in
// LSB units when state is non-nil. scratch must be as long as src.
func (s scale) quantize(dst []int, src, scratch []float64, gain float64, state *vecmath.DitherState) {
	if len(src) == 0 {
		return
	}
	vecmath.ScaleBlock(scratch, src, s.mul)
	if state != nil && gain > 0 {
		vecmath.AddDitherTPDF(scratch, gain, state)
	}
	lo, hi := float64(s.limitLo), float64(s.limitHi)
	for i, v := range scratch {
		dst[i] = int(math.Floor(core.Clamp(v, lo, hi)))
	}
}
