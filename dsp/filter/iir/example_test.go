package iir_test

import (
	"fmt"

	"github.com/cwbudde/algo-blockgraph/dsp/filter/iir"
)

func ExampleFilter_ProcessSample() {
	// One-pole smoother with a zero at Nyquist.
	f, err := iir.New([]float64{0.1, 0.1}, []float64{1, -0.8})
	if err != nil {
		panic(err)
	}

	for i, x := range []float64{1, 0, 0, 0} {
		y, err := f.ProcessSample(x)
		if err != nil {
			panic(err)
		}
		fmt.Printf("y[%d] = %.4f\n", i, y)
	}
	// Output:
	// y[0] = 0.1000
	// y[1] = 0.1800
	// y[2] = 0.1440
	// y[3] = 0.1152
}
