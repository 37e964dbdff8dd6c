package val_test

import (
	"fmt"

	"github.com/khanaslam439/vidar/val"
)

func ExampleKeyframes() {
	opacity := val.MustKeyframes(val.KF(0, 0), val.KF(2, 1))

	for _, t := range []float64{0, 1, 2, 3} {
		fmt.Printf("t=%.0f opacity=%.2f\n", t, val.Resolve(opacity, t))
	}

	// Output:
	// t=0 opacity=0.00
	// t=1 opacity=0.50
	// t=2 opacity=1.00
	// t=3 opacity=1.00
}
