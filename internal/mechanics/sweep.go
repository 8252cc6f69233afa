package mechanics

import (
	"fmt"

	"github.com/cpmech/gosl/utl"
)

// Configurable is implemented by models whose parameters can be tuned by name.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Sweep returns num values evenly spaced over [start, stop]. With
// endpoint=false the stop value is excluded, as in a half-open range.
func Sweep(start, stop float64, num int, endpoint bool) []float64 {
	if num <= 0 {
		return []float64{}
	}
	if num == 1 {
		return []float64{start}
	}
	if !endpoint {
		stop -= (stop - start) / float64(num)
	}
	return utl.LinSpace(start, stop, num)
}

func unknownParam(name string) error {
	return fmt.Errorf("unknown param: %s", name)
}

func boolParam(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
