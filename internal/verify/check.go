package verify

import "math"

// Check accumulates the worst absolute deviation of a computed quantity
// from its exact value.
type Check struct {
	group   string
	name    string
	tol     float64
	worst   float64
	samples int
	failed  bool
}

func NewCheck(group, name string, tol float64) *Check {
	return &Check{group: group, name: name, tol: tol}
}

func (c *Check) Group() string { return c.group }
func (c *Check) Name() string  { return c.name }
func (c *Check) Tol() float64  { return c.tol }

// Observe records one comparison. NaN or Inf fail the check.
func (c *Check) Observe(got, want float64) {
	c.samples++
	d := math.Abs(got - want)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		c.failed = true
		return
	}
	c.worst = math.Max(c.worst, d)
}

// Fail marks the check failed, for errors raised while computing it.
func (c *Check) Fail() {
	c.failed = true
}

// Value is the worst deviation seen.
func (c *Check) Value() float64 {
	return c.worst
}

func (c *Check) Samples() int {
	return c.samples
}

func (c *Check) Pass() bool {
	return !c.failed && c.samples > 0 && c.worst <= c.tol
}

func (c *Check) Reset() {
	c.worst = 0
	c.samples = 0
	c.failed = false
}
