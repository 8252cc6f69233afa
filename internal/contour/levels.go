package contour

import "math"

var niceSteps = []float64{1, 2, 2.5, 5, 10}

// NiceLevels returns at most nbins+1 evenly spaced round values covering
// [vmin, vmax]. The step is the largest of 1, 2, 2.5, 5 and 10 times a
// power of ten that is not larger than needed while still placing at least
// two levels inside the range. A range far from zero relative to its width
// is shifted by a power of ten before stepping so that the levels stay
// round, e.g. 1e6 + 0.2k.
func NiceLevels(vmin, vmax float64, nbins int) []float64 {
	if nbins < 1 {
		nbins = 1
	}
	if vmax < vmin {
		vmin, vmax = vmax, vmin
	}
	if vmax-vmin < 1e-12*math.Max(math.Abs(vmin), math.Abs(vmax)) || vmax == vmin {
		d := 0.001 * math.Abs(vmin)
		if d == 0 {
			d = 0.001
		}
		vmin, vmax = vmin-d, vmax+d
	}

	offset := rangeOffset(vmin, vmax)
	vmin, vmax = vmin-offset, vmax-offset

	raw := (vmax - vmin) / float64(nbins)
	scale := math.Pow(10, math.Floor(math.Log10(raw)))

	steps := make([]float64, 0, len(niceSteps)+2)
	steps = append(steps, 0.5*scale)
	for _, s := range niceSteps {
		steps = append(steps, s*scale)
	}
	steps = append(steps, 20*scale)

	istep := len(steps) - 1
	for i, s := range steps {
		if s >= raw*(1-1e-10) {
			istep = i
			break
		}
	}

	var ticks []float64
	for i := istep; i >= 0; i-- {
		step := steps[i]
		best := math.Floor(vmin/step) * step
		tol := edgeTol(step, offset)
		low := edgeFloor((vmin-best)/step, tol)
		high := edgeCeil((vmax-best)/step, tol)
		ticks = ticks[:0]
		for k := low; k <= high; k++ {
			ticks = append(ticks, clean(float64(k)*step+best, step))
		}
		inside := 0
		for _, t := range ticks {
			if t >= vmin-1e-12*step && t <= vmax+1e-12*step {
				inside++
			}
		}
		if inside >= 2 {
			break
		}
	}
	out := make([]float64, len(ticks))
	for i, t := range ticks {
		out[i] = t + offset
	}
	return out
}

// rangeOffset is the power of ten, signed like the midpoint, that levels
// are measured from when the midpoint is at least 100 range widths away
// from zero. It is 0 otherwise.
func rangeOffset(vmin, vmax float64) float64 {
	dv := math.Abs(vmax - vmin)
	mean := (vmax + vmin) / 2
	if dv == 0 || math.Abs(mean)/dv < 100 {
		return 0
	}
	return math.Copysign(math.Pow(10, math.Floor(math.Log10(math.Abs(mean)))), mean)
}

// edgeTol widens the snapping tolerance with the digits lost to offset.
func edgeTol(step, offset float64) float64 {
	offset = math.Abs(offset)
	if offset == 0 {
		return 1e-10
	}
	tol := math.Pow(10, math.Log10(offset/step)-12)
	return min(0.4999, max(1e-10, tol))
}

func edgeFloor(x, tol float64) int {
	if r := math.Round(x); math.Abs(x-r) < tol {
		return int(r)
	}
	return int(math.Floor(x))
}

func edgeCeil(x, tol float64) int {
	if r := math.Round(x); math.Abs(x-r) < tol {
		return int(r)
	}
	return int(math.Ceil(x))
}

// clean rounds v to the precision implied by step so that levels print as
// 0.3 instead of 0.30000000000000004.
func clean(v, step float64) float64 {
	p := math.Pow(10, math.Max(0, -math.Floor(math.Log10(step))+3))
	return math.Round(v*p) / p
}

// Band returns the index of the band [levels[i], levels[i+1]) holding v, or
// -1 when v is outside the levels. The top level closes the last band.
func Band(levels []float64, v float64) int {
	n := len(levels)
	if n < 2 || v < levels[0] || v > levels[n-1] || math.IsNaN(v) {
		return -1
	}
	for i := 0; i < n-1; i++ {
		if v < levels[i+1] {
			return i
		}
	}
	return n - 2
}
