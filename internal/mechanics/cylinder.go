package mechanics

// Cylinder is a thick-walled cylinder under internal pressure p (Lamé).
// All stresses are returned normalised by p.
type Cylinder struct {
	Re     float64
	Radial bool
	// Wall ratio δ = (re − ri)/re swept from DeltaStart to DeltaStop.
	DeltaStart float64
	DeltaStop  float64
}

func NewCylinder() *Cylinder {
	return &Cylinder{Re: 0.15, Radial: true, DeltaStart: 1 / 1.01, DeltaStop: 1.0 / 100}
}

// Ri returns the inner radius for wall ratio delta.
func (c *Cylinder) Ri(delta float64) float64 {
	return (1 - delta) * c.Re
}

// Radius maps the normalised radius α ∈ [0, 1] to r.
func (c *Cylinder) Radius(ri, alpha float64) float64 {
	return alpha*(c.Re-ri) + ri
}

func (c *Cylinder) factor(ri float64) float64 {
	return ri * ri / (c.Re*c.Re - ri*ri)
}

// RadialStress is σr/p at radius r.
func (c *Cylinder) RadialStress(ri, r float64) float64 {
	return c.factor(ri) * (1 - c.Re*c.Re/(r*r))
}

// HoopStress is σt/p at radius r.
func (c *Cylinder) HoopStress(ri, r float64) float64 {
	return c.factor(ri) * (1 + c.Re*c.Re/(r*r))
}

// Profile returns the plotted curve over alpha and the thin-wall reference.
// Radial mode plots −σr/p against the line 1 − α; hoop mode plots
// σt/p · (re − ri)/(2 re) against 0.5.
func (c *Cylinder) Profile(delta float64, alpha []float64) (curve, thin []float64) {
	ri := c.Ri(delta)
	curve = make([]float64, len(alpha))
	thin = make([]float64, len(alpha))
	for i, a := range alpha {
		r := c.Radius(ri, a)
		if c.Radial {
			curve[i] = -c.RadialStress(ri, r)
			thin[i] = 1 - a
		} else {
			curve[i] = c.HoopStress(ri, r) * (c.Re - ri) / (2 * c.Re)
			thin[i] = 0.5
		}
	}
	return curve, thin
}

func (c *Cylinder) GetParams() map[string]float64 {
	return map[string]float64{
		"re":          c.Re,
		"radial":      boolParam(c.Radial),
		"delta_start": c.DeltaStart,
		"delta_stop":  c.DeltaStop,
	}
}

func (c *Cylinder) SetParam(name string, value float64) error {
	switch name {
	case "re":
		c.Re = value
	case "radial":
		c.Radial = value != 0
	case "delta_start":
		c.DeltaStart = value
	case "delta_stop":
		c.DeltaStop = value
	default:
		return unknownParam(name)
	}
	return nil
}
