package colormap

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

var ErrUnknown = errors.New("colormap: unknown name")

// Colormap maps t ∈ [0, 1] to a colour by blending evenly spaced stops in
// CIE L*a*b* space.
type Colormap struct {
	Name  string
	stops []colorful.Color
}

var registry = map[string][]string{
	"viridis": {"#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"},
	"magma":   {"#000004", "#180f3d", "#440f76", "#721f81", "#9e2f7f", "#cd4071", "#f1605d", "#fd9668", "#feca8d", "#fcfdbf"},
	"cividis": {"#00224e", "#123570", "#3b496c", "#575d6d", "#707173", "#8a8779", "#a69d75", "#c4b56c", "#e4cf5b", "#fee838"},
	"plasma":  {"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786", "#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921"},
	"gray":    {"#000000", "#ffffff"},
}

// Get returns the named colormap.
func Get(name string) (*Colormap, error) {
	hex, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	return FromHex(name, hex...)
}

// FromHex builds a colormap from hex stops, at least two.
func FromHex(name string, hex ...string) (*Colormap, error) {
	if len(hex) < 2 {
		return nil, fmt.Errorf("colormap %s: need at least two stops", name)
	}
	c := &Colormap{Name: name, stops: make([]colorful.Color, len(hex))}
	for i, h := range hex {
		col, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("colormap %s: stop %d: %w", name, i, err)
		}
		c.stops[i] = col
	}
	return c, nil
}

// Names lists the registered colormaps in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// At returns the colour at t, clamped to [0, 1].
func (c *Colormap) At(t float64) color.NRGBA {
	if math.IsNaN(t) {
		t = 0
	}
	t = math.Max(0, math.Min(1, t))
	seg := t * float64(len(c.stops)-1)
	i := int(math.Floor(seg))
	if i >= len(c.stops)-1 {
		return toNRGBA(c.stops[len(c.stops)-1])
	}
	f := seg - float64(i)
	if f == 0 {
		return toNRGBA(c.stops[i])
	}
	return toNRGBA(c.stops[i].BlendLab(c.stops[i+1], f).Clamped())
}

// Discrete returns one colour per band for n bands, spreading the bands
// over the whole map as a boundary norm does.
func (c *Colormap) Discrete(n int) []color.NRGBA {
	out := make([]color.NRGBA, n)
	for i := range out {
		if n == 1 {
			out[i] = c.At(0.5)
			continue
		}
		out[i] = c.At(float64(i) / float64(n-1))
	}
	return out
}

func toNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
