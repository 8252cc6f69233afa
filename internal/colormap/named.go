package colormap

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

var named = map[string]string{
	"black":          "#000000",
	"white":          "#ffffff",
	"red":            "#ff0000",
	"blue":           "#0000ff",
	"yellow":         "#ffff00",
	"cyan":           "#00ffff",
	"violet":         "#ee82ee",
	"plum":           "#dda0dd",
	"silver":         "#c0c0c0",
	"lightgray":      "#d3d3d3",
	"gray":           "#808080",
	"deepskyblue":    "#00bfff",
	"cornflowerblue": "#6495ed",
	"reference":      "#e41a1c",
	"deformed":       "#377eb8",
}

// Named returns a CSS colour by name, or a #rrggbb hex string.
func Named(name string) (color.NRGBA, error) {
	hex, ok := named[name]
	if !ok {
		hex = name
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: colour %q", ErrUnknown, name)
	}
	return toNRGBA(c), nil
}

// MustNamed is Named for compile-time constant names.
func MustNamed(name string) color.NRGBA {
	c, err := Named(name)
	if err != nil {
		panic(err)
	}
	return c
}

// WithAlpha returns c with its alpha set to a ∈ [0, 1].
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(a*255 + 0.5)
	return c
}
