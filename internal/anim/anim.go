package anim

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/san-kum/mechlab/internal/colormap"
	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/mechanics"
	"github.com/san-kum/mechlab/internal/render"
)

// ErrUnknownScript is returned by the registry for names it does not hold.
var ErrUnknownScript = errors.New("anim: unknown script")

// Animation is one teaching script: a fixed number of frames, each a
// self-contained scene, plus the numeric quantities behind them.
// Frame must be safe for concurrent use.
type Animation interface {
	Name() string
	Title() string
	Frames() int
	Frame(i int) *render.Scene
	Samples() Table
}

// Table holds one row of quantities per frame.
type Table struct {
	Columns []string
	Rows    [][]float64
}

// Column returns the named series, or nil.
func (t Table) Column(name string) []float64 {
	for j, c := range t.Columns {
		if c != name {
			continue
		}
		out := make([]float64, len(t.Rows))
		for i, r := range t.Rows {
			out[i] = r[j]
		}
		return out
	}
	return nil
}

// Row returns the quantities of frame i by column name.
func (t Table) Row(i int) map[string]float64 {
	if i < 0 || i >= len(t.Rows) {
		return nil
	}
	out := make(map[string]float64, len(t.Columns))
	for j, c := range t.Columns {
		out[c] = t.Rows[i][j]
	}
	return out
}

// Primary is the series players plot by default: the second column, the
// first being the swept parameter.
func (t Table) Primary() (string, []float64) {
	if len(t.Columns) < 2 {
		return "", nil
	}
	return t.Columns[1], t.Column(t.Columns[1])
}

// applyParams pushes config overrides into a model in a stable order.
func applyParams(m mechanics.Configurable, cfg *config.Config) error {
	for _, name := range cfg.ParamNames() {
		if err := m.SetParam(name, cfg.Params[name]); err != nil {
			return fmt.Errorf("%w: %v", config.ErrInvalid, err)
		}
	}
	return nil
}

func clampFrame(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

var (
	black = color.NRGBA{A: 0xff}
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func named(name string) color.NRGBA {
	return colormap.MustNamed(name)
}

func st(c color.NRGBA, width float64, z int) render.Style {
	return render.Style{Color: c, Width: width, Z: z}
}

func dashed(c color.NRGBA, width float64, z int) render.Style {
	return render.Style{Color: c, Width: width, Z: z, Dashed: true}
}

func pt(x, y float64) render.Point {
	return render.Point{X: x, Y: y}
}
