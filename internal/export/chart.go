package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/san-kum/mechlab/internal/anim"
)

// Series is one named curve.
type Series struct {
	Name string
	X, Y []float64
}

var seriesColors = []drawing.Color{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 255},
	{R: 0xd6, G: 0x27, B: 0x28, A: 255},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 255},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 255},
	{R: 0x94, G: 0x67, B: 0xbd, A: 255},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 255},
	{R: 0xe3, G: 0x77, B: 0xc2, A: 255},
	{R: 0x17, G: 0xbe, B: 0xcf, A: 255},
}

// TableSeries plots every column of t against the first one.
func TableSeries(t anim.Table) (string, []Series) {
	if len(t.Columns) < 2 {
		return "", nil
	}
	x := t.Column(t.Columns[0])
	out := make([]Series, 0, len(t.Columns)-1)
	for _, name := range t.Columns[1:] {
		out = append(out, Series{Name: name, X: x, Y: t.Column(name)})
	}
	return t.Columns[0], out
}

// Chart draws the series as line plots. The file extension picks PNG or SVG.
func Chart(path, title, xLabel string, series ...Series) error {
	if len(series) == 0 {
		return ErrNoFrames
	}

	var cs []chart.Series
	for i, s := range series {
		if len(s.X) < 2 || len(s.X) != len(s.Y) {
			return fmt.Errorf("series %q: need two or more matching points", s.Name)
		}
		cs = append(cs, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: s.X,
			YValues: s.Y,
			Style: chart.Style{
				StrokeColor: seriesColors[i%len(seriesColors)],
				StrokeWidth: 2.0,
			},
		})
	}

	graph := chart.Chart{
		Title:  title,
		Width:  960,
		Height: 540,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  xLabel,
			Style: chart.Style{FontSize: 10.0},
		},
		YAxis: chart.YAxis{
			Style: chart.Style{FontSize: 10.0},
		},
		Series: cs,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	provider := chart.PNG
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		provider = chart.SVG
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := graph.Render(provider, file); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return file.Close()
}
