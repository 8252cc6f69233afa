// Package layout places the plot, sidebar and status line of the window
// player. It has no raylib dependency so it can be tested headless.
package layout

const (
	MinPlotW = 320
	MinPlotH = 240

	margin   = 20
	header   = 60
	footer   = 20
	sidebarW = 300
	graphH   = 100
)

type Rect struct {
	X, Y, W, H int
}

// Layout holds pixel positions for one window size.
type Layout struct {
	WindowW, WindowH int
	Plot             Rect
	Sidebar          Rect
	Graph            Rect
	StatusY          int
}

// New lays out a window around a plot of w by h pixels. Sizes below
// MinPlotW by MinPlotH are raised to the minimum.
func New(w, h int) Layout {
	w, h = max(w, MinPlotW), max(h, MinPlotH)
	l := Layout{
		WindowW: margin + w + margin + sidebarW,
		WindowH: header + h + footer,
		Plot:    Rect{X: margin, Y: header, W: w, H: h},
	}
	l.Sidebar = Rect{X: l.Plot.X + w + margin, Y: header, W: sidebarW - margin, H: h}
	l.Graph = Rect{X: l.Sidebar.X, Y: header + h - graphH - margin, W: l.Sidebar.W, H: graphH}
	l.StatusY = l.WindowH - footer + 4
	return l
}

// Center returns the top-left corner of a w by h box centred on the plot.
func (l Layout) Center(w, h int) (int, int) {
	return l.Plot.X + (l.Plot.W-w)/2, l.Plot.Y + (l.Plot.H-h)/2
}
