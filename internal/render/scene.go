package render

import (
	"image/color"
	"sort"
)

// Point is a position in data coordinates.
type Point struct {
	X, Y float64
}

// Style is shared by every primitive. Width is in pixels; Z orders drawing,
// lower first, with insertion order breaking ties.
type Style struct {
	Color  color.NRGBA
	Width  float64
	Z      int
	Dashed bool
}

// Item is a drawable primitive.
type Item interface {
	style() Style
}

type Line struct {
	From, To Point
	Style
}

type Polyline struct {
	Points []Point
	Closed bool
	Style
}

// Arrow is a line with a filled head at To. Head is the head length in
// pixels; zero picks a size from the line width.
type Arrow struct {
	From, To Point
	Head     float64
	Style
}

// Circle has its radius in data units.
type Circle struct {
	Center Point
	R      float64
	Fill   bool
	Style
}

// Wedge is a filled circular sector; angles are in degrees counter-clockwise
// from the x axis.
type Wedge struct {
	Center         Point
	R              float64
	Theta1, Theta2 float64
	Style
}

// Polygon is filled.
type Polygon struct {
	Points []Point
	Style
}

// Anchor positions text relative to its point.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

type Text struct {
	At     Point
	S      string
	Anchor Anchor
	Style
}

// Marker is a filled dot whose Size is a diameter in pixels.
type Marker struct {
	At   Point
	Size float64
	Style
}

func (s Style) style() Style { return s }

// Viewport is the data-space window shown by a scene.
type Viewport struct {
	XMin, XMax float64
	YMin, YMax float64
	Equal      bool
}

// Scene is a single frame: a viewport and an ordered list of primitives.
type Scene struct {
	Title      string
	View       Viewport
	Background color.NRGBA
	Items      []Item
}

func NewScene(title string, view Viewport, bg color.NRGBA) *Scene {
	return &Scene{Title: title, View: view, Background: bg}
}

func (s *Scene) Add(items ...Item) *Scene {
	s.Items = append(s.Items, items...)
	return s
}

func (s *Scene) Line(a, b Point, st Style) *Scene {
	return s.Add(Line{From: a, To: b, Style: st})
}

func (s *Scene) Polyline(pts []Point, closed bool, st Style) *Scene {
	return s.Add(Polyline{Points: pts, Closed: closed, Style: st})
}

func (s *Scene) Arrow(a, b Point, st Style) *Scene {
	return s.Add(Arrow{From: a, To: b, Style: st})
}

func (s *Scene) Circle(c Point, r float64, fill bool, st Style) *Scene {
	return s.Add(Circle{Center: c, R: r, Fill: fill, Style: st})
}

func (s *Scene) Wedge(c Point, r, theta1, theta2 float64, st Style) *Scene {
	return s.Add(Wedge{Center: c, R: r, Theta1: theta1, Theta2: theta2, Style: st})
}

func (s *Scene) Polygon(pts []Point, st Style) *Scene {
	return s.Add(Polygon{Points: pts, Style: st})
}

func (s *Scene) Text(at Point, text string, anchor Anchor, st Style) *Scene {
	return s.Add(Text{At: at, S: text, Anchor: anchor, Style: st})
}

func (s *Scene) Marker(at Point, size float64, st Style) *Scene {
	return s.Add(Marker{At: at, Size: size, Style: st})
}

// Sorted returns the items in drawing order.
func (s *Scene) Sorted() []Item {
	out := append([]Item(nil), s.Items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].style().Z < out[j].style().Z })
	return out
}

// StyleOf returns the style of any item.
func StyleOf(it Item) Style {
	return it.style()
}
