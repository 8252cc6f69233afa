// Package render holds the backend-neutral frame model and its two
// software backends.
//
// A [Scene] is a viewport in data coordinates plus a list of primitives
// ([Line], [Polyline], [Arrow], [Circle], [Wedge], [Polygon], [Text],
// [Marker]). Each primitive carries a [Style] whose Z value orders drawing.
//
//	s := render.NewScene("Mohr's circle", render.Viewport{XMin: 0, XMax: 150, YMin: -75, YMax: 75, Equal: true}, bg)
//	s.Circle(render.Point{X: 75}, 55.9, false, render.Style{Color: fg, Width: 2})
//	img := render.Raster(s, 800, 600)
//	doc := render.SVG(s, 800, 600)
//
// [Camera] projects 3D geometry onto the scene plane for the deformation
// script.
package render
