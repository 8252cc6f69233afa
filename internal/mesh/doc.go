// Package mesh builds the planar triangulations used for contour plots.
//
// [Triangulate] computes a Delaunay triangulation of scattered points,
// [Mesh.FlatMask] peels slivers off the boundary by their inscribed to
// circumscribed radius ratio and [Mesh.Refine] splits triangles uniformly
// so that closed-form fields can be sampled on a finer grid.
package mesh
