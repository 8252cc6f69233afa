// Package contour turns scalar fields sampled on a triangulation into
// iso-lines and filled bands.
//
// Levels are chosen with [NiceLevels], which picks round values the way a
// plot axis would. [IsoLines] marches over triangles; [Bands] clips each
// triangle against consecutive levels so that every band is a set of convex
// polygons ready to be filled with a discrete colormap.
package contour
