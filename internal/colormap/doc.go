// Package colormap provides the perceptual colormaps used by contour plots
// (viridis, magma, cividis, plasma and gray) and the named colours used by
// the animations.
package colormap
