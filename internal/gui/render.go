package gui

import (
	"image"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/mechlab/internal/anim"
	"github.com/san-kum/mechlab/internal/render"
)

// frameCache rasterises frames on first use.
type frameCache struct {
	anim   anim.Animation
	w, h   int
	images map[int]*image.RGBA
}

func newFrameCache(a anim.Animation, w, h int) *frameCache {
	return &frameCache{anim: a, w: w, h: h, images: make(map[int]*image.RGBA)}
}

func (c *frameCache) get(i int) *image.RGBA {
	if img, ok := c.images[i]; ok {
		return img
	}
	img := render.Raster(c.anim.Frame(i), c.w, c.h)
	c.images[i] = img
	return img
}

// pixels reinterprets an RGBA image as the colour slice raylib uploads.
func pixels(img *image.RGBA) []color.RGBA {
	b := img.Bounds()
	out := make([]color.RGBA, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = append(out, img.RGBAAt(x, y))
		}
	}
	return out
}

// drawFrame uploads the current frame when it changed and blits it.
func (a *App) drawFrame() {
	if a.shown != a.Head.Frame {
		rl.UpdateTexture(a.tex, pixels(a.frames.get(a.Head.Frame)))
		a.shown = a.Head.Frame
	}
	rl.DrawTexture(a.tex, int32(a.layout.Plot.X), int32(a.layout.Plot.Y), rl.White)
}
