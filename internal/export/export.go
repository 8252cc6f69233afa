package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/icza/mjpeg"

	"github.com/san-kum/mechlab/internal/render"
)

var (
	ErrNoFrames      = errors.New("export: no frames")
	ErrUnknownFormat = errors.New("export: unknown format")
)

// GIF writes an animated GIF. Delay is in hundredths of a second per frame.
func GIF(path string, frames []*image.RGBA, delay int) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}

	out := &gif.GIF{LoopCount: 0}
	for _, f := range frames {
		p := image.NewPaletted(f.Bounds(), palette.WebSafe)
		draw.Draw(p, p.Rect, f, f.Bounds().Min, draw.Src)
		out.Image = append(out.Image, p)
		out.Delay = append(out.Delay, delay)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := gif.EncodeAll(file, out); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return file.Close()
}

// AVI writes a Motion-JPEG AVI at the given frame rate.
func AVI(path string, frames []*image.RGBA, fps int) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	b := frames[0].Bounds()

	w, err := mjpeg.New(path, int32(b.Dx()), int32(b.Dy()), int32(fps))
	if err != nil {
		return fmt.Errorf("create avi: %w", err)
	}

	var buf bytes.Buffer
	opts := &jpeg.Options{Quality: 90}
	for i, f := range frames {
		buf.Reset()
		if err := jpeg.Encode(&buf, f, opts); err != nil {
			w.Close()
			return fmt.Errorf("encode frame %d: %w", i, err)
		}
		if err := w.AddFrame(buf.Bytes()); err != nil {
			w.Close()
			return fmt.Errorf("add frame %d: %w", i, err)
		}
	}
	return w.Close()
}

// PNG writes a single image.
func PNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return file.Close()
}

// PNGSequence writes prefix_0000.png, prefix_0001.png, ... into dir and
// returns the file names.
func PNGSequence(dir, prefix string, frames []*image.RGBA) ([]string, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(frames))
	for i, f := range frames {
		p := filepath.Join(dir, fmt.Sprintf("%s_%04d.png", prefix, i))
		if err := PNG(p, f); err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// SVG writes one scene as an SVG document.
func SVG(path string, scene *render.Scene, width, height int) error {
	if scene == nil {
		return ErrNoFrames
	}
	return os.WriteFile(path, []byte(render.SVG(scene, width, height)), 0644)
}

// SVGSequence writes every scene to dir, mirroring PNGSequence.
func SVGSequence(dir, prefix string, scenes []*render.Scene, width, height int) ([]string, error) {
	if len(scenes) == 0 {
		return nil, ErrNoFrames
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(scenes))
	for i, s := range scenes {
		p := filepath.Join(dir, fmt.Sprintf("%s_%04d.svg", prefix, i))
		if err := SVG(p, s, width, height); err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
