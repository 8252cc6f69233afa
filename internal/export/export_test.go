package export_test

import (
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mechlab/internal/anim"
	"github.com/san-kum/mechlab/internal/export"
	"github.com/san-kum/mechlab/internal/render"
)

// dot moves a marker across the scene, one step per frame.
type dot struct{ n int }

func (d dot) Name() string  { return "dot" }
func (d dot) Title() string { return "dot" }
func (d dot) Frames() int   { return d.n }

func (d dot) Frame(i int) *render.Scene {
	s := render.NewScene("dot", render.Viewport{XMax: float64(d.n), YMax: 1}, color.NRGBA{A: 255})
	red := color.NRGBA{R: 255, A: 255}
	return s.Marker(render.Point{X: float64(i) + 0.5, Y: 0.5}, 4, render.Style{Color: red})
}

func (d dot) Samples() anim.Table {
	t := anim.Table{Columns: []string{"i", "x"}}
	for i := 0; i < d.n; i++ {
		t.Rows = append(t.Rows, []float64{float64(i), float64(i) + 0.5})
	}
	return t
}

func frames(n, w, h int) []*image.RGBA {
	out := make([]*image.RGBA, n)
	for i := range out {
		out[i] = render.Raster(dot{n}.Frame(i), w, h)
	}
	return out
}

var _ = Describe("Export", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	Describe("GIF", func() {
		It("writes every frame with the requested delay", func() {
			path := filepath.Join(dir, "dot.gif")
			Expect(export.GIF(path, frames(4, 32, 16), 7)).To(Succeed())

			f, err := os.Open(path)
			Expect(err).NotTo(HaveOccurred())
			defer f.Close()

			g, err := gif.DecodeAll(f)
			Expect(err).NotTo(HaveOccurred())
			Expect(g.Image).To(HaveLen(4))
			Expect(g.Delay).To(HaveEach(7))
			Expect(g.Image[0].Bounds().Dx()).To(Equal(32))
			Expect(g.Image[0].Bounds().Dy()).To(Equal(16))
		})

		It("rejects an empty frame list", func() {
			err := export.GIF(filepath.Join(dir, "x.gif"), nil, 5)
			Expect(err).To(MatchError(export.ErrNoFrames))
		})
	})

	Describe("AVI", func() {
		It("writes a RIFF container", func() {
			path := filepath.Join(dir, "dot.avi")
			Expect(export.AVI(path, frames(3, 32, 16), 10)).To(Succeed())

			data, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data[:4])).To(Equal("RIFF"))
			Expect(string(data[8:12])).To(Equal("AVI "))
		})

		It("rejects an empty frame list", func() {
			Expect(export.AVI(filepath.Join(dir, "x.avi"), nil, 10)).To(MatchError(export.ErrNoFrames))
		})
	})

	Describe("PNGSequence", func() {
		It("numbers the files in frame order", func() {
			paths, err := export.PNGSequence(filepath.Join(dir, "seq"), "dot", frames(3, 20, 10))
			Expect(err).NotTo(HaveOccurred())
			Expect(paths).To(HaveLen(3))
			Expect(filepath.Base(paths[2])).To(Equal("dot_0002.png"))

			f, err := os.Open(paths[0])
			Expect(err).NotTo(HaveOccurred())
			defer f.Close()
			img, err := png.Decode(f)
			Expect(err).NotTo(HaveOccurred())
			Expect(img.Bounds().Dx()).To(Equal(20))
		})
	})

	Describe("SVG", func() {
		It("writes a standalone document", func() {
			path := filepath.Join(dir, "dot.svg")
			Expect(export.SVG(path, dot{2}.Frame(0), 100, 50)).To(Succeed())

			data, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(HavePrefix("<?xml"))
			Expect(string(data)).To(ContainSubstring(`<circle`))
			Expect(strings.TrimSpace(string(data))).To(HaveSuffix("</svg>"))
		})

		It("rejects a nil scene", func() {
			Expect(export.SVG(filepath.Join(dir, "x.svg"), nil, 10, 10)).To(MatchError(export.ErrNoFrames))
		})
	})

	Describe("Animation", func() {
		ctx := context.Background()

		It("renders a gif to the given path", func() {
			path := filepath.Join(dir, "a.gif")
			files, err := export.Animation(ctx, dot{5}, export.Job{Format: "gif", Path: path, Width: 40, Height: 20, FPS: 20, Workers: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(files).To(Equal([]string{path}))
			Expect(path).To(BeAnExistingFile())
		})

		It("writes sequences into a directory", func() {
			out := filepath.Join(dir, "svgs")
			files, err := export.Animation(ctx, dot{3}, export.Job{Format: "svg", Path: out, Width: 40, Height: 20})
			Expect(err).NotTo(HaveOccurred())
			Expect(files).To(HaveLen(3))
			for _, f := range files {
				Expect(f).To(BeAnExistingFile())
			}
		})

		It("writes a still png to a single file", func() {
			path := filepath.Join(dir, "still.png")
			files, err := export.Animation(ctx, dot{1}, export.Job{Format: "png", Path: path, Width: 40, Height: 20})
			Expect(err).NotTo(HaveOccurred())
			Expect(files).To(Equal([]string{path}))
		})

		It("rejects unknown formats", func() {
			_, err := export.Animation(ctx, dot{1}, export.Job{Format: "mp4", Width: 10, Height: 10})
			Expect(err).To(MatchError(export.ErrUnknownFormat))
		})

		It("names default outputs by format", func() {
			Expect(export.DefaultPath("mohr-stress", "gif")).To(Equal("mohr-stress.gif"))
			Expect(export.DefaultPath("torsion", "png")).To(Equal("torsion_frames"))
		})
	})

	Describe("Chart", func() {
		It("plots every sample column", func() {
			x, series := export.TableSeries(dot{4}.Samples())
			Expect(x).To(Equal("i"))
			Expect(series).To(HaveLen(1))
			Expect(series[0].Name).To(Equal("x"))

			for _, name := range []string{"c.png", "c.svg"} {
				path := filepath.Join(dir, name)
				Expect(export.Chart(path, "dot", x, series...)).To(Succeed())
				Expect(path).To(BeAnExistingFile())
			}
			data, err := os.ReadFile(filepath.Join(dir, "c.svg"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(ContainSubstring("<svg"))
		})

		It("rejects single-point series", func() {
			err := export.Chart(filepath.Join(dir, "bad.png"), "bad", "x", export.Series{Name: "y", X: []float64{1}, Y: []float64{2}})
			Expect(err).To(HaveOccurred())
		})
	})
})
