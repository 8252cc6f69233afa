package render

import (
	"image"
	"image/color"
	"math"
	"sort"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	circleSegments = 96
	dashOn         = 8.0
	dashOff        = 5.0
)

// Raster draws the scene onto a new w×h image.
func Raster(s *Scene, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	Draw(img, s)
	return img
}

// Draw paints the scene over the whole bounds of img.
func Draw(img *image.RGBA, s *Scene) {
	b := img.Bounds()
	bg := color.RGBAModel.Convert(s.Background).(color.RGBA)
	bg.A = 0xff
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, bg)
		}
	}

	r := &rasterizer{img: img, tr: NewTransform(s.View, b.Dx(), b.Dy())}
	for _, it := range s.Sorted() {
		r.item(it)
	}
}

type rasterizer struct {
	img *image.RGBA
	tr  Transform
}

type pt struct{ x, y float64 }

func (r *rasterizer) px(p Point) pt {
	x, y := r.tr.Apply(p)
	return pt{x, y}
}

func (r *rasterizer) item(it Item) {
	switch v := it.(type) {
	case Line:
		r.stroke([]pt{r.px(v.From), r.px(v.To)}, false, v.Style)
	case Polyline:
		pts := make([]pt, len(v.Points))
		for i, p := range v.Points {
			pts[i] = r.px(p)
		}
		r.stroke(pts, v.Closed, v.Style)
	case Arrow:
		r.arrow(v)
	case Circle:
		pts := r.arc(v.Center, v.R, 0, 360)
		if v.Fill {
			r.fill(pts, v.Color)
		} else {
			r.stroke(pts, true, v.Style)
		}
	case Wedge:
		pts := append([]pt{r.px(v.Center)}, r.arc(v.Center, v.R, v.Theta1, v.Theta2)...)
		r.fill(pts, v.Color)
	case Polygon:
		pts := make([]pt, len(v.Points))
		for i, p := range v.Points {
			pts[i] = r.px(p)
		}
		r.fill(pts, v.Color)
		if v.Width > 0 {
			r.stroke(pts, true, v.Style)
		}
	case Text:
		r.text(v)
	case Marker:
		c := r.px(v.At)
		r.disc(c, math.Max(v.Size/2, 0.5), v.Color)
	}
}

func (r *rasterizer) arc(c Point, rad, t1, t2 float64) []pt {
	n := int(math.Ceil(circleSegments * math.Abs(t2-t1) / 360))
	if n < 2 {
		n = 2
	}
	pts := make([]pt, 0, n+1)
	for i := 0; i <= n; i++ {
		a := (t1 + (t2-t1)*float64(i)/float64(n)) * math.Pi / 180
		pts = append(pts, r.px(Point{c.X + rad*math.Cos(a), c.Y + rad*math.Sin(a)}))
	}
	return pts
}

func (r *rasterizer) arrow(a Arrow) {
	from, to := r.px(a.From), r.px(a.To)
	dx, dy := to.x-from.x, to.y-from.y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	w := math.Max(a.Width, 1)
	head := a.Head
	if head == 0 {
		head = math.Max(8, 4*w)
	}
	head = math.Min(head, l)
	ux, uy := dx/l, dy/l
	base := pt{to.x - ux*head, to.y - uy*head}
	half := head * 0.45
	r.stroke([]pt{from, base}, false, a.Style)
	r.fill([]pt{
		to,
		{base.x - uy*half, base.y + ux*half},
		{base.x + uy*half, base.y - ux*half},
	}, a.Color)
}

// stroke draws a thick polyline as one quad per segment with round joins.
func (r *rasterizer) stroke(pts []pt, closed bool, st Style) {
	if len(pts) < 2 {
		return
	}
	if closed {
		pts = append(pts, pts[0])
	}
	w := math.Max(st.Width, 1)
	segs := [][2]pt{}
	for i := 0; i+1 < len(pts); i++ {
		if st.Dashed {
			segs = append(segs, dashes(pts[i], pts[i+1])...)
		} else {
			segs = append(segs, [2]pt{pts[i], pts[i+1]})
		}
	}
	for _, s := range segs {
		r.segment(s[0], s[1], w, st.Color)
	}
	if w > 2 && !st.Dashed {
		for _, p := range pts {
			r.disc(p, w/2, st.Color)
		}
	}
}

func dashes(a, b pt) [][2]pt {
	l := math.Hypot(b.x-a.x, b.y-a.y)
	if l == 0 {
		return nil
	}
	ux, uy := (b.x-a.x)/l, (b.y-a.y)/l
	var out [][2]pt
	for d := 0.0; d < l; d += dashOn + dashOff {
		e := math.Min(d+dashOn, l)
		out = append(out, [2]pt{{a.x + ux*d, a.y + uy*d}, {a.x + ux*e, a.y + uy*e}})
	}
	return out
}

func (r *rasterizer) segment(a, b pt, w float64, c color.NRGBA) {
	dx, dy := b.x-a.x, b.y-a.y
	l := math.Hypot(dx, dy)
	if l == 0 {
		r.disc(a, w/2, c)
		return
	}
	nx, ny := -dy/l*w/2, dx/l*w/2
	r.fill([]pt{
		{a.x + nx, a.y + ny},
		{b.x + nx, b.y + ny},
		{b.x - nx, b.y - ny},
		{a.x - nx, a.y - ny},
	}, c)
}

func (r *rasterizer) disc(c pt, rad float64, col color.NRGBA) {
	b := r.img.Bounds()
	y0 := int(math.Max(math.Floor(c.y-rad), float64(b.Min.Y)))
	y1 := int(math.Min(math.Ceil(c.y+rad), float64(b.Max.Y-1)))
	x0 := int(math.Max(math.Floor(c.x-rad), float64(b.Min.X)))
	x1 := int(math.Min(math.Ceil(c.x+rad), float64(b.Max.X-1)))
	r2 := rad * rad
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := float64(x)+0.5-c.x, float64(y)+0.5-c.y
			if dx*dx+dy*dy <= r2 {
				r.blend(x, y, col)
			}
		}
	}
	if rad < 1 {
		r.blend(int(c.x), int(c.y), col)
	}
}

// fill scan-converts a polygon with the non-zero winding rule, sampling
// pixel centres.
func (r *rasterizer) fill(pts []pt, c color.NRGBA) {
	if len(pts) < 3 || c.A == 0 {
		return
	}
	b := r.img.Bounds()
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		ymin, ymax = math.Min(ymin, p.y), math.Max(ymax, p.y)
	}
	y0 := int(math.Max(math.Floor(ymin), float64(b.Min.Y)))
	y1 := int(math.Min(math.Ceil(ymax), float64(b.Max.Y-1)))

	type crossing struct {
		x   float64
		dir int
	}
	var xs []crossing
	for y := y0; y <= y1; y++ {
		sy := float64(y) + 0.5
		xs = xs[:0]
		for i := range pts {
			p, q := pts[i], pts[(i+1)%len(pts)]
			if p.y == q.y {
				continue
			}
			dir := 1
			if p.y > q.y {
				p, q = q, p
				dir = -1
			}
			if sy < p.y || sy >= q.y {
				continue
			}
			xs = append(xs, crossing{p.x + (sy-p.y)*(q.x-p.x)/(q.y-p.y), dir})
		}
		sort.Slice(xs, func(i, j int) bool { return xs[i].x < xs[j].x })
		wind := 0
		for i := 0; i+1 < len(xs); i++ {
			wind += xs[i].dir
			if wind == 0 {
				continue
			}
			xa := int(math.Max(math.Ceil(xs[i].x-0.5), float64(b.Min.X)))
			xb := int(math.Min(math.Ceil(xs[i+1].x-0.5)-1, float64(b.Max.X-1)))
			for x := xa; x <= xb; x++ {
				r.blend(x, y, c)
			}
		}
	}
}

func (r *rasterizer) blend(x, y int, c color.NRGBA) {
	if !image.Pt(x, y).In(r.img.Bounds()) {
		return
	}
	if c.A == 0xff {
		r.img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		return
	}
	d := r.img.RGBAAt(x, y)
	a := uint32(c.A)
	mix := func(s, t uint8) uint8 {
		return uint8((uint32(s)*a + uint32(t)*(255-a) + 127) / 255)
	}
	r.img.SetRGBA(x, y, color.RGBA{R: mix(c.R, d.R), G: mix(c.G, d.G), B: mix(c.B, d.B), A: 0xff})
}

func (r *rasterizer) text(t Text) {
	p := r.px(t.At)
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(t.Color),
		Face: face,
	}
	text := ascii.Replace(t.S)
	w := d.MeasureString(text).Round()
	x := p.x
	switch t.Anchor {
	case AnchorMiddle:
		x -= float64(w) / 2
	case AnchorEnd:
		x -= float64(w)
	}
	d.Dot = fixed.Point26_6{X: fixed.I(int(x)), Y: fixed.I(int(p.y) + face.Ascent/2)}
	d.DrawString(text)
}

// basicfont only covers ASCII, so symbols are spelled out.
var ascii = strings.NewReplacer(
	"σ", "s", "τ", "t", "ε", "e", "γ", "g", "θ", "th", "Φ", "Phi",
	"α", "a", "δ", "d", "ν", "nu", "λ", "l", "·", "*", "≈", "~",
	"°", "deg", "√", "sqrt", "²", "^2", "³", "^3", "′", "'", "−", "-",
)
