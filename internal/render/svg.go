package render

import (
	"fmt"
	"html"
	"image/color"
	"math"
	"strings"
)

// SVG converts a scene to a standalone SVG document of the given size.
func SVG(s *Scene, width, height int) string {
	tr := NewTransform(s.View, width, height)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, hex(s.Background)))
	if s.Title != "" {
		sb.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(s.Title)))
	}

	for _, it := range s.Sorted() {
		writeItem(&sb, tr, it)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func writeItem(sb *strings.Builder, tr Transform, it Item) {
	switch v := it.(type) {
	case Line:
		x1, y1 := tr.Apply(v.From)
		x2, y2 := tr.Apply(v.To)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"%s/>
`, x1, y1, x2, y2, stroke(v.Style)))
	case Polyline:
		tag := "polyline"
		if v.Closed {
			tag = "polygon"
		}
		sb.WriteString(fmt.Sprintf(`<%s points="%s" fill="none"%s/>
`, tag, points(tr, v.Points), stroke(v.Style)))
	case Arrow:
		writeArrow(sb, tr, v)
	case Circle:
		cx, cy := tr.Apply(v.Center)
		r := v.R * tr.Scale()
		if v.Fill {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"%s/>
`, cx, cy, r, fill(v.Color)))
		} else {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none"%s/>
`, cx, cy, r, stroke(v.Style)))
		}
	case Wedge:
		writeWedge(sb, tr, v)
	case Polygon:
		extra := ""
		if v.Width > 0 {
			extra = stroke(v.Style)
		}
		sb.WriteString(fmt.Sprintf(`<polygon points="%s"%s%s/>
`, points(tr, v.Points), fill(v.Color), extra))
	case Text:
		x, y := tr.Apply(v.At)
		anchor := [...]string{"start", "middle", "end"}[v.Anchor]
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="%s" dominant-baseline="middle" font-family="serif" font-size="14"%s>%s</text>
`, x, y, anchor, fill(v.Color), html.EscapeString(v.S)))
	case Marker:
		x, y := tr.Apply(v.At)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"%s/>
`, x, y, math.Max(v.Size/2, 0.5), fill(v.Color)))
	}
}

func writeArrow(sb *strings.Builder, tr Transform, a Arrow) {
	x1, y1 := tr.Apply(a.From)
	x2, y2 := tr.Apply(a.To)
	dx, dy := x2-x1, y2-y1
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	head := a.Head
	if head == 0 {
		head = math.Max(8, 4*math.Max(a.Width, 1))
	}
	head = math.Min(head, l)
	ux, uy := dx/l, dy/l
	bx, by := x2-ux*head, y2-uy*head
	half := head * 0.45
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"%s/>
<polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f"%s/>
`, x1, y1, bx, by, stroke(a.Style),
		x2, y2, bx-uy*half, by+ux*half, bx+uy*half, by-ux*half, fill(a.Color)))
}

func writeWedge(sb *strings.Builder, tr Transform, w Wedge) {
	cx, cy := tr.Apply(w.Center)
	r := w.R * tr.Scale()
	t1, t2 := w.Theta1*math.Pi/180, w.Theta2*math.Pi/180
	// y is flipped on screen, so counter-clockwise angles go up
	sx, sy := cx+r*math.Cos(t1), cy-r*math.Sin(t1)
	ex, ey := cx+r*math.Cos(t2), cy-r*math.Sin(t2)
	large := 0
	if math.Abs(w.Theta2-w.Theta1) > 180 {
		large = 1
	}
	sweep := 0
	if w.Theta2 < w.Theta1 {
		sweep = 1
	}
	sb.WriteString(fmt.Sprintf(`<path d="M%.1f,%.1f L%.1f,%.1f A%.1f,%.1f 0 %d %d %.1f,%.1f Z"%s/>
`, cx, cy, sx, sy, r, r, large, sweep, ex, ey, fill(w.Color)))
}

func points(tr Transform, pts []Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		x, y := tr.Apply(p)
		parts[i] = fmt.Sprintf("%.1f,%.1f", x, y)
	}
	return strings.Join(parts, " ")
}

func stroke(st Style) string {
	s := fmt.Sprintf(` stroke="%s" stroke-width="%.1f"`, hex(st.Color), math.Max(st.Width, 1))
	if st.Color.A != 0xff {
		s += fmt.Sprintf(` stroke-opacity="%.2f"`, float64(st.Color.A)/255)
	}
	if st.Dashed {
		s += ` stroke-dasharray="8,5"`
	}
	return s
}

func fill(c color.NRGBA) string {
	s := fmt.Sprintf(` fill="%s"`, hex(c))
	if c.A != 0xff {
		s += fmt.Sprintf(` fill-opacity="%.2f"`, float64(c.A)/255)
	}
	return s
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
