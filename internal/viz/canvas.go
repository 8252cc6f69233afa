package viz

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a grid of braille cells, each carrying the mean colour of the
// dots set in it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]color.NRGBA

	sums [][][4]uint32
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]color.NRGBA, h),
		sums:   make([][][4]uint32, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]color.NRGBA, w)
		c.sums[i] = make([][4]uint32, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at (x, y) in sub-pixel coordinates. The canvas size in
// sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int, col color.NRGBA) {
	if x < 0 || y < 0 {
		return
	}

	cx := x / 2
	row := y / 4
	if cx >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][cx] |= rune(pixelMap[y%4][x%2])
	s := &c.sums[row][cx]
	s[0] += uint32(col.R)
	s[1] += uint32(col.G)
	s[2] += uint32(col.B)
	s[3]++
	c.Colors[row][cx] = color.NRGBA{
		R: uint8(s[0] / s[3]), G: uint8(s[1] / s[3]), B: uint8(s[2] / s[3]), A: 0xff,
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.Colors[i][j] = color.NRGBA{}
			c.sums[i][j] = [4]uint32{}
		}
	}
}

// Plot lights every pixel of img that stands out from bg. img is read at
// one pixel per dot.
func (c *Canvas) Plot(img *image.RGBA, bg color.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p := img.RGBAAt(x, y)
			if distance(p, bg) < contrastThreshold {
				continue
			}
			c.Set(x-b.Min.X, y-b.Min.Y, color.NRGBA{R: p.R, G: p.G, B: p.B, A: 0xff})
		}
	}
}

const contrastThreshold = 48

func distance(p color.RGBA, q color.NRGBA) int {
	d := absInt(int(p.R)-int(q.R)) + absInt(int(p.G)-int(q.G)) + absInt(int(p.B)-int(q.B))
	return d
}

// String returns the canvas without colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Colored renders the canvas through lipgloss, one style per run of equal
// colour. A non-nil tint replaces every cell colour.
func (c *Canvas) Colored(tint *color.NRGBA) string {
	var b strings.Builder
	for i, row := range c.Grid {
		var run []rune
		var runColor color.NRGBA
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runColor.A == 0 {
				b.WriteString(string(run))
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(runColor))).Render(string(run)))
			}
			run = run[:0]
		}
		for j, r := range row {
			col := c.Colors[i][j]
			if r != brailleBlank && tint != nil {
				col = *tint
			}
			if col != runColor {
				flush()
				runColor = col
			}
			run = append(run, r)
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
