package contour

import (
	"errors"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/san-kum/mechlab/internal/mesh"
)

func TestNiceLevels(t *testing.T) {
	tests := []struct {
		name       string
		vmin, vmax float64
		nbins      int
		want       []float64
	}{
		{"symmetric", -0.5, 0.5, 15, []float64{-0.5, -0.4, -0.3, -0.2, -0.1, 0, 0.1, 0.2, 0.3, 0.4, 0.5}},
		{"skewed", -0.32, 0.5, 15, []float64{-0.4, -0.3, -0.2, -0.1, 0, 0.1, 0.2, 0.3, 0.4, 0.5}},
		{"half step", 0, 0.5, 10, []float64{0, 0.05, 0.1, 0.15, 0.2, 0.25, 0.3, 0.35, 0.4, 0.45, 0.5}},
		{"stress function", 0, 2.0 / 27, 10, []float64{0, 0.01, 0.02, 0.03, 0.04, 0.05, 0.06, 0.07, 0.08}},
		{"large", 0, 130, 5, []float64{0, 50, 100, 150}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NiceLevels(tt.vmin, tt.vmax, tt.nbins)
			chk.Array(t, "levels", 1e-12, got, tt.want)
		})
	}
}

func TestNiceLevelsOffset(t *testing.T) {
	got := NiceLevels(1e6+0.1, 1e6+0.9, 4)
	chk.Array(t, "positive", 1e-9, got, []float64{1e6, 1e6 + 0.2, 1e6 + 0.4, 1e6 + 0.6, 1e6 + 0.8, 1e6 + 1})

	got = NiceLevels(-1e6-0.9, -1e6-0.1, 4)
	chk.Array(t, "negative", 1e-9, got, []float64{-1e6 - 1, -1e6 - 0.8, -1e6 - 0.6, -1e6 - 0.4, -1e6 - 0.2, -1e6})

	chk.Float64(t, "no offset near zero", 0, rangeOffset(-0.5, 0.5), 0)
	chk.Float64(t, "offset", 0, rangeOffset(1e6+0.1, 1e6+0.9), 1e6)
	chk.Float64(t, "plain tolerance", 0, edgeTol(0.2, 0), 1e-10)
	if tol := edgeTol(0.2, 1e6); tol <= 1e-10 || tol > 0.4999 {
		t.Errorf("offset tolerance %g", tol)
	}
}

func TestNiceLevelsDegenerate(t *testing.T) {
	got := NiceLevels(1, 1, 10)
	if len(got) < 2 {
		t.Fatalf("expected at least two levels, got %v", got)
	}
	if got[0] > 1 || got[len(got)-1] < 1 {
		t.Errorf("levels %v do not cover 1", got)
	}
}

func TestBand(t *testing.T) {
	levels := []float64{0, 1, 2, 3}
	tests := []struct {
		v    float64
		want int
	}{
		{-0.1, -1}, {0, 0}, {0.5, 0}, {1, 1}, {2.999, 2}, {3, 2}, {3.1, -1}, {math.NaN(), -1},
	}
	for _, tt := range tests {
		if got := Band(levels, tt.v); got != tt.want {
			t.Errorf("Band(%v): expected %d, got %d", tt.v, tt.want, got)
		}
	}
}

func squareMesh(t *testing.T) *mesh.Mesh {
	t.Helper()
	var pts [][2]float64
	for j := 0; j <= 4; j++ {
		for i := 0; i <= 4; i++ {
			pts = append(pts, [2]float64{float64(i) / 4, float64(j)/4 + 0.01*float64(i%2)})
		}
	}
	m, err := mesh.Triangulate(pts)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestIsoLinesLinearField(t *testing.T) {
	m := squareMesh(t)
	values := m.Eval(func(x, y float64) float64 { return x })

	segs, err := IsoLines(m, values, 0.6)
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) == 0 {
		t.Fatal("expected segments")
	}
	for _, s := range segs {
		chk.Float64(t, "x on level", 1e-12, s[0][0], 0.6)
		chk.Float64(t, "x on level", 1e-12, s[1][0], 0.6)
	}

	if segs, _ := IsoLines(m, values, 5); len(segs) != 0 {
		t.Errorf("expected no segments outside the range, got %d", len(segs))
	}
}

func TestBandsCoverMesh(t *testing.T) {
	m := squareMesh(t)
	values := m.Eval(func(x, y float64) float64 { return x*x + y })

	total := 0.0
	for tr := range m.Triangles {
		total += m.Area(tr)
	}

	levels := NiceLevels(0, 2.1, 8)
	bands, err := Bands(m, values, levels)
	if err != nil {
		t.Fatal(err)
	}
	if len(bands) != len(levels)-1 {
		t.Fatalf("expected %d bands, got %d", len(levels)-1, len(bands))
	}

	covered := 0.0
	for _, band := range bands {
		for _, p := range band {
			covered += p.Area()
		}
	}
	chk.Float64(t, "covered area", 1e-12, covered, total)
}

func TestBandsClipOutsideLevels(t *testing.T) {
	m := &mesh.Mesh{X: []float64{0, 1, 0}, Y: []float64{0, 0, 1}, Triangles: [][3]int{{0, 1, 2}}}
	values := []float64{0, 1, 0}

	bands, err := Bands(m, values, []float64{0.5, 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(bands[0]) != 1 {
		t.Fatalf("expected one polygon, got %d", len(bands[0]))
	}
	// the corner triangle beyond x = 0.5 has a quarter of the area
	chk.Float64(t, "area", 1e-14, bands[0][0].Area(), 0.125)
}

func TestFieldSizeMismatch(t *testing.T) {
	m := &mesh.Mesh{X: []float64{0, 1, 0}, Y: []float64{0, 0, 1}, Triangles: [][3]int{{0, 1, 2}}}
	if _, err := IsoLines(m, []float64{1}, 0); !errors.Is(err, ErrFieldSize) {
		t.Errorf("expected ErrFieldSize, got %v", err)
	}
	if _, err := Bands(m, []float64{1}, []float64{0, 1}); !errors.Is(err, ErrFieldSize) {
		t.Errorf("expected ErrFieldSize, got %v", err)
	}
}
