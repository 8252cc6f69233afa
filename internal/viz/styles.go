package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/mechlab/internal/colormap"
)

// Sidebar colours are taken from the viridis and magma stops the contour
// plots use, so the readout matches the frames.
var (
	playingStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#35b779"))
	pausedStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fde725"))
	recordingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#cd4071"))

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8a8779")).Width(16)
	noteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#707173"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f1605d"))

	tensionStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f1605d"))
	compressionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#26828e"))
	neutralStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#c4b56c"))
)

// zeroBand is the magnitude under which a readout counts as zero, such as
// the shear on a principal plane.
const zeroBand = 1e-9

// valueStyle colours a readout by sign: tension warm, compression cool.
func valueStyle(v float64) lipgloss.Style {
	switch {
	case math.IsNaN(v) || math.Abs(v) < zeroBand:
		return neutralStyle
	case v > 0:
		return tensionStyle
	default:
		return compressionStyle
	}
}

// GradientText blends each character's colour from start to end in Lab space.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	a, err := colorful.Hex(string(start))
	if err != nil {
		return text
	}
	b, err := colorful.Hex(string(end))
	if err != nil {
		return text
	}

	var out strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := a.BlendLab(b, t).Clamped()
		out.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return out.String()
}

// ProgressBar fills cells along the viridis colormap, so the bar reads like
// a colorbar that grows with playback.
func ProgressBar(percent float64, width int) string {
	filled := max(0, min(width, int(math.Round(percent*float64(width)))))
	cm, err := colormap.Get("viridis")

	var out strings.Builder
	for i := 0; i < filled; i++ {
		if err != nil {
			out.WriteString("█")
			continue
		}
		c := cm.At(float64(i) / float64(max(1, width-1)))
		out.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(c))).Render("█"))
	}
	out.WriteString(noteStyle.Render(strings.Repeat("·", width-filled)))
	return out.String()
}

func rule(width int) string {
	return noteStyle.Render(strings.Repeat("╌", width))
}
