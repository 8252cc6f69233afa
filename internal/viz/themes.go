package viz

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme colours the sidebar. Primary and Secondary are the ends of the
// title gradient, Accent marks the frame counter. A mono theme draws the
// whole scene in Primary, like a chalkboard or a phosphor screen; the
// others keep the scene's own colours.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Mono      bool
}

var (
	ThemeCyberpunk = Theme{Name: "cyberpunk", Primary: "#ff00ff", Secondary: "#00ffff", Accent: "#ffff00"}
	ThemeSunset    = Theme{Name: "sunset", Primary: "#ff6b6b", Secondary: "#feca57", Accent: "#ff9ff3"}
	ThemeRetro     = Theme{Name: "retro", Primary: "#00ff00", Secondary: "#00cc00", Accent: "#88ff88", Mono: true}
	ThemeChalk     = Theme{Name: "chalk", Primary: "#f2f2ea", Secondary: "#9a9a90", Accent: "#f6d365", Mono: true}
	ThemeBlueprint = Theme{Name: "blueprint", Primary: "#9ecfff", Secondary: "#3b7dd8", Accent: "#ffffff", Mono: true}

	// Themes is the cycle order of the t key.
	Themes = []Theme{ThemeCyberpunk, ThemeSunset, ThemeRetro, ThemeChalk, ThemeBlueprint}
)

// GetTheme falls back to cyberpunk for unknown names.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Tint is the colour a mono theme draws with, or nil.
func (t Theme) Tint() *color.NRGBA {
	if !t.Mono {
		return nil
	}
	c := nrgba(t.Primary)
	return &c
}

func nrgba(c lipgloss.Color) color.NRGBA {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	r, g, b := col.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
