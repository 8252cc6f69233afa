package viz

import (
	"fmt"
	"image"
	"math"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/mechlab/internal/anim"
	"github.com/san-kum/mechlab/internal/export"
	"github.com/san-kum/mechlab/internal/logger"
	"github.com/san-kum/mechlab/internal/render"
)

const (
	width        = 80
	height       = 24
	sidebarWidth = 46
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(sidebarWidth)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Options configures a player.
type Options struct {
	FPS    int
	Theme  string
	Loop   bool
	Record RecordOptions
}

// RecordOptions sets where and at what size the g key records.
type RecordOptions struct {
	Dir           string
	Width, Height int
}

// Model plays the frames of one animation on a braille canvas.
type Model struct {
	anim      anim.Animation
	samples   anim.Table
	scenes    []*render.Scene
	cache     map[int]*Canvas
	opts      Options
	head      *anim.Playhead
	width     int
	height    int
	theme     Theme
	recording bool
	recorded  []*image.RGBA
	lastSaved string
	lastErr   error
	showHelp  bool
}

func NewModel(a anim.Animation, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 20
	}
	if opts.Record.Width <= 0 || opts.Record.Height <= 0 {
		opts.Record.Width, opts.Record.Height = 640, 480
	}
	return Model{
		anim:    a,
		samples: a.Samples(),
		scenes:  make([]*render.Scene, a.Frames()),
		cache:   make(map[int]*Canvas),
		opts:    opts,
		head:    anim.NewPlayhead(a.Frames(), opts.Loop),
		width:   width,
		height:  height,
		theme:   GetTheme(opts.Theme),
	}
}

// Run plays a in the alternate screen until the user quits.
func Run(a anim.Animation, opts Options) error {
	_, err := tea.NewProgram(NewModel(a, opts), tea.WithAltScreen()).Run()
	return err
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances playback.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recording {
				m.stopRecording()
			}
			return m, tea.Quit
		case " ":
			m.head.Toggle()
		case "r":
			m.head.Restart()
		case "[":
			m.head.Step(-1)
		case "]":
			m.head.Step(1)
		case "g":
			if m.recording {
				m.stopRecording()
			} else {
				m.recording = true
				m.recorded = m.recorded[:0]
				m.lastErr = nil
			}
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "h":
			m.orbit(anim.Orbit(m.anim, -anim.OrbitAzimStep, 0))
		case "l":
			m.orbit(anim.Orbit(m.anim, anim.OrbitAzimStep, 0))
		case "k":
			m.orbit(anim.Orbit(m.anim, 0, anim.OrbitElevStep))
		case "j":
			m.orbit(anim.Orbit(m.anim, 0, -anim.OrbitElevStep))
		case "+", "=":
			m.orbit(anim.Zoom(m.anim, true))
		case "-":
			m.orbit(anim.Zoom(m.anim, false))
		}
	case tea.WindowSizeMsg:
		w := max(20, msg.Width-sidebarWidth-8)
		h := max(8, msg.Height-4)
		if w != m.width || h != m.height {
			m.width, m.height = w, h
			m.cache = make(map[int]*Canvas)
		}
	case TickMsg:
		if m.head.Running {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

// orbit drops cached scenes once the camera has moved.
func (m *Model) orbit(moved bool) {
	if moved {
		m.scenes = make([]*render.Scene, m.anim.Frames())
		m.cache = make(map[int]*Canvas)
	}
}

func (m *Model) advance() {
	if m.recording {
		m.recorded = append(m.recorded, render.Raster(m.scene(m.head.Frame), m.opts.Record.Width, m.opts.Record.Height))
	}
	m.head.Advance()
}

func (m *Model) scene(i int) *render.Scene {
	if m.scenes[i] == nil {
		m.scenes[i] = m.anim.Frame(i)
	}
	return m.scenes[i]
}

// canvas rasterises frame i at one pixel per braille dot.
func (m *Model) canvas(i int) *Canvas {
	if c, ok := m.cache[i]; ok {
		return c
	}
	s := m.scene(i)
	c := NewCanvas(m.width, m.height)
	c.Plot(render.Raster(s, m.width*2, m.height*4), s.Background)
	m.cache[i] = c
	return c
}

func (m *Model) stopRecording() {
	m.recording = false
	if len(m.recorded) == 0 {
		return
	}
	name := fmt.Sprintf("%s_%d.gif", m.anim.Name(), time.Now().Unix())
	path := filepath.Join(m.opts.Record.Dir, name)
	delay := max(1, 100/m.opts.FPS)
	if err := export.GIF(path, m.recorded, delay); err != nil {
		m.lastErr = err
		logger.L().Error("player.record", "path", path, "err", err)
	} else {
		m.lastSaved = path
		logger.L().Info("player.record", "path", path, "frames", len(m.recorded))
	}
	m.recorded = nil
}

// Frame returns the current frame index.
func (m Model) Frame() int { return m.head.Frame }

// Running reports whether playback is advancing.
func (m Model) Running() bool { return m.head.Running }

// Theme returns the active theme.
func (m Model) Theme() Theme { return m.theme }

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas(m.head.Frame).Colored(m.theme.Tint()))

	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(m.anim.Name()), m.theme.Primary, m.theme.Secondary) + "\n")
	s.WriteString(noteStyle.Render(m.anim.Title()) + "\n\n")

	n := m.anim.Frames()
	switch {
	case m.recording:
		s.WriteString(recordingStyle.Render(fmt.Sprintf("● REC %d", len(m.recorded))))
	case m.head.Running:
		s.WriteString(playingStyle.Render("PLAYING"))
	default:
		s.WriteString(pausedStyle.Render("PAUSED"))
	}
	s.WriteString(lipgloss.NewStyle().Foreground(m.theme.Accent).Render(fmt.Sprintf("  frame %d/%d", m.head.Frame+1, n)) + "\n")
	s.WriteString(ProgressBar(m.head.Progress(), 30) + "\n")

	if name, series := m.samples.Primary(); len(series) > 1 {
		upto := series[:max(2, min(len(series), m.head.Frame+1))]
		chart := asciigraph.Plot(finite(upto), asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption(name))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	for _, c := range m.samples.Columns {
		v := m.samples.Row(m.head.Frame)[c]
		s.WriteString(labelStyle.Render(c) + valueStyle(v).Render(formatValue(v)) + "\n")
	}

	if m.lastSaved != "" {
		s.WriteString("\n" + noteStyle.Render("saved "+m.lastSaved) + "\n")
	}
	if m.lastErr != nil {
		s.WriteString("\n" + errStyle.Render(m.lastErr.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render("\n" + rule(30) + "\nSP:Pause R:Restart Q:Quit\nT:Theme  G:Record  ?:Help\n[ ]:Step  HJKL:Orbit  +-:Zoom\ntheme " + m.theme.Name))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume playback    ║
║  R        - Restart from frame 1     ║
║  Q        - Quit                     ║
║  [        - Step back one frame      ║
║  ]        - Step forward one frame   ║
║  G        - Toggle GIF recording     ║
║  H / L    - Orbit camera left/right  ║
║  K / J    - Tilt camera up/down      ║
║  + / -    - Zoom in/out              ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
 themes: ` + strings.Join(ThemeNames(), ", ") + "\n\n" + mainView
	}
	return mainView
}

func formatValue(v float64) string {
	if v != 0 && (math.Abs(v) < 1e-3 || math.Abs(v) >= 1e4) {
		return fmt.Sprintf("%.3e", v)
	}
	return fmt.Sprintf("%.4f", v)
}

// finite drops NaN and Inf, which asciigraph cannot scale.
func finite(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			out = append(out, x)
		}
	}
	if len(out) == 0 {
		out = append(out, 0)
	}
	return out
}
