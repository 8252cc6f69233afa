package gui

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/mechlab/internal/anim"
	"github.com/san-kum/mechlab/internal/export"
	"github.com/san-kum/mechlab/internal/gui/layout"
	"github.com/san-kum/mechlab/internal/logger"
)

// Palette colours the HUD around the plot.
type Palette struct {
	Name    string
	Bg      rl.Color
	Accent  rl.Color
	Select  rl.Color
	Text    rl.Color
	TextDim rl.Color
}

var Palettes = []Palette{
	{
		Name:    "mono",
		Bg:      rl.NewColor(10, 10, 10, 255),
		Accent:  rl.NewColor(180, 180, 180, 255),
		Select:  rl.NewColor(255, 255, 255, 255),
		Text:    rl.NewColor(140, 140, 140, 255),
		TextDim: rl.NewColor(60, 60, 60, 255),
	},
	{
		Name:    "paper",
		Bg:      rl.NewColor(245, 245, 240, 255),
		Accent:  rl.NewColor(30, 90, 180, 255),
		Select:  rl.NewColor(0, 0, 0, 255),
		Text:    rl.NewColor(60, 60, 60, 255),
		TextDim: rl.NewColor(150, 150, 150, 255),
	},
	{
		Name:    "cyberpunk",
		Bg:      rl.NewColor(10, 10, 10, 255),
		Accent:  rl.NewColor(0, 255, 255, 255),
		Select:  rl.NewColor(255, 0, 255, 255),
		Text:    rl.NewColor(255, 255, 255, 255),
		TextDim: rl.NewColor(102, 102, 102, 255),
	},
}

// Options configures the window. Width and Height size the plot; the
// window grows around it.
type Options struct {
	Width     int
	Height    int
	FPS       int
	Loop      bool
	RecordDir string
}

type App struct {
	Anim      anim.Animation
	Samples   anim.Table
	Head      *anim.Playhead
	Palette   int
	Font      rl.Font
	ShowHelp  bool
	Recording bool
	Status    string

	opts     Options
	layout   layout.Layout
	frames   *frameCache
	tex      rl.Texture2D
	shown    int
	elapsed  float32
	recorded []*image.RGBA
}

func initWindow(l layout.Layout, title string) {
	rl.InitWindow(int32(l.WindowW), int32(l.WindowH), title)
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont uses Liberation Mono when installed and raylib's font otherwise.
func loadFont() rl.Font {
	const path = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
	if _, err := os.Stat(path); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(path, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(a anim.Animation, opts Options) *App {
	if opts.FPS <= 0 {
		opts.FPS = 20
	}
	l := layout.New(opts.Width, opts.Height)
	app := &App{
		Anim:    a,
		Samples: a.Samples(),
		Head:    anim.NewPlayhead(a.Frames(), opts.Loop),
		Font:    loadFont(),
		opts:    opts,
		layout:  l,
		frames:  newFrameCache(a, l.Plot.W, l.Plot.H),
		shown:   -1,
	}
	img := rl.GenImageColor(l.Plot.W, l.Plot.H, rl.Black)
	app.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	return app
}

// Run opens a window playing a and blocks until it is closed.
func Run(a anim.Animation, opts Options) {
	initWindow(layout.New(opts.Width, opts.Height), "mechlab :: "+a.Name())
	defer rl.CloseWindow()
	app := NewApp(a, opts)
	defer rl.UnloadTexture(app.tex)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			break
		}
		a.Draw()
	}
	if a.Recording {
		a.stopRecording()
	}
}

// Update handles keys and advances playback. It returns false on quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return false
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Head.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Head.Restart()
	}
	if rl.IsKeyPressed(rl.KeyLeftBracket) {
		a.Head.Step(-1)
	}
	if rl.IsKeyPressed(rl.KeyRightBracket) {
		a.Head.Step(1)
	}
	if rl.IsKeyPressed(rl.KeyT) {
		a.Palette = (a.Palette + 1) % len(Palettes)
	}
	if rl.IsKeyPressed(rl.KeySlash) {
		a.ShowHelp = !a.ShowHelp
	}
	a.updateCamera()
	if rl.IsKeyPressed(rl.KeyG) {
		if a.Recording {
			a.stopRecording()
		} else {
			a.Recording = true
			a.recorded = nil
			a.Status = "recording"
		}
	}

	if !a.Head.Running {
		a.elapsed = 0
		return true
	}
	a.elapsed += rl.GetFrameTime()
	period := 1 / float32(a.opts.FPS)
	for a.elapsed >= period && a.Head.Running {
		a.elapsed -= period
		if a.Recording {
			a.recorded = append(a.recorded, a.frames.get(a.Head.Frame))
		}
		a.Head.Advance()
	}
	return true
}

// updateCamera orbits with the arrow keys and zooms with the wheel. Cached
// rasters are dropped after any change so the new view is drawn.
func (a *App) updateCamera() {
	moved := false
	if rl.IsKeyPressed(rl.KeyLeft) {
		moved = anim.Orbit(a.Anim, -anim.OrbitAzimStep, 0) || moved
	}
	if rl.IsKeyPressed(rl.KeyRight) {
		moved = anim.Orbit(a.Anim, anim.OrbitAzimStep, 0) || moved
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		moved = anim.Orbit(a.Anim, 0, anim.OrbitElevStep) || moved
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		moved = anim.Orbit(a.Anim, 0, -anim.OrbitElevStep) || moved
	}
	if w := rl.GetMouseWheelMove(); w != 0 {
		moved = anim.Zoom(a.Anim, w > 0) || moved
	}
	if moved {
		a.frames = newFrameCache(a.Anim, a.layout.Plot.W, a.layout.Plot.H)
		a.shown = -1
	}
}

func (a *App) stopRecording() {
	a.Recording = false
	if len(a.recorded) == 0 {
		a.Status = ""
		return
	}
	path := filepath.Join(a.opts.RecordDir, fmt.Sprintf("%s_%d.gif", a.Anim.Name(), time.Now().Unix()))
	if err := export.GIF(path, a.recorded, max(1, 100/a.opts.FPS)); err != nil {
		a.Status = err.Error()
		logger.L().Error("window.record", "path", path, "err", err)
	} else {
		a.Status = "saved " + path
		logger.L().Info("window.record", "path", path, "frames", len(a.recorded))
	}
	a.recorded = nil
}

func (a *App) Draw() {
	p := Palettes[a.Palette]
	rl.BeginDrawing()
	rl.ClearBackground(p.Bg)

	a.drawFrame()
	a.DrawHUD(p)
	a.DrawTelemetry(p)
	if a.ShowHelp {
		a.drawHelp(p)
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD(p Palette) {
	l := a.layout
	a.drawText("mechlab", l.Plot.X, 20, 24, p.Select)
	a.drawText(fmt.Sprintf(":: %s", a.Anim.Title()), l.Plot.X+120, 24, 16, p.Text)

	status, col := "PLAYING", p.Select
	switch {
	case a.Recording:
		status, col = fmt.Sprintf("REC %d", len(a.recorded)), rl.Red
	case !a.Head.Running:
		status, col = "PAUSED", p.TextDim
	}
	x, y := l.Sidebar.X, l.Sidebar.Y
	a.drawText(status, x, y, 18, col)
	a.drawText(fmt.Sprintf("frame %d/%d", a.Head.Frame+1, a.Head.Frames), x, y+26, 16, p.Text)

	row := a.Samples.Row(a.Head.Frame)
	y += 60
	for _, c := range a.Samples.Columns {
		a.drawText(fmt.Sprintf("%-12s %10.4g", c, row[c]), x, y, 14, p.Text)
		y += 20
	}

	if a.Status != "" {
		a.drawText(a.Status, l.Plot.X, l.StatusY, 12, p.Accent)
	}
	a.drawText("[SPACE] PAUSE  [ ] STEP  [ARROWS] ORBIT  [?] HELP  [Q] QUIT", x-300, l.StatusY, 12, p.TextDim)
}

// DrawTelemetry plots the primary sample series up to the current frame.
func (a *App) DrawTelemetry(p Palette) {
	name, series := a.Samples.Primary()
	n := min(len(series), a.Head.Frame+1)
	if n < 2 {
		return
	}

	g := a.layout.Graph
	rectX, rectY, width, height := g.X, g.Y, g.W, g.H

	minVal, maxVal := series[0], series[0]
	for _, v := range series {
		minVal, maxVal = min(minVal, v), max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, n)
	for i, val := range series[:n] {
		px := float32(rectX) + float32(i)/float32(len(series)-1)*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawRectangleLines(int32(rectX), int32(rectY), int32(width), int32(height), p.TextDim)
	rl.DrawLineStrip(points, p.Accent)
	a.drawText(fmt.Sprintf("%s: %.3g", name, series[n-1]), rectX, rectY-18, 14, p.Text)
}

func (a *App) drawHelp(p Palette) {
	lines := []string{
		"SPACE  pause / resume",
		"R      restart",
		"[ ]    step one frame",
		"ARROWS orbit camera",
		"WHEEL  zoom",
		"T      cycle theme",
		"G      toggle GIF recording",
		"?      toggle help",
		"Q      quit",
	}
	boxH := 40 + len(lines)*24
	x, y := a.layout.Center(360, boxH)
	rl.DrawRectangle(int32(x), int32(y), 360, int32(boxH), rl.NewColor(0, 0, 0, 200))
	for i, l := range lines {
		a.drawText(l, x+20, y+20+i*24, 16, rl.White)
	}
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
