package anim

// Playhead tracks the frame a player shows. Players call Advance once per
// frame period while Running.
type Playhead struct {
	Frames  int
	Loop    bool
	Frame   int
	Running bool
}

func NewPlayhead(frames int, loop bool) *Playhead {
	return &Playhead{Frames: frames, Loop: loop, Running: true}
}

// Advance moves one frame forward, wrapping when looping and stopping on
// the last frame otherwise.
func (p *Playhead) Advance() {
	if p.Frame+1 < p.Frames {
		p.Frame++
		return
	}
	if p.Loop {
		p.Frame = 0
		return
	}
	p.Running = false
}

// Step pauses and moves by d frames, clamped to the range.
func (p *Playhead) Step(d int) {
	p.Running = false
	p.Frame = max(0, min(p.Frames-1, p.Frame+d))
}

func (p *Playhead) Restart() {
	p.Frame = 0
	p.Running = true
}

func (p *Playhead) Toggle() {
	p.Running = !p.Running
}

// Progress is the fraction of frames shown, in (0, 1].
func (p *Playhead) Progress() float64 {
	if p.Frames == 0 {
		return 0
	}
	return float64(p.Frame+1) / float64(p.Frames)
}
