package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mechlab/internal/anim"
	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/export"
	"github.com/san-kum/mechlab/internal/logger"
	"github.com/san-kum/mechlab/internal/storage"
)

var (
	ErrEmptyScenario = errors.New("batch: scenario has no steps")
	ErrUnknownPreset = errors.New("batch: unknown preset")
)

// Scenario defines a scripted sequence of renders
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is a single render. Zero values keep the runner's base settings.
type Step struct {
	Script string             `yaml:"script"`
	Preset string             `yaml:"preset"`
	Params map[string]float64 `yaml:"params"`
	Format string             `yaml:"format"`
	Output string             `yaml:"output"`
	Frames int                `yaml:"frames"`
	Width  int                `yaml:"width"`
	Height int                `yaml:"height"`
	FPS    int                `yaml:"fps"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyScenario)
	}
	return &scenario, nil
}

// Config resolves the step's settings on top of base: preset first, then
// the step's own values.
func (s Step) Config(base *config.Config) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if base != nil {
		cfg = base.Clone()
	}
	cfg.Script = s.Script

	if s.Preset != "" {
		p := config.GetPreset(s.Script, s.Preset)
		if p == nil {
			return nil, fmt.Errorf("%w: %s/%s", ErrUnknownPreset, s.Script, s.Preset)
		}
		cfg.Overlay(p)
	}
	for k, v := range s.Params {
		cfg.SetParam(k, v)
	}

	if s.Format != "" {
		cfg.Format = s.Format
	}
	if s.Frames > 0 {
		cfg.Frames = s.Frames
	}
	if s.Width > 0 {
		cfg.Width = s.Width
	}
	if s.Height > 0 {
		cfg.Height = s.Height
	}
	if s.FPS > 0 {
		cfg.FPS = s.FPS
	}
	return cfg, cfg.Validate()
}

// Result is one executed step.
type Result struct {
	Step    int
	Script  string
	RunID   string
	Outputs []string
	Elapsed time.Duration
}

// Runner executes scenarios, storing each step as a run.
type Runner struct {
	Registry *anim.Registry
	Store    *storage.Store
	Base     *config.Config
	OutDir   string
	Out      io.Writer
}

// RunScenario executes all steps in order and stops at the first failure.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]Result, error) {
	if len(scenario.Steps) == 0 {
		return nil, ErrEmptyScenario
	}
	out := r.Out
	if out == nil {
		out = os.Stdout
	}

	results := make([]Result, 0, len(scenario.Steps))
	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		fmt.Fprintf(out, "Running step %d/%d: %s\n", i+1, len(scenario.Steps), step.Script)

		res, err := r.runStep(ctx, step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		res.Step = i + 1
		results = append(results, res)

		fmt.Fprintf(out, "  %d file(s) in %v, run %s\n", len(res.Outputs), res.Elapsed.Round(time.Millisecond), res.RunID)
	}

	logger.L().Info("batch.done", "scenario", scenario.Name, "steps", len(results))
	return results, nil
}

func (r *Runner) runStep(ctx context.Context, step Step) (Result, error) {
	cfg, err := step.Config(r.Base)
	if err != nil {
		return Result{}, err
	}

	a, err := r.Registry.Get(step.Script, cfg)
	if err != nil {
		return Result{}, err
	}

	path := step.Output
	if path == "" {
		path = export.DefaultPath(step.Script, cfg.Format)
	}
	if r.OutDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(r.OutDir, path)
	}

	start := time.Now()
	files, err := export.Animation(ctx, a, export.Job{
		Format:  cfg.Format,
		Path:    path,
		Width:   cfg.Width,
		Height:  cfg.Height,
		FPS:     cfg.FPS,
		Workers: cfg.Workers,
	})
	if err != nil {
		return Result{}, err
	}
	elapsed := time.Since(start)

	res := Result{Script: step.Script, Outputs: files, Elapsed: elapsed}
	if r.Store != nil {
		id, err := r.Store.Save(storage.Run{
			Script:  step.Script,
			Config:  cfg,
			Format:  cfg.Format,
			Outputs: files,
			Samples: a.Samples(),
			Elapsed: elapsed,
		})
		if err != nil {
			return res, err
		}
		res.RunID = id
	}
	logger.Script(step.Script).Info("batch.step", "run", res.RunID, "files", len(files), "elapsed", elapsed)
	return res, nil
}
