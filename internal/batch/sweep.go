package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/mechlab/internal/anim"
	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/mechanics"
	"github.com/san-kum/mechlab/internal/storage"
)

// ParameterSweep evaluates a script across a range of one parameter
type ParameterSweep struct {
	Script   string
	Param    string
	Min, Max float64
	NumSteps int
	Base     *config.Config
}

// SweepResult holds the last-frame quantities for one parameter value
type SweepResult struct {
	Value float64
	Final map[string]float64
}

// RunSweep builds the script once per value and keeps its final samples.
// No frames are rendered.
func RunSweep(ctx context.Context, reg *anim.Registry, sweep *ParameterSweep, out io.Writer) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, errors.New("batch: sweep needs at least one step")
	}
	defaults, err := reg.Defaults(sweep.Script)
	if err != nil {
		return nil, err
	}
	if _, ok := defaults[sweep.Param]; !ok {
		return nil, fmt.Errorf("%w: %s has no param %s", config.ErrInvalid, sweep.Script, sweep.Param)
	}
	if out == nil {
		out = os.Stdout
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i, v := range mechanics.Sweep(sweep.Min, sweep.Max, sweep.NumSteps, true) {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		cfg := config.DefaultConfig()
		if sweep.Base != nil {
			cfg = sweep.Base.Clone()
		}
		cfg.SetParam(sweep.Param, v)

		a, err := reg.Get(sweep.Script, cfg)
		if err != nil {
			return results, err
		}
		results = append(results, SweepResult{Value: v, Final: storage.Summary(a.Samples())})

		fmt.Fprintf(out, "Sweep %d/%d: %s=%.4f\n", i+1, sweep.NumSteps, sweep.Param, v)
	}
	return results, nil
}
