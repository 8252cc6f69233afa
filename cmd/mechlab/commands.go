package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/mechlab/internal/anim"
	"github.com/san-kum/mechlab/internal/batch"
	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/export"
	"github.com/san-kum/mechlab/internal/gui"
	"github.com/san-kum/mechlab/internal/logger"
	"github.com/san-kum/mechlab/internal/storage"
	"github.com/san-kum/mechlab/internal/verify"
	"github.com/san-kum/mechlab/internal/viz"
)

var errNoScript = errors.New("no script given")

// resolveConfig builds the settings of one invocation. Later sources win:
// defaults, preset, config file, explicit flags, then --set overrides.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	var file *config.Config
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		file = loaded
		cfg = loaded.Clone()
	}
	if len(args) > 0 {
		cfg.Script = args[0]
	}
	if cfg.Script == "" {
		return nil, errNoScript
	}

	if preset != "" {
		p := config.GetPreset(cfg.Script, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for %s", preset, cfg.Script)
		}
		cfg.Overlay(p)
		cfg.Overlay(file)
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Lookup("format") != nil && flags.Changed("format") {
		cfg.Format = strings.ToLower(format)
	}
	if flags.Lookup("theme") != nil && flags.Changed("theme") {
		cfg.Theme = theme
	}

	for _, kv := range sets {
		name, raw, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("--set %q: want name=value", kv)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("--set %q: %w", kv, err)
		}
		cfg.SetParam(strings.TrimSpace(name), v)
	}

	return cfg, cfg.Validate()
}

func buildScript(cmd *cobra.Command, args []string) (anim.Animation, *config.Config, error) {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	a, err := anim.NewRegistry().Get(cfg.Script, cfg)
	if err != nil {
		return nil, nil, err
	}
	return a, cfg, nil
}

func listScripts(cmd *cobra.Command, args []string) error {
	reg := anim.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCRIPT\tPRESETS\tDESCRIPTION")
	for _, name := range reg.List() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, strings.Join(config.ListPresets(name), ","), reg.Describe(name))
	}
	return w.Flush()
}

func renderScript(cmd *cobra.Command, args []string) error {
	a, cfg, err := buildScript(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("rendering %s (%d frames, %dx%d)...\n", a.Name(), a.Frames(), cfg.Width, cfg.Height)
	start := time.Now()
	files, err := export.Animation(cmd.Context(), a, export.Job{
		Format:  cfg.Format,
		Path:    outPath,
		Width:   cfg.Width,
		Height:  cfg.Height,
		FPS:     cfg.FPS,
		Workers: cfg.Workers,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.Run{
		Script:  cfg.Script,
		Config:  cfg,
		Format:  cfg.Format,
		Outputs: files,
		Samples: a.Samples(),
		Elapsed: elapsed,
	})
	if err != nil {
		return err
	}
	logger.Script(cfg.Script).Info("render.done", "run", runID, "files", len(files), "elapsed", elapsed)

	fmt.Printf("completed in %v\n", elapsed.Round(time.Millisecond))
	fmt.Printf("run id: %s\n", runID)
	if len(files) == 1 {
		fmt.Printf("output: %s\n", files[0])
	} else {
		dir := outPath
		if dir == "" {
			dir = export.DefaultPath(cfg.Script, cfg.Format)
		}
		fmt.Printf("output: %d files in %s\n", len(files), dir)
	}

	summary := storage.Summary(a.Samples())
	if len(summary) > 0 {
		fmt.Println("\nfinal frame:")
		for _, name := range sortedKeys(summary) {
			fmt.Printf("  %s: %.6f\n", name, summary[name])
		}
	}
	return nil
}

func playScript(cmd *cobra.Command, args []string) error {
	a, cfg, err := buildScript(cmd, args)
	if err != nil {
		return err
	}
	return viz.Run(a, viz.Options{
		FPS:   cfg.FPS,
		Theme: cfg.Theme,
		Loop:  loop,
		Record: viz.RecordOptions{
			Dir:    outDir,
			Width:  cfg.Width,
			Height: cfg.Height,
		},
	})
}

func windowScript(cmd *cobra.Command, args []string) error {
	a, cfg, err := buildScript(cmd, args)
	if err != nil {
		return err
	}
	gui.Run(a, gui.Options{Width: cfg.Width, Height: cfg.Height, FPS: cfg.FPS, Loop: loop, RecordDir: outDir})
	return nil
}

// samplesFor returns the sample table of a script, built from flags, or of
// a stored run when the argument names no script.
func samplesFor(cmd *cobra.Command, name string) (string, anim.Table, error) {
	if slices.Contains(anim.NewRegistry().List(), name) {
		a, _, err := buildScript(cmd, []string{name})
		if err != nil {
			return "", anim.Table{}, err
		}
		return a.Title(), a.Samples(), nil
	}

	st := storage.New(dataDir)
	meta, err := st.Load(name)
	if err != nil {
		return "", anim.Table{}, fmt.Errorf("%q is neither a script nor a run: %w", name, err)
	}
	t, err := st.LoadSamples(name)
	if err != nil {
		return "", anim.Table{}, err
	}
	return fmt.Sprintf("%s (%s)", meta.Script, meta.ID), t, nil
}

func plotSamples(cmd *cobra.Command, args []string) error {
	title, t, err := samplesFor(cmd, args[0])
	if err != nil {
		return err
	}
	if len(t.Rows) == 0 || len(t.Columns) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("samples: %s\n", title)
	fmt.Printf("frames: %d\n\n", len(t.Rows))

	for _, name := range t.Columns[1:] {
		data := finite(t.Column(name))
		if len(data) == 0 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs "+t.Columns[0]),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func chartSamples(cmd *cobra.Command, args []string) error {
	title, t, err := samplesFor(cmd, args[0])
	if err != nil {
		return err
	}
	path := outPath
	if path == "" {
		path = args[0] + "_chart.png"
	}
	xName, series := export.TableSeries(t)
	if err := export.Chart(path, title, xName, series...); err != nil {
		return err
	}
	fmt.Printf("chart: %s\n", path)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, t, err := samplesFor(cmd, args[0])
	if err != nil {
		return err
	}
	if len(t.Rows) == 0 {
		return fmt.Errorf("no data to export")
	}
	return storage.WriteCSV(os.Stdout, t)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
}

func verifyModels(cmd *cobra.Command, args []string) error {
	checks := verify.All()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GROUP\tCHECK\tWORST\tTOL\tSAMPLES\tSTATUS")
	for _, c := range checks {
		status := "ok"
		if !c.Pass() {
			status = "FAIL"
		}
		fmt.Fprintf(w, "%s\t%s\t%.2e\t%.0e\t%d\t%s\n", c.Group(), c.Name(), c.Value(), c.Tol(), c.Samples(), status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if failed := verify.Failed(checks); len(failed) > 0 {
		return fmt.Errorf("%d of %d checks failed", len(failed), len(checks))
	}
	fmt.Printf("\nall %d checks passed\n", len(checks))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	presets := config.ListPresets(args[0])
	if len(presets) == 0 {
		fmt.Printf("no presets for script: %s\n", args[0])
		return nil
	}
	fmt.Printf("presets for %s:\n", args[0])
	for _, p := range presets {
		fmt.Printf("  %s\n", p)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCRIPT\tTIME\tFRAMES\tFORMAT\tFILES\tELAPSED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%d\t%dms\n",
			run.ID,
			run.Script,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Format,
			len(run.Outputs),
			run.ElapsedMS,
		)
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := batch.LoadScenario(args[0])
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	base := config.DefaultConfig()
	if cmd.Flags().Changed("workers") {
		base.Workers = workers
	}
	r := &batch.Runner{
		Registry: anim.NewRegistry(),
		Store:    st,
		Base:     base,
		OutDir:   outDir,
		Out:      os.Stdout,
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	start := time.Now()
	results, err := r.RunScenario(cmd.Context(), sc)
	if err != nil {
		return err
	}
	fmt.Printf("\n%d steps completed in %v\n", len(results), time.Since(start).Round(time.Millisecond))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	results, err := batch.RunSweep(cmd.Context(), anim.NewRegistry(), &batch.ParameterSweep{
		Script:   args[0],
		Param:    sweepParam,
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
		Base:     base,
	}, os.Stderr)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}

	cols := sortedKeys(results[0].Final)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", sweepParam, strings.Join(cols, "\t"))
	for _, res := range results {
		vals := make([]string, len(cols))
		for i, c := range cols {
			vals[i] = strconv.FormatFloat(res.Final[c], 'g', 6, 64)
		}
		fmt.Fprintf(w, "%g\t%s\n", res.Value, strings.Join(vals, "\t"))
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if outPath != "" {
		if err := config.Save(outPath, cfg); err != nil {
			return err
		}
		fmt.Printf("config: %s\n", outPath)
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func finite(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			out = append(out, x)
		}
	}
	return out
}
