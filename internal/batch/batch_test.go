package batch_test

import (
	"context"
	"io"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mechlab/internal/anim"
	"github.com/san-kum/mechlab/internal/batch"
	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/storage"
)

const scenarioYAML = `
name: lecture
description: two quick renders
steps:
  - script: mohr-stress
    preset: pure-shear
    format: svg
    output: mohr
  - script: cylinder
    params:
      re: 3
    format: gif
    output: cylinder.gif
`

var _ = Describe("Batch", func() {
	var (
		dir    string
		base   *config.Config
		runner *batch.Runner
		store  *storage.Store
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		base = config.DefaultConfig()
		base.Width, base.Height, base.Frames = 64, 48, 3
		store = storage.New(filepath.Join(dir, "runs"))
		Expect(store.Init()).To(Succeed())
		runner = &batch.Runner{
			Registry: anim.NewRegistry(),
			Store:    store,
			Base:     base,
			OutDir:   filepath.Join(dir, "out"),
			Out:      io.Discard,
		}
		Expect(os.MkdirAll(runner.OutDir, 0755)).To(Succeed())
	})

	Describe("LoadScenario", func() {
		It("parses steps", func() {
			path := filepath.Join(dir, "s.yaml")
			Expect(os.WriteFile(path, []byte(scenarioYAML), 0644)).To(Succeed())

			sc, err := batch.LoadScenario(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(sc.Name).To(Equal("lecture"))
			Expect(sc.Steps).To(HaveLen(2))
			Expect(sc.Steps[1].Params).To(HaveKeyWithValue("re", 3.0))
		})

		It("rejects empty scenarios", func() {
			path := filepath.Join(dir, "empty.yaml")
			Expect(os.WriteFile(path, []byte("name: nothing\n"), 0644)).To(Succeed())
			_, err := batch.LoadScenario(path)
			Expect(err).To(MatchError(batch.ErrEmptyScenario))
		})
	})

	Describe("Step.Config", func() {
		It("applies the preset before the step's params", func() {
			step := batch.Step{Script: "cylinder", Preset: "hoop", Params: map[string]float64{"re": 4}, FPS: 5}
			cfg, err := step.Config(base)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Params).To(HaveKeyWithValue("re", 4.0))
			Expect(cfg.Params).To(HaveKeyWithValue("radial", 0.0))
			Expect(cfg.FPS).To(Equal(5))
			Expect(cfg.Width).To(Equal(64))
			Expect(base.Params).To(BeEmpty())
		})

		It("rejects unknown presets", func() {
			_, err := batch.Step{Script: "cylinder", Preset: "nope"}.Config(base)
			Expect(err).To(MatchError(batch.ErrUnknownPreset))
		})

		It("rejects invalid params", func() {
			_, err := batch.Step{Script: "cylinder", Params: map[string]float64{"re": -1}}.Config(base)
			Expect(err).To(MatchError(config.ErrInvalid))
		})
	})

	Describe("RunScenario", func() {
		It("renders and stores every step", func() {
			path := filepath.Join(dir, "s.yaml")
			Expect(os.WriteFile(path, []byte(scenarioYAML), 0644)).To(Succeed())
			sc, err := batch.LoadScenario(path)
			Expect(err).NotTo(HaveOccurred())

			results, err := runner.RunScenario(context.Background(), sc)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(2))

			Expect(results[0].Outputs).To(HaveLen(3))
			Expect(results[1].Outputs).To(Equal([]string{filepath.Join(runner.OutDir, "cylinder.gif")}))
			for _, r := range results {
				for _, f := range r.Outputs {
					Expect(f).To(BeAnExistingFile())
				}
			}

			runs, err := store.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(runs).To(HaveLen(2))
			Expect(runs[1].Params).To(HaveKeyWithValue("re", 3.0))
		})

		It("stops at the first failing step", func() {
			sc := &batch.Scenario{Steps: []batch.Step{
				{Script: "cylinder", Format: "svg", Output: "ok"},
				{Script: "no-such-script"},
				{Script: "cylinder"},
			}}
			results, err := runner.RunScenario(context.Background(), sc)
			Expect(err).To(MatchError(anim.ErrUnknownScript))
			Expect(err.Error()).To(ContainSubstring("step 2"))
			Expect(results).To(HaveLen(1))
		})

		It("honours cancellation", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := runner.RunScenario(ctx, &batch.Scenario{Steps: []batch.Step{{Script: "cylinder"}}})
			Expect(err).To(MatchError(context.Canceled))
		})
	})

	Describe("RunSweep", func() {
		It("evaluates each value", func() {
			res, err := batch.RunSweep(context.Background(), anim.NewRegistry(), &batch.ParameterSweep{
				Script: "cylinder", Param: "re", Min: 1.5, Max: 3, NumSteps: 4, Base: base,
			}, io.Discard)
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(HaveLen(4))
			Expect(res[0].Value).To(BeNumerically("~", 1.5, 1e-12))
			Expect(res[3].Value).To(BeNumerically("~", 3, 1e-12))
			Expect(res[0].Final).To(HaveKey("thin_wall_error"))
		})

		It("rejects unknown params", func() {
			_, err := batch.RunSweep(context.Background(), anim.NewRegistry(), &batch.ParameterSweep{
				Script: "cylinder", Param: "bogus", Min: 0, Max: 1, NumSteps: 2,
			}, io.Discard)
			Expect(err).To(MatchError(config.ErrInvalid))
		})
	})
})
