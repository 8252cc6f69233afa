package anim

import (
	"fmt"
	"sort"

	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/mechanics"
)

type script struct {
	description string
	model       func() mechanics.Configurable
	build       func(*config.Config) (Animation, error)
}

type Registry struct {
	scripts map[string]script
}

func NewRegistry() *Registry {
	r := &Registry{scripts: make(map[string]script)}

	r.scripts["mohr-stress"] = script{
		description: "Mohr's circle for plane stress, axes rotated to the principal directions",
		model:       func() mechanics.Configurable { return mechanics.NewMohr(mechanics.Stress) },
		build:       func(c *config.Config) (Animation, error) { return NewMohrCircle(mechanics.Stress, c) },
	}
	r.scripts["mohr-strain"] = script{
		description: "Mohr's circle for plane strain with the (ε, -γ/2) convention",
		model:       func() mechanics.Configurable { return mechanics.NewMohr(mechanics.Strain) },
		build:       func(c *config.Config) (Animation, error) { return NewMohrCircle(mechanics.Strain, c) },
	}
	r.scripts["principal"] = script{
		description: "normal vector swept onto a principal direction with its traction",
		model:       func() mechanics.Configurable { return mechanics.NewPrincipalStress() },
		build:       func(c *config.Config) (Animation, error) { return NewPrincipal(c) },
	}
	r.scripts["shear-strain"] = script{
		description: "rotated grid under uniaxial strain showing the shear between grid lines",
		model:       func() mechanics.Configurable { return mechanics.NewShearStrain() },
		build:       func(c *config.Config) (Animation, error) { return NewShearStrain(c) },
	}
	r.scripts["cylinder"] = script{
		description: "thick-walled cylinder under internal pressure against the thin-wall solution",
		model:       func() mechanics.Configurable { return mechanics.NewCylinder() },
		build:       func(c *config.Config) (Animation, error) { return NewCylinder(c) },
	}
	r.scripts["torsion"] = script{
		description: "Saint-Venant torsion of an equilateral triangle: mesh, stress function and shear stresses",
		model:       func() mechanics.Configurable { return mechanics.NewTorsion() },
		build:       func(c *config.Config) (Animation, error) { return NewTorsion(c) },
	}
	r.scripts["deformation"] = script{
		description: "finite isochoric deformation of a cube",
		model:       func() mechanics.Configurable { return mechanics.NewDeformation() },
		build:       func(c *config.Config) (Animation, error) { return NewDeformation(c) },
	}

	return r
}

// Get builds the named script from cfg. A nil cfg uses the defaults.
func (r *Registry) Get(name string, cfg *config.Config) (Animation, error) {
	s, ok := r.scripts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScript, name)
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a, err := s.build(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return a, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.scripts))
	for name := range r.scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Describe(name string) string {
	return r.scripts[name].description
}

// Defaults returns the model parameters of a script before overrides.
func (r *Registry) Defaults(name string) (map[string]float64, error) {
	s, ok := r.scripts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScript, name)
	}
	return s.model().GetParams(), nil
}
