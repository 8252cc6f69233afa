package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth   = 960
	DefaultHeight  = 640
	DefaultFPS     = 20
	DefaultFrames  = 200
	DefaultFormat  = "gif"
	DefaultTheme   = "cyberpunk"
	DefaultWorkers = 0 // one per CPU
)

// ErrInvalid is returned by Validate for values no script can render.
var ErrInvalid = errors.New("config: invalid value")

// Config holds the output settings of one invocation plus the model
// parameters of the selected script, keyed as the models name them.
type Config struct {
	Script  string             `yaml:"script"`
	Width   int                `yaml:"width"`
	Height  int                `yaml:"height"`
	FPS     int                `yaml:"fps"`
	Frames  int                `yaml:"frames"`
	Workers int                `yaml:"workers"`
	Format  string             `yaml:"format"`
	Theme   string             `yaml:"theme"`
	Params  map[string]float64 `yaml:"params"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		FPS:     DefaultFPS,
		Frames:  DefaultFrames,
		Workers: DefaultWorkers,
		Format:  DefaultFormat,
		Theme:   DefaultTheme,
		Params:  map[string]float64{},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Params == nil {
		cfg.Params = map[string]float64{}
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Params = make(map[string]float64, len(c.Params))
	for k, v := range c.Params {
		out.Params[k] = v
	}
	return &out
}

// SetParam records a model parameter override.
func (c *Config) SetParam(name string, value float64) {
	if c.Params == nil {
		c.Params = map[string]float64{}
	}
	c.Params[name] = value
}

// Param returns the named parameter or def when it is not set.
func (c *Config) Param(name string, def float64) float64 {
	if v, ok := c.Params[name]; ok {
		return v
	}
	return def
}

// ParamNames returns the overridden parameter names in sorted order.
func (c *Config) ParamNames() []string {
	names := make([]string, 0, len(c.Params))
	for k := range c.Params {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Overlay copies the parameters of o over c.
func (c *Config) Overlay(o *Config) {
	if o == nil {
		return
	}
	for k, v := range o.Params {
		c.SetParam(k, v)
	}
}

var formats = map[string]bool{"gif": true, "avi": true, "png": true, "svg": true}

// Validate rejects settings and parameters outside their domain.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.FPS)
	case c.Frames < 1:
		return fmt.Errorf("%w: frames %d", ErrInvalid, c.Frames)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers)
	case c.Format != "" && !formats[c.Format]:
		return fmt.Errorf("%w: format %q", ErrInvalid, c.Format)
	}

	for _, name := range c.ParamNames() {
		if err := checkParam(name, c.Params[name]); err != nil {
			return err
		}
	}
	return nil
}

func checkParam(name string, v float64) error {
	bad := false
	switch name {
	case "re", "h":
		bad = v <= 0
	case "direction":
		bad = v != 1 && v != 2 && v != 3
	case "nx", "ny", "n_edge":
		bad = v < 2
	case "n", "subdiv", "quiver":
		bad = v < 0
	case "poisson":
		bad = v <= -1 || v > 0.5
	case "delta_start", "delta_stop":
		bad = v <= 0 || v >= 1
	}
	if bad {
		return fmt.Errorf("%w: %s = %g", ErrInvalid, name, v)
	}
	return nil
}
