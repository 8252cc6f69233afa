package config

import (
	"math"
	"sort"
)

var Presets = map[string]map[string]*Config{
	"mohr-stress": {
		"classroom":  {Params: map[string]float64{"xx": 100, "yy": 50, "xy": 50}},
		"pure-shear": {Params: map[string]float64{"xx": 0, "yy": 0, "xy": 50}},
		"biaxial":    {Params: map[string]float64{"xx": 80, "yy": -40, "xy": 30}},
	},
	"mohr-strain": {
		"ccw": {Params: map[string]float64{"xx": 100, "yy": 50, "xy": 50, "ccw": 1}},
		"cw":  {Params: map[string]float64{"xx": 100, "yy": 50, "xy": 50, "ccw": 0}},
	},
	"principal": {
		"n1": {Params: map[string]float64{"direction": 1}},
		"n2": {Params: map[string]float64{"direction": 2}},
		"n3": {Params: map[string]float64{"direction": 3}},
	},
	"shear-strain": {
		"diagonal":       {Params: map[string]float64{"angle": math.Pi / 4}},
		"aligned":        {Params: map[string]float64{"angle": 0}},
		"incompressible": {Params: map[string]float64{"angle": math.Pi / 4, "poisson": 0.5}},
	},
	"cylinder": {
		"radial": {Params: map[string]float64{"radial": 1}},
		"hoop":   {Params: map[string]float64{"radial": 0}},
	},
	"torsion": {
		"contours": {Params: map[string]float64{"quiver": 0}},
		"vectors":  {Params: map[string]float64{"quiver": 25}},
		"coarse":   {Params: map[string]float64{"n": 300, "n_edge": 15, "subdiv": 1}},
	},
	"deformation": {
		"full": {Params: map[string]float64{"a": 0.5}},
		"mild": {Params: map[string]float64{"a": 0.2}},
	},
}

func GetPreset(script, preset string) *Config {
	scriptPresets, ok := Presets[script]
	if !ok {
		return nil
	}
	cfg, ok := scriptPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(script string) []string {
	scriptPresets, ok := Presets[script]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scriptPresets))
	for name := range scriptPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
