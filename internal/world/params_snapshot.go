package world

import (
	"strconv"

	"github.com/ricardoprins/TerrainErosion/internal/core"
	"github.com/ricardoprins/TerrainErosion/internal/erosion"
)

var (
	_ core.ParameterControlsProvider = (*World)(nil)
	_ core.IntParameterSetter        = (*World)(nil)
	_ core.FloatParameterSetter      = (*World)(nil)
)

func (w *World) Parameters() core.ParameterSnapshot {
	p := w.sim.Params()
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				stringParam("generator", "Generator", w.gen.Name()),
				intParam("size", "Size", w.grid.Size()),
				intParam("world_x", "World X", w.worldX),
				intParam("world_y", "World Y", w.worldY),
				int64Param("seed", "Seed", w.cfg.Seed),
				intParam("iterations", "Iterations", w.cfg.Iterations),
			},
		},
		{
			Name: "Erosion",
			Params: []core.Parameter{
				intParam("radius", "Radius", w.sim.Radius()),
				int64Param("erosion_seed", "Erosion seed", w.cfg.Erosion.Seed),
				floatParam("erode_speed", "Erode speed", p.ErodeSpeed),
				floatParam("deposit_speed", "Deposit speed", p.DepositSpeed),
				floatParam("evaporate_speed", "Evaporate speed", p.EvaporateSpeed),
				floatParam("gravity", "Gravity", p.Gravity),
				floatParam("inertia", "Inertia", p.Inertia),
				floatParam("sediment_capacity_factor", "Capacity factor", p.SedimentCapacityFactor),
				floatParam("min_sediment_capacity", "Min capacity", p.MinSedimentCapacity),
				floatParam("initial_speed", "Initial speed", p.InitialSpeed),
				floatParam("initial_water", "Initial water", p.InitialWater),
				intParam("max_droplet_lifetime", "Droplet lifetime", p.MaxDropletLifetime),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the tunables with their slider steps and bounds.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		intControl("radius", "Radius", 1, erosion.MinRadius, erosion.MaxRadius),
		intControl("iterations", "Iterations", IterationsStep, MinIterations, MaxIterations),
		intControl("max_droplet_lifetime", "Lifetime", 5, 1, 200),
		floatControl("inertia", "Inertia", 0.05, 0, 1),
		floatControl("erode_speed", "Erode speed", 0.05, 0, 1),
		floatControl("deposit_speed", "Deposit speed", 0.05, 0, 1),
		floatControl("evaporate_speed", "Evaporation", 0.005, 0, 0.2),
		floatControl("gravity", "Gravity", 0.5, 0, 20),
		floatControl("sediment_capacity_factor", "Capacity", 0.5, 0, 16),
	}
}

// SetIntParameter applies an integer adjustment and reports whether it was accepted.
func (w *World) SetIntParameter(key string, value int) bool {
	switch key {
	case "radius":
		if value < erosion.MinRadius || value > erosion.MaxRadius {
			return false
		}
		return w.sim.SetErosionRadius(value) == nil
	case "iterations":
		if value < MinIterations || value > MaxIterations {
			return false
		}
		w.cfg.Iterations = value
		return true
	case "max_droplet_lifetime":
		p := w.sim.Params()
		p.MaxDropletLifetime = value
		return w.sim.SetParams(p) == nil
	}
	return false
}

// SetFloatParameter applies a floating point adjustment and reports whether it
// was accepted.
func (w *World) SetFloatParameter(key string, value float64) bool {
	p := w.sim.Params()
	v := float32(value)
	switch key {
	case "inertia":
		p.Inertia = v
	case "erode_speed":
		p.ErodeSpeed = v
	case "deposit_speed":
		p.DepositSpeed = v
	case "evaporate_speed":
		p.EvaporateSpeed = v
	case "gravity":
		p.Gravity = v
	case "sediment_capacity_factor":
		p.SedimentCapacityFactor = v
	case "min_sediment_capacity":
		p.MinSedimentCapacity = v
	case "initial_speed":
		p.InitialSpeed = v
	case "initial_water":
		p.InitialWater = v
	default:
		return false
	}
	return w.sim.SetParams(p) == nil
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float32) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(float64(value), 'f', -1, 32),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}

func intControl(key, label string, step, lo, hi int) core.ParameterControl {
	return core.ParameterControl{
		Key:    key,
		Label:  label,
		Type:   core.ParamTypeInt,
		Step:   float64(step),
		Min:    float64(lo),
		Max:    float64(hi),
		HasMin: true,
		HasMax: true,
	}
}

func floatControl(key, label string, step, lo, hi float64) core.ParameterControl {
	return core.ParameterControl{
		Key:    key,
		Label:  label,
		Type:   core.ParamTypeFloat,
		Step:   step,
		Min:    lo,
		Max:    hi,
		HasMin: true,
		HasMax: true,
	}
}
