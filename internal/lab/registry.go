package lab

import (
	"fmt"

	"scflab/internal/mixing"
	"scflab/internal/model"
	"scflab/internal/scf"
)

// Registry maps names to model, solver and mixer constructors so the CLI and
// config layer can assemble experiments from strings.
type Registry struct {
	models  map[string]func(dim int) model.System
	solvers map[string]func() scf.Solver
	mixers  map[string]func(sys model.System, params map[string]float64) scf.Mixer
}

func NewRegistry() *Registry {
	r := &Registry{
		models:  make(map[string]func(dim int) model.System),
		solvers: make(map[string]func() scf.Solver),
		mixers:  make(map[string]func(model.System, map[string]float64) scf.Mixer),
	}

	r.models["helium"] = func(int) model.System { return model.Helium() }
	r.models["silicon"] = func(int) model.System { return model.Silicon() }
	r.models["aluminium"] = func(int) model.System { return model.Aluminium() }
	r.models["iron"] = func(int) model.System { return model.Iron() }
	r.models["contraction"] = func(dim int) model.System {
		if dim <= 0 {
			dim = 16
		}
		return model.NewContraction(dim)
	}

	r.solvers["damped"] = func() scf.Solver { return scf.NewFixedPoint() }
	r.solvers["anderson"] = func() scf.Solver { return scf.NewAnderson() }

	r.mixers["simple"] = func(model.System, map[string]float64) scf.Mixer {
		return mixing.NewSimple()
	}
	r.mixers["kerker"] = func(sys model.System, params map[string]float64) scf.Mixer {
		q0 := params["q0"]
		if q0 == 0 {
			q0 = 1.0
		}
		return mixing.NewKerker(sys.Modes(), q0)
	}

	return r
}

func (r *Registry) GetModel(name string, dim int) (model.System, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(dim), nil
}

func (r *Registry) GetSolver(name string) (scf.Solver, error) {
	fn, ok := r.solvers[name]
	if !ok {
		return nil, fmt.Errorf("unknown solver: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetMixer(name string, sys model.System, params map[string]float64) (scf.Mixer, error) {
	fn, ok := r.mixers[name]
	if !ok {
		return nil, fmt.Errorf("unknown mixer: %s", name)
	}
	return fn(sys, params), nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	return names
}

func (r *Registry) ListSolvers() []string {
	names := make([]string, 0, len(r.solvers))
	for name := range r.solvers {
		names = append(names, name)
	}
	return names
}
