package lab

import (
	"context"
	"fmt"
	"time"

	"scflab/internal/metrics"
	"scflab/internal/model"
	"scflab/internal/scf"
)

// Config names the pieces of one convergence experiment.
type Config struct {
	Model   string
	Solver  string
	Mixer   string
	Dim     int
	Alpha   float64
	Tol     float64
	MaxIter int
	Window  int
	Q0      float64
}

// Experiment wires a model system, a solver and a mixer together with a set
// of diagnostics.
type Experiment struct {
	cfg     Config
	sys     model.System
	solver  scf.Solver
	mixer   scf.Mixer
	metrics []metrics.Metric
}

// RunResult is a solve outcome together with its diagnostics.
type RunResult struct {
	*scf.Result
	Metrics map[string]float64
	Elapsed time.Duration
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(sys model.System, solver scf.Solver, mixer scf.Mixer, ms []metrics.Metric) error {
	if sys == nil || solver == nil {
		return fmt.Errorf("lab: experiment needs a model and a solver")
	}
	e.sys = sys
	e.solver = solver
	e.mixer = mixer
	e.metrics = ms
	return nil
}

// Assemble resolves the named pieces through the registry and attaches the
// default diagnostics.
func (e *Experiment) Assemble(r *Registry) error {
	sys, err := r.GetModel(e.cfg.Model, e.cfg.Dim)
	if err != nil {
		return err
	}
	solver, err := r.GetSolver(e.cfg.Solver)
	if err != nil {
		return err
	}
	mixer, err := r.GetMixer(e.cfg.Mixer, sys, map[string]float64{"q0": e.cfg.Q0})
	if err != nil {
		return err
	}
	return e.Setup(sys, solver, mixer, DefaultMetrics())
}

// divergenceThreshold marks a density component as blown up for the
// stability diagnostic.
const divergenceThreshold = 1e6

func DefaultMetrics() []metrics.Metric {
	return []metrics.Metric{
		metrics.NewRate(),
		metrics.NewMonotonicity(),
		metrics.NewStability(divergenceThreshold),
		metrics.NewReduction(),
	}
}

// Run solves from the zero initial guess, streaming iterations into the
// attached metrics and, optionally, the caller's observer.
func (e *Experiment) Run(ctx context.Context) (*RunResult, error) {
	return e.RunWithObserver(ctx, nil)
}

func (e *Experiment) RunWithObserver(ctx context.Context, observer func(scf.Iteration)) (*RunResult, error) {
	if e.sys == nil {
		return nil, fmt.Errorf("lab: experiment not set up")
	}

	for _, m := range e.metrics {
		m.Reset()
	}

	opts := scf.Options{
		MaxIter: e.cfg.MaxIter,
		Tol:     e.cfg.Tol,
		Alpha:   e.cfg.Alpha,
		Window:  e.cfg.Window,
		Mixer:   e.mixer,
		Observer: func(it scf.Iteration) {
			for _, m := range e.metrics {
				m.Observe(it)
			}
			if observer != nil {
				observer(it)
			}
		},
	}

	guess := make(scf.Density, e.sys.Dim())

	start := time.Now()
	res, err := e.solver.Solve(ctx, e.sys, guess, opts)
	if err != nil {
		return nil, err
	}

	out := &RunResult{
		Result:  res,
		Metrics: make(map[string]float64, len(e.metrics)),
		Elapsed: time.Since(start),
	}
	for _, m := range e.metrics {
		out.Metrics[m.Name()] = m.Value()
	}
	return out, nil
}

// System exposes the assembled model, mainly so callers can reach its mode
// grid and reference density.
func (e *Experiment) System() model.System { return e.sys }
