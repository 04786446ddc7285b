package metrics

import (
	"math"

	"scflab/internal/scf"
)

// Metric accumulates a scalar diagnostic over the iterations of one solve.
type Metric interface {
	Name() string
	Observe(it scf.Iteration)
	Value() float64
	Reset()
}

// Rate estimates the asymptotic convergence rate as the geometric mean of
// successive residual ratios. Values below 1 mean contraction; 1.0 is
// returned before two residuals have been seen.
type Rate struct {
	prev   float64
	logSum float64
	ratios int
}

func NewRate() *Rate { return &Rate{} }

func (r *Rate) Name() string { return "rate" }

func (r *Rate) Observe(it scf.Iteration) {
	if r.prev > 0 && it.ResidualNorm > 0 {
		r.logSum += math.Log(it.ResidualNorm / r.prev)
		r.ratios++
	}
	r.prev = it.ResidualNorm
}

func (r *Rate) Value() float64 {
	if r.ratios == 0 {
		return 1.0
	}
	return math.Exp(r.logSum / float64(r.ratios))
}

func (r *Rate) Reset() {
	r.prev = 0
	r.logSum = 0
	r.ratios = 0
}
