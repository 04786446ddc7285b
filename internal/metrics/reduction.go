package metrics

import (
	"math"

	"scflab/internal/scf"
)

// Reduction is the number of decimal orders of magnitude the residual norm
// dropped between the first and the last iteration. Negative means the solve
// made things worse.
type Reduction struct {
	first float64
	last  float64
	seen  bool
}

func NewReduction() *Reduction { return &Reduction{} }

func (r *Reduction) Name() string { return "reduction" }

func (r *Reduction) Observe(it scf.Iteration) {
	if !r.seen {
		r.first = it.ResidualNorm
		r.seen = true
	}
	r.last = it.ResidualNorm
}

func (r *Reduction) Value() float64 {
	if !r.seen || r.first <= 0 {
		return 0
	}
	if r.last <= 0 {
		// Exact zero residual; report the floor of the log scale.
		return math.Log10(r.first) + 16
	}
	return math.Log10(r.first / r.last)
}

func (r *Reduction) Reset() {
	r.first = 0
	r.last = 0
	r.seen = false
}
