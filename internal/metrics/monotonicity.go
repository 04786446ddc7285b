package metrics

import "scflab/internal/scf"

// Monotonicity is the fraction of iterations that reduced the residual norm.
// Damped iteration on a contraction scores 1.0; an oscillating or diverging
// solve scores lower.
type Monotonicity struct {
	prev      float64
	decreases int
	samples   int
}

func NewMonotonicity() *Monotonicity { return &Monotonicity{} }

func (m *Monotonicity) Name() string { return "monotonicity" }

func (m *Monotonicity) Observe(it scf.Iteration) {
	if m.samples > 0 && it.ResidualNorm < m.prev {
		m.decreases++
	}
	m.samples++
	m.prev = it.ResidualNorm
}

func (m *Monotonicity) Value() float64 {
	if m.samples <= 1 {
		return 1.0
	}
	return float64(m.decreases) / float64(m.samples-1)
}

func (m *Monotonicity) Reset() {
	m.prev = 0
	m.decreases = 0
	m.samples = 0
}
