package metrics

import (
	"math"

	"scflab/internal/scf"
)

// Stability is the fraction of iterations whose density stayed finite and
// below a magnitude threshold. A diverging damping factor drags it toward 0.
type Stability struct {
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{threshold: threshold}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(it scf.Iteration) {
	s.samples++
	for _, val := range it.Rho {
		if math.IsNaN(val) || math.Abs(val) > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
