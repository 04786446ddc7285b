package lab

import (
	"context"
	"math"
)

// Sweep runs the same experiment across a grid of damping factors and keeps
// the one that converged in the fewest iterations.
type Sweep struct {
	alphas []float64
}

func NewSweep(alphas []float64) *Sweep {
	return &Sweep{alphas: alphas}
}

// DefaultAlphas covers the documented stable range (0, 2] coarsely.
func DefaultAlphas() []float64 {
	alphas := make([]float64, 0, 20)
	for a := 0.1; a <= 2.0+1e-9; a += 0.1 {
		alphas = append(alphas, math.Round(a*10) / 10)
	}
	return alphas
}

// SweepPoint is the outcome at one damping factor.
type SweepPoint struct {
	Alpha      float64
	Converged  bool
	Iterations int
	Residual   float64
}

// Run evaluates every damping factor and returns the per-point outcomes plus
// the index of the best converged point (-1 if nothing converged).
func (s *Sweep) Run(ctx context.Context, build func(alpha float64) (*Experiment, error)) ([]SweepPoint, int, error) {
	points := make([]SweepPoint, 0, len(s.alphas))
	best := -1

	for _, alpha := range s.alphas {
		exp, err := build(alpha)
		if err != nil {
			return nil, -1, err
		}
		res, err := exp.Run(ctx)
		if err != nil {
			return nil, -1, err
		}

		p := SweepPoint{
			Alpha:      alpha,
			Converged:  res.Converged,
			Iterations: res.Iterations,
			Residual:   res.ResidualNorm,
		}
		points = append(points, p)

		if p.Converged && (best < 0 || p.Iterations < points[best].Iterations) {
			best = len(points) - 1
		}
	}

	return points, best, nil
}
