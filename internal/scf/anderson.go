package scf

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Anderson accelerates the damped iteration by extrapolating the next
// iterate from the history of past (state, residual) pairs, in the manner of
// Pulay's DIIS: least-squares weights minimize the norm of the extrapolated
// residual, and the damping factor scales the whole proposed step uniformly.
//
// The current pair joins the history only after the update is formed, so the
// extrapolation basis never contains its own point. History grows by one
// entry per iteration unless Options.Window caps it.
type Anderson struct{}

func NewAnderson() *Anderson { return &Anderson{} }

func (s *Anderson) Name() string { return "anderson" }

func (s *Anderson) Solve(ctx context.Context, f Map, rho0 Density, opts Options) (*Result, error) {
	if err := validate(rho0, opts); err != nil {
		return nil, err
	}
	if opts.Alpha == 0 {
		opts.Alpha = 1.0
	}

	var (
		rhos   []Density
		resids []Density
	)

	rho := rho0.Clone()
	result := &Result{
		Fixpoint:  rho,
		Status:    Exhausted,
		Residuals: make([]float64, 0, opts.MaxIter),
	}

	for n := 1; n <= opts.MaxIter; n++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		frho := f.Apply(rho)
		if len(frho) != len(rho) {
			return nil, ErrDimensionMismatch
		}
		r := frho.Sub(rho)
		rnorm := r.Norm()

		result.Iterations = n
		result.ResidualNorm = rnorm
		result.Residuals = append(result.Residuals, rnorm)

		if rnorm < opts.Tol {
			result.Converged = true
			result.Status = Converged
			observe(opts, n, rho, rnorm)
			return result, nil
		}

		if opts.Mixer != nil {
			r = opts.Mixer.Mix(r)
		}

		step := r.Clone()
		if len(resids) > 0 {
			beta, err := extrapolationWeights(resids, r)
			if err != nil {
				return nil, err
			}
			for i, b := range beta {
				for j := range step {
					step[j] += b * ((rhos[i][j] - rho[j]) + (resids[i][j] - r[j]))
				}
			}
		}

		rhos = append(rhos, rho.Clone())
		resids = append(resids, r.Clone())
		if opts.Window > 0 && len(resids) > opts.Window {
			rhos = rhos[1:]
			resids = resids[1:]
		}

		rho = rho.Add(step.Scale(opts.Alpha))
		result.Fixpoint = rho
		observe(opts, n, rho, rnorm)
	}

	return result, nil
}

// extrapolationWeights solves the least-squares system M beta = -r, where
// column i of M is the difference between historical residual i and the
// current residual r.
func extrapolationWeights(resids []Density, r Density) ([]float64, error) {
	dim := len(r)
	m := len(resids)

	M := mat.NewDense(dim, m, nil)
	for j, rj := range resids {
		for i := 0; i < dim; i++ {
			M.Set(i, j, rj[i]-r[i])
		}
	}
	rhs := mat.NewVecDense(dim, nil)
	for i, v := range r {
		rhs.SetVec(i, -v)
	}

	var beta mat.VecDense
	if err := beta.SolveVec(M, rhs); err != nil {
		// Near-duplicate residuals make the system ill-conditioned; gonum
		// still returns the minimum-norm solution alongside a Condition
		// error, and the ordinary convergence check catches a bad step at
		// the next iteration. Only a hard failure aborts the solve.
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, fmt.Errorf("scf: anderson extrapolation solve: %w", err)
		}
	}

	weights := make([]float64, m)
	for i := range weights {
		weights[i] = beta.AtVec(i)
	}
	return weights, nil
}
