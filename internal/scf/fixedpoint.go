package scf

import "context"

// FixedPoint is the damped fixed-point solver. Each iteration evaluates the
// step map once, checks the residual norm against the tolerance, and takes
//
//	rho <- rho + alpha * P(F(rho) - rho)
//
// where P is the optional mixer. Alpha = 1 is plain undamped iteration,
// which is not guaranteed to converge even for well-posed problems; that is
// the expected failure mode for stiff systems, not a defect.
type FixedPoint struct{}

func NewFixedPoint() *FixedPoint { return &FixedPoint{} }

func (s *FixedPoint) Name() string { return "damped" }

func (s *FixedPoint) Solve(ctx context.Context, f Map, rho0 Density, opts Options) (*Result, error) {
	if err := validate(rho0, opts); err != nil {
		return nil, err
	}
	if opts.Alpha == 0 {
		opts.Alpha = 1.0
	}

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
		rho = rho.Add(r.Scale(opts.Alpha))
		result.Fixpoint = rho
		observe(opts, n, rho, rnorm)
	}

	return result, nil
}
