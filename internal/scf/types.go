package scf

import (
	"context"
	"math"
)

// Density is the state vector iterated toward self-consistency. The solvers
// treat it as an element of a real vector space with a Euclidean norm and
// assume nothing else about its contents. Its length is fixed for the
// lifetime of a solve.
type Density []float64

func (d Density) Clone() Density {
	c := make(Density, len(d))
	copy(c, d)
	return c
}

func (d Density) IsValid() bool {
	for _, v := range d {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Norm is the Euclidean norm over the flattened state.
func (d Density) Norm() float64 {
	sum := 0.0
	for _, v := range d {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (d Density) Add(other Density) Density {
	result := make(Density, len(d))
	for i := range d {
		result[i] = d[i] + other[i]
	}
	return result
}

func (d Density) Sub(other Density) Density {
	result := make(Density, len(d))
	for i := range d {
		result[i] = d[i] - other[i]
	}
	return result
}

func (d Density) Scale(factor float64) Density {
	result := make(Density, len(d))
	for i := range d {
		result[i] = d[i] * factor
	}
	return result
}

// Map is the externally supplied SCF step: a black-box function from a
// density to an updated density of the same shape. It may be arbitrarily
// expensive; the solvers call it exactly once per iteration.
type Map interface {
	Apply(rho Density) Density
}

// MapFunc adapts a plain function to the Map interface.
type MapFunc func(Density) Density

func (f MapFunc) Apply(rho Density) Density { return f(rho) }

// Mixer preconditions the residual before it is folded into the update.
// Convergence is always judged on the raw residual norm, so a Mixer changes
// the path to the fixed point, never the stopping criterion.
type Mixer interface {
	Mix(r Density) Density
}

// Status describes where a solve terminated.
type Status int

const (
	// Running is the in-flight state; a returned Result never carries it.
	Running Status = iota
	// Converged means the residual norm dropped below the tolerance.
	Converged
	// Exhausted means the iteration bound was reached first.
	Exhausted
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Converged:
		return "converged"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Iteration is the per-iteration record delivered to an Observer. Rho is a
// copy; observers may retain it.
type Iteration struct {
	N            int
	Rho          Density
	ResidualNorm float64
}

// Options control a solve. The zero value of Alpha is replaced by 1
// (undamped); MaxIter and Tol are taken literally, so the zero value of
// Options performs no iterations.
type Options struct {
	// MaxIter bounds the number of step evaluations. MaxIter = 0 returns
	// immediately without calling the map at all.
	MaxIter int

	// Tol is the residual norm below which (strictly) the solve converges.
	Tol float64

	// Alpha is the damping factor applied to the whole proposed step.
	// (0, 2] is the stable range for contractive maps; values outside it
	// are accepted and may diverge.
	Alpha float64

	// Window caps the Anderson history length. 0 keeps the full history,
	// which is the reference behavior; small windows trade convergence
	// speed for numerical conditioning.
	Window int

	// Mixer preconditions residuals before each update. Nil means identity.
	Mixer Mixer

	// Observer, if set, receives a record after every completed iteration.
	Observer func(Iteration)
}

func DefaultOptions() Options {
	return Options{
		MaxIter: 100,
		Tol:     1e-6,
		Alpha:   0.8,
	}
}

// Result reports the outcome of a solve. Non-convergence is not an error:
// the caller inspects Converged and decides how to react.
type Result struct {
	Fixpoint     Density
	Converged    bool
	Status       Status
	Iterations   int
	ResidualNorm float64
	Residuals    []float64
}

// Solver iterates a Map toward a fixed point from an initial guess.
type Solver interface {
	Name() string
	Solve(ctx context.Context, f Map, rho0 Density, opts Options) (*Result, error)
}

// validate rejects malformed inputs before any iteration is attempted.
func validate(rho0 Density, opts Options) error {
	if len(rho0) == 0 {
		return ErrEmptyGuess
	}
	if opts.MaxIter < 0 {
		return ErrNegativeMaxIter
	}
	if opts.Tol < 0 {
		return ErrNegativeTolerance
	}
	return nil
}

func observe(opts Options, n int, rho Density, rnorm float64) {
	if opts.Observer != nil {
		opts.Observer(Iteration{N: n, Rho: rho.Clone(), ResidualNorm: rnorm})
	}
}
