package model

import (
	"gonum.org/v1/gonum/mat"

	"scflab/internal/scf"
)

// System is a model SCF problem: a step map together with the mode grid a
// preconditioner can act on and the known self-consistent density.
type System interface {
	scf.Map
	Dim() int
	Modes() []float64
	Reference() scf.Density
}

// Linear is the diagonal response model
//
//	F(rho) = rho* + C (rho - rho*)
//
// with C given by an eigenvalue per mode. |eig| < 1 everywhere makes F a
// contraction; eigenvalues at or beyond 1 in magnitude reproduce stiff and
// divergent SCF behavior.
type Linear struct {
	fixed scf.Density
	eig   []float64
	modes []float64
}

// NewLinear builds a diagonal response model. fixed, eig and modes must have
// equal length.
func NewLinear(fixed scf.Density, eig, modes []float64) *Linear {
	return &Linear{fixed: fixed, eig: eig, modes: modes}
}

// NewContraction is a uniform contraction with rate 0.5 on a unit mode grid,
// the simplest well-behaved demo problem.
func NewContraction(dim int) *Linear {
	fixed := make(scf.Density, dim)
	eig := make([]float64, dim)
	modes := make([]float64, dim)
	for i := 0; i < dim; i++ {
		modes[i] = float64(i + 1)
		fixed[i] = 1.0 / float64(i+1)
		eig[i] = 0.5
	}
	return NewLinear(fixed, eig, modes)
}

func (l *Linear) Apply(rho scf.Density) scf.Density {
	out := make(scf.Density, len(rho))
	for i := range rho {
		out[i] = l.fixed[i] + l.eig[i]*(rho[i]-l.fixed[i])
	}
	return out
}

func (l *Linear) Dim() int               { return len(l.fixed) }
func (l *Linear) Modes() []float64       { return l.modes }
func (l *Linear) Reference() scf.Density { return l.fixed.Clone() }
func (l *Linear) Eigenvalues() []float64 { return l.eig }

// DenseLinear is the non-diagonal variant F(rho) = rho* + C (rho - rho*)
// with a full coupling matrix, for problems whose modes are not independent.
type DenseLinear struct {
	fixed scf.Density
	c     *mat.Dense
	modes []float64
}

func NewDenseLinear(fixed scf.Density, c *mat.Dense, modes []float64) *DenseLinear {
	return &DenseLinear{fixed: fixed, c: c, modes: modes}
}

func (d *DenseLinear) Apply(rho scf.Density) scf.Density {
	n := len(rho)
	diff := mat.NewVecDense(n, nil)
	for i := range rho {
		diff.SetVec(i, rho[i]-d.fixed[i])
	}
	var out mat.VecDense
	out.MulVec(d.c, diff)

	result := make(scf.Density, n)
	for i := range result {
		result[i] = d.fixed[i] + out.AtVec(i)
	}
	return result
}

func (d *DenseLinear) Dim() int               { return len(d.fixed) }
func (d *DenseLinear) Modes() []float64       { return d.modes }
func (d *DenseLinear) Reference() scf.Density { return d.fixed.Clone() }
