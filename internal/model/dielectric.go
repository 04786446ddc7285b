package model

import (
	"math"

	"scflab/internal/scf"
)

// Dielectric builds a diagonal response model from a model dielectric
// profile eps(g) on a uniform mode grid: the step-map eigenvalue of mode g
// is 1 - eps(g), so simple mixing contracts the error of that mode by
// |1 - alpha*eps(g)| per iteration. The stable damping range is therefore
// alpha < 2/max(eps), which is what makes unpreconditioned metals hard.
type Dielectric struct {
	*Linear
	eps []float64
}

func newDielectric(dim int, gmin float64, eps func(g float64) float64) *Dielectric {
	modes := make([]float64, dim)
	eigs := make([]float64, dim)
	epsv := make([]float64, dim)
	fixed := make(scf.Density, dim)
	for i := 0; i < dim; i++ {
		g := gmin * float64(i+1)
		modes[i] = g
		epsv[i] = eps(g)
		eigs[i] = 1 - epsv[i]
		fixed[i] = 1.0 / (1.0 + g*g)
	}
	return &Dielectric{Linear: NewLinear(fixed, eigs, modes), eps: epsv}
}

// NewInsulator models a bounded dielectric response eps(g) = eps0. A single
// repeated eigenvalue: damped iteration converges for alpha < 2/eps0 and
// Anderson terminates almost immediately.
func NewInsulator(dim int, eps0, gmin float64) *Dielectric {
	return newDielectric(dim, gmin, func(g float64) float64 { return eps0 })
}

// NewMetal models Thomas-Fermi screening, eps(g) = 1 + (qTF/g)^2, which
// diverges at long wavelengths. Plain mixing needs alpha below 2/eps(gmin);
// Kerker mixing with q0 = qTF flattens the spectrum exactly.
func NewMetal(dim int, qTF, gmin float64) *Dielectric {
	return newDielectric(dim, gmin, func(g float64) float64 {
		return 1 + (qTF/g)*(qTF/g)
	})
}

// Eps returns the dielectric profile over the mode grid.
func (d *Dielectric) Eps() []float64 { return d.eps }

// MaxEps is the largest dielectric value, which bounds the stable damping
// range of simple mixing by 2/MaxEps.
func (d *Dielectric) MaxEps() float64 {
	m := 0.0
	for _, e := range d.eps {
		m = math.Max(m, e)
	}
	return m
}

// The workshop systems. Grid sizes and response parameters are chosen for
// character, not accuracy: helium converges even undamped, silicon needs
// moderate damping, the metals need Kerker mixing or tiny steps.

func Helium() *Dielectric    { return NewInsulator(16, 1.2, 0.5) }
func Silicon() *Dielectric   { return NewInsulator(64, 2.4, 0.2) }
func Aluminium() *Dielectric { return NewMetal(64, 1.0, 0.2) }
func Iron() *Dielectric      { return NewMetal(64, 2.0, 0.2) }
