package mixing

import "scflab/internal/scf"

// Simple is plain linear mixing: the residual passes through untouched and
// the damping factor alone controls the step size. It is the explicit
// "no preconditioning" strategy.
type Simple struct{}

func NewSimple() *Simple { return &Simple{} }

func (*Simple) Mix(r scf.Density) scf.Density {
	return r.Clone()
}
