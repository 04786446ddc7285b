// Package scf provides fixed-point solvers for self-consistent-field
// iterations.
//
// The package defines the fundamental types for driving an externally
// supplied SCF step to a fixed point:
//
//   - [Density]: vector representing the density iterate
//   - [Map]: the opaque step function F (density -> density)
//   - [Mixer]: residual preconditioner applied before each update
//   - [Solver]: damped or Anderson-accelerated iteration
//
// # Example
//
//	sys := model.Aluminium()
//	solver := scf.NewAnderson()
//	res, _ := solver.Solve(ctx, sys, rho0, scf.DefaultOptions())
//
// # Thread Safety
//
// A single solve is synchronous and owns its state and history exclusively.
// Solver values hold no per-solve state, so independent solves may run on
// separate goroutines as long as each receives its own initial guess.
package scf
