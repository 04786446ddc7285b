package scf

import "errors"

// Domain errors reported before or during a solve. Non-convergence is not
// among them: running out of iterations is an ordinary outcome reported
// through [Result].
var (
	// ErrEmptyGuess indicates a zero-length initial guess.
	ErrEmptyGuess = errors.New("scf: empty initial guess")

	// ErrNegativeMaxIter indicates a negative iteration bound.
	ErrNegativeMaxIter = errors.New("scf: negative max iterations")

	// ErrNegativeTolerance indicates a negative convergence tolerance.
	ErrNegativeTolerance = errors.New("scf: negative tolerance")

	// ErrDimensionMismatch indicates the step map returned a density whose
	// shape differs from the iterate it was given.
	ErrDimensionMismatch = errors.New("scf: step output dimension differs from state")
)
