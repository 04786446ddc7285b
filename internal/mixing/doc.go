// Package mixing provides residual preconditioners for SCF solves.
//
// A mixer reshapes the residual before it is folded into the density update,
// matching problem-specific structure to speed convergence. The convergence
// test itself always uses the raw residual, so mixers change the path to the
// fixed point, not the destination.
package mixing
