// Package model provides model SCF problems with known fixed points.
//
// Each system stands in for the expensive electronic-structure step of a
// real DFT code: a diagonal (or dense) linear response map acting in a mode
// basis, whose spectrum reproduces the convergence character of the physical
// system it is named after. Insulators have a bounded dielectric response;
// metals diverge like 1/g^2 at long wavelengths and need Kerker mixing or
// heavy damping.
package model
