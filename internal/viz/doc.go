// Package viz renders convergence histories in the terminal, either as a
// static asciigraph chart or as a live bubbletea view fed by a solver
// observer.
package viz
