// Package metrics provides per-iteration convergence diagnostics that can be
// attached to a solve through its observer hook.
package metrics
