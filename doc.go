// Package edm reconstructs state-space dynamics from scalar or
// multivariate time-series observations and uses nearest-neighbor
// structure in the reconstructed manifold to forecast future states,
// quantify dimensionality, measure nonlinearity, and infer directional
// causality between variables.
//
// The package is a pure function library: every exported operation takes
// its inputs, does its work on the caller's goroutine (or a worker pool
// it manages and joins before returning), and hands back a result. There
// is no persisted state between calls and nothing here is safe to mutate
// concurrently with its own reads — inputs are treated as read-only.
package edm
