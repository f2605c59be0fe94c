// Package orchestrator wires the source → definition → screen → renderer
// pipeline behind a single Generate call, with every stage injectable.
package orchestrator
