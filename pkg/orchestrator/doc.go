// Package orchestrator serves schema requests by name: it builds a fresh tree
// from the definition store, applies transformers, runs callbacks and returns
// props, validation rules or validation results.
package orchestrator
