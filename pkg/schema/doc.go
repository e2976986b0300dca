// Package schema builds declarative layout trees (sections, grids, splits,
// fieldsets, columns, tabs, repeaters, fields and actions) and serializes
// them into plain nested maps for a front-end renderer.
//
// A request typically builds a fresh tree, fills it with the current data,
// and calls ToProps. ToProps runs in three strictly ordered steps: the
// after-change callback of the changed field (or repeater item field) runs
// against scoped Get/Set accessors, the shared EvaluationContext is pushed
// into every node, and the visible nodes are serialized in order. Validation
// rules, custom messages, attribute labels and literal value prefixes are
// extracted from the same tree with CollectValidation.
//
// Capabilities are explicit interfaces (Container, TabContainer, Fillable,
// Validatable, Reactive, ContextAware, Hideable) and every traversal goes
// through Walk or Fold.
package schema
