// Package petrinet implements a hierarchical Petri-net execution engine: places
// and weighted arcs driven by atomic and compound transitions, under a
// pluggable selection environment (see the sibling package env).
//
// A compound transition is itself a nested net — it consumes tokens on entry,
// runs its own marking to quiescence across many driver steps, and produces
// tokens on exit. The top-level PetriNet is a compound transition with no
// enclosing net.
package petrinet
