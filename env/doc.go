// Package env supplies pluggable scheduling environments for package
// petrinet: RandomEnvironment (component C8, uniform synchronous choice) and
// ThreadEnvironment (component C9, which additionally turns a distinguished
// class of atomic completion transitions into long-running background jobs).
//
// The Environment interface itself (component C7) lives on petrinet.PetriNet
// as petrinet.Environment, since PetriNet.Live depends on it directly; both
// environments here satisfy it.
package env

import "github.com/ivanprosh/Mod-Petri/petrinet"

// Environment re-exports petrinet.Environment for callers that otherwise only
// import package env.
type Environment = petrinet.Environment
