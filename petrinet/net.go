package petrinet

// Environment supplies the selection policy over an enabled set (component
// C7). wait is called once per driver step with the flattened enabled
// transitions and the current marked-places snapshot (advisory — the default
// policies ignore it) and must return a valid index into enabled. enabled is
// always non-empty when Live calls Wait.
type Environment interface {
	Wait(enabled []Transition, marked Marking) int
}

// PetriNet is the top-level net driver (component C6): a CompoundTransition
// with no enclosing net, whose Live loop activates, repeatedly asks an
// Environment to choose among the flattened enabled set, and fires the
// chosen index until the root net quiesces.
type PetriNet struct {
	*CompoundTransition
}

// NewPetriNet builds a top-level net from content.
func NewPetriNet(name string, content *Content) *PetriNet {
	return &PetriNet{CompoundTransition: FromContent(name, name, content)}
}

// Live runs the net to completion: activate, then repeatedly query env and
// fire the selected index, until no transition is enabled anywhere in the
// active subtree. It returns once the root net is quiescent; if any
// background job's worker never terminates, the environment's Wait may block
// forever and Live will not return.
func (pn *PetriNet) Live(env Environment) {
	pn.Activate()
	for pn.IsActive() {
		k := env.Wait(pn.Enabled(), pn.Marked())
		pn.Fire(k)
	}
}
