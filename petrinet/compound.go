package petrinet

// CompoundTransition is a transition that is itself a nested Petri net: it
// holds its own places, arcs, and sub-transitions, participates in its
// enclosing net as an ordinary transition, and exposes its enabled/marked
// sets recursively. It drives its sub-net by firing exactly one inner
// transition per top-level Fire call (component C5).
type CompoundTransition struct {
	ID   string
	Name string

	places      []*Place
	transitions []Transition
	in, out     Matrix
	initial     Marking

	// OnActivateFunc / OnPassivateFunc let a caller (notably a long
	// transition) hook entry/exit without subclassing. Both default to
	// no-ops.
	OnActivateFunc  func()
	OnPassivateFunc func()

	marking  Marking
	enabled  []Transition
	location []int
	offset   []int
	marked   Marking
}

// FromContent builds a (dormant) compound transition from an emitted
// Snapshot. The transition is not active until Activate is called, which
// happens as a side effect of the enclosing net's Fire (or, for the root net,
// of Live).
func FromContent(id, name string, content *Content) *CompoundTransition {
	snap := content.Snapshot()
	return &CompoundTransition{
		ID:          id,
		Name:        name,
		places:      snap.Places,
		transitions: snap.Transitions,
		in:          snap.In,
		out:         snap.Out,
		initial:     snap.Initial,
		offset:      make([]int, len(snap.Transitions)),
	}
}

func (ct *CompoundTransition) String() string {
	if ct.Name != "" {
		return ct.Name
	}
	return ct.ID
}

func (ct *CompoundTransition) plNum() int { return len(ct.places) }
func (ct *CompoundTransition) trNum() int { return len(ct.transitions) }

// Activate resets the marking to the initial snapshot and recomputes enabled
// state. The transition becomes Active iff anything ended up enabled; an
// empty result leaves it Dormant, which the enclosing net's Fire that
// activated it observes at once, producing its output tokens in that same
// call (spec §4.5).
func (ct *CompoundTransition) Activate() {
	ct.marking = ct.initial.Clone()
	ct.refresh()
	Logger.Debug().Str("transition", ct.String()).Bool("active", ct.IsActive()).Msg("activate")
}

// IsActive is computed, not cached: it is exactly "does this sub-net
// currently have anything enabled", recomputed by the most recent refresh.
// That keeps it correct the instant a Fire drains the sub-net, with no
// separate flag to fall out of sync.
func (ct *CompoundTransition) IsActive() bool { return len(ct.enabled) > 0 }

// Enabled returns the flattened, deterministically ordered set of
// transitions enabled anywhere in this sub-net: direct children in
// transition-index order, each active compound child's contribution spliced
// in contiguously at its offset.
func (ct *CompoundTransition) Enabled() []Transition { return ct.enabled }

// Marked returns the union of this level's positively-marked places with the
// recursive Marked() of every active compound child. On key collisions (the
// same *Place appearing both locally and in a child, which normal
// construction never produces) the local entry wins — see DESIGN.md for the
// rationale, carried over from the source's unspecified map-merge order.
func (ct *CompoundTransition) Marked() Marking { return ct.marked }

func (ct *CompoundTransition) OnActivate() {
	if ct.OnActivateFunc != nil {
		ct.OnActivateFunc()
	}
}

func (ct *CompoundTransition) OnPassivate() {
	if ct.OnPassivateFunc != nil {
		ct.OnPassivateFunc()
	}
}

// refresh recomputes enabled, location, offset, and marked from the current
// marking and each direct child's current state.
func (ct *CompoundTransition) refresh() {
	ct.enabled = ct.enabled[:0]
	ct.location = ct.location[:0]
	if cap(ct.offset) < ct.trNum() {
		ct.offset = make([]int, ct.trNum())
	}
	ct.offset = ct.offset[:ct.trNum()]

	for i, child := range ct.transitions {
		ct.offset[i] = len(ct.enabled)

		if child.IsActive() {
			inner := child.Enabled()
			ct.enabled = append(ct.enabled, inner...)
			for range inner {
				ct.location = append(ct.location, i)
			}
			continue
		}

		if ct.isSatisfied(i) {
			ct.enabled = append(ct.enabled, child)
			ct.location = append(ct.location, i)
		}
	}

	marked := make(Marking)
	for _, p := range ct.places {
		if n := ct.marking[p]; n > 0 {
			marked[p] = n
		}
	}
	for _, child := range ct.transitions {
		if !child.IsActive() {
			continue
		}
		for p, n := range child.Marked() {
			if _, exists := marked[p]; !exists {
				marked[p] = n
			}
		}
	}
	ct.marked = marked
}

// isSatisfied reports whether the marking meets transition i's input
// requirement: M[p] >= IN[i][p] for every place p.
func (ct *CompoundTransition) isSatisfied(i int) bool {
	row := ct.in[i]
	for j, p := range ct.places {
		if ct.marking[p] < row[j] {
			return false
		}
	}
	return true
}

// Fire dispatches enabled-set entry k (spec §4.5): it descends into an
// already-active compound child, or consumes input tokens and activates a
// dormant child, then — if the child ends up inactive either way — calls its
// on-passivate hook and produces output tokens, before refreshing.
func (ct *CompoundTransition) Fire(k int) {
	if k < 0 || k >= len(ct.enabled) {
		panic("petrinet: Fire index out of range")
	}

	i := ct.location[k]
	child := ct.transitions[i]

	if child.IsActive() {
		lower := k - ct.offset[i]
		child.Fire(lower)
	} else {
		for j, p := range ct.places {
			ct.marking[p] -= ct.in[i][j]
		}
		child.OnActivate()
		child.Activate()
	}

	if !child.IsActive() {
		child.OnPassivate()
		for j, p := range ct.places {
			ct.marking[p] += ct.out[i][j]
		}
	}

	Logger.Trace().Str("net", ct.String()).Int("k", k).Int("child", i).Msg("fire")
	ct.refresh()
}
