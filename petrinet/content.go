package petrinet

import "fmt"

// Content is the immutable net descriptor builder (component C4). It is
// insertion-ordered: place and transition indices are assigned in call order,
// and Snapshot preserves that order rather than any map-iteration order.
// Build a Content, add places, transitions, arcs and initial tokens to it,
// then hand it to FromContent (for a nested compound) or NewPetriNet (for the
// root).
type Content struct {
	places     []*Place
	placeIndex map[*Place]int

	transitions []Transition
	transIndex  map[Transition]int

	in  map[arcKey]int
	out map[arcKey]int

	tokens map[*Place]int
}

// NewContent returns an empty builder.
func NewContent() *Content {
	return &Content{
		placeIndex: make(map[*Place]int),
		transIndex: make(map[Transition]int),
		in:         make(map[arcKey]int),
		out:        make(map[arcKey]int),
		tokens:     make(map[*Place]int),
	}
}

// AddPlace registers a place, assigning it the next place index. Fails if p
// was already added.
func (c *Content) AddPlace(p *Place) error {
	if _, ok := c.placeIndex[p]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePlace, p)
	}
	c.placeIndex[p] = len(c.places)
	c.places = append(c.places, p)
	return nil
}

// AddTransition registers a transition (atomic or compound), assigning it the
// next transition index. Fails if t was already added.
func (c *Content) AddTransition(t Transition) error {
	if _, ok := c.transIndex[t]; ok {
		return fmt.Errorf("%w: %v", ErrDuplicateTransition, t)
	}
	c.transIndex[t] = len(c.transitions)
	c.transitions = append(c.transitions, t)
	return nil
}

// AddInputArc adds an arc from place p into transition t. weight defaults to
// 1; repeated calls between the same (p, t) pair sum their weights.
func (c *Content) AddInputArc(p *Place, t Transition, weight ...int) error {
	w, err := resolveWeight(weight)
	if err != nil {
		return err
	}
	pi, ti, err := c.resolve(p, t)
	if err != nil {
		return err
	}
	c.in[arcKey{transition: ti, place: pi}] += w
	return nil
}

// AddOutputArc adds an arc from transition t into place p. weight defaults to
// 1; repeated calls between the same (t, p) pair sum their weights.
func (c *Content) AddOutputArc(t Transition, p *Place, weight ...int) error {
	w, err := resolveWeight(weight)
	if err != nil {
		return err
	}
	pi, ti, err := c.resolve(p, t)
	if err != nil {
		return err
	}
	c.out[arcKey{transition: ti, place: pi}] += w
	return nil
}

// AddToken seeds the initial marking of p with n tokens (default 1). Repeated
// calls accumulate.
func (c *Content) AddToken(p *Place, n ...int) error {
	count := 1
	if len(n) > 0 {
		count = n[0]
	}
	if count <= 0 {
		return fmt.Errorf("%w: %d", ErrNonPositiveTokens, count)
	}
	if _, ok := c.placeIndex[p]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPlace, p)
	}
	c.tokens[p] += count
	return nil
}

func resolveWeight(weight []int) (int, error) {
	w := 1
	if len(weight) > 0 {
		w = weight[0]
	}
	if w <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrNonPositiveWeight, w)
	}
	return w, nil
}

func (c *Content) resolve(p *Place, t Transition) (placeIdx, transIdx int, err error) {
	pi, ok := c.placeIndex[p]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", ErrUnknownPlace, p)
	}
	ti, ok := c.transIndex[t]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %v", ErrUnknownTransition, t)
	}
	return pi, ti, nil
}

// Snapshot is the immutable emission of a Content: place and transition
// lists in index order, dense input/output arc matrices, and the initial
// marking.
type Snapshot struct {
	Places      []*Place
	Transitions []Transition
	In          Matrix
	Out         Matrix
	Initial     Marking
}

// Snapshot materializes the dense arc matrices and initial marking from the
// builder's sparse accumulators, in insertion order.
func (c *Content) Snapshot() *Snapshot {
	np, nt := len(c.places), len(c.transitions)
	in := newMatrix(nt, np)
	out := newMatrix(nt, np)
	for k, w := range c.in {
		in[k.transition][k.place] = w
	}
	for k, w := range c.out {
		out[k.transition][k.place] = w
	}

	initial := make(Marking, len(c.tokens))
	for p, n := range c.tokens {
		initial[p] = n
	}

	places := make([]*Place, np)
	copy(places, c.places)
	transitions := make([]Transition, nt)
	copy(transitions, c.transitions)

	return &Snapshot{
		Places:      places,
		Transitions: transitions,
		In:          in,
		Out:         out,
		Initial:     initial,
	}
}
