package dsl

// NetSpec is the YAML shape of a Petri net (or a compound transition's
// sub-net): places, transitions, the arcs between them, and the initial
// marking. Unlike the teacher's higher-level workflow DSL (resources,
// channels, tasks, gateways compiled through a bespoke task-action runtime),
// this describes the engine's own primitives directly — the spec has no
// workflow layer of its own above places, transitions, and arcs.
type NetSpec struct {
	Name        string           `yaml:"name,omitempty"`
	Places      []PlaceSpec      `yaml:"places"`
	Transitions []TransitionSpec `yaml:"transitions"`
	Arcs        []ArcSpec        `yaml:"arcs"`
	Tokens      map[string]int   `yaml:"tokens,omitempty"`
}

// PlaceSpec describes one place. ID is optional; an unnamed place is
// assigned a uuid so the YAML author never has to invent unique handles by
// hand.
type PlaceSpec struct {
	ID   string `yaml:"id,omitempty"`
	Name string `yaml:"name"`
}

// TransitionSpec describes one transition. Kind selects the variant:
//   - "" or "atomic" (default): a leaf transition.
//   - "long": a background-job transition; Job names an entry in the
//     Parser's job registry, resolved against the Parser's ThreadEnvironment.
//   - "compound": a nested net; Net gives its sub-net spec.
type TransitionSpec struct {
	ID   string   `yaml:"id,omitempty"`
	Name string   `yaml:"name"`
	Kind string   `yaml:"kind,omitempty"`
	Job  string   `yaml:"job,omitempty"`
	Net  *NetSpec `yaml:"net,omitempty"`
}

// ArcSpec is a single weighted arc. Exactly one of From/To names a place and
// the other a transition; direction (input vs. output) follows from which
// side the place is on. Weight defaults to 1.
type ArcSpec struct {
	From   string `yaml:"from"`
	To     string `yaml:"to"`
	Weight int    `yaml:"weight,omitempty"`
}
