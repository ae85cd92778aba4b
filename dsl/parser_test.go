package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivanprosh/Mod-Petri/env"
	"github.com/ivanprosh/Mod-Petri/petrinet"
)

// firstEnvironment always picks the first enabled entry: fine for fixtures
// with no real concurrent choice to make.
type firstEnvironment struct{}

func (firstEnvironment) Wait(enabled []petrinet.Transition, marked petrinet.Marking) int { return 0 }

func TestParseFileTransferDrainsAIntoB(t *testing.T) {
	p := NewParser()
	content, err := p.ParseFile("testdata/transfer.yml")
	require.NoError(t, err)

	net := petrinet.NewPetriNet("transfer", content)
	net.Activate()
	for net.IsActive() {
		net.Fire(firstEnvironment{}.Wait(net.Enabled(), net.Marked()))
	}
	assert.False(t, net.IsActive())

	byID := make(map[string]int)
	for p, n := range net.Marked() {
		byID[p.ID] = n
	}
	assert.Equal(t, map[string]int{"b": 3}, byID)
}

func TestParseFileNestedCompound(t *testing.T) {
	p := NewParser()
	content, err := p.ParseFile("testdata/nested.yml")
	require.NoError(t, err)

	net := petrinet.NewPetriNet("outer", content)
	net.Live(firstEnvironment{})
	assert.False(t, net.IsActive())
}

func TestParseFileLongJobRunsRegisteredCallable(t *testing.T) {
	p := NewParser()
	p.ThreadEnv = env.NewThreadEnvironment(1)

	var calls int
	p.RegisterJob("increment", env.LongJobFunc(func() { calls++ }))

	content, err := p.ParseFile("testdata/longjob.yml")
	require.NoError(t, err)

	net := petrinet.NewPetriNet("worker", content)
	net.Live(p.ThreadEnv)

	assert.Equal(t, 1, calls)
	assert.False(t, net.IsActive())
}

func TestParseLongJobWithoutThreadEnvironmentFails(t *testing.T) {
	p := NewParser()
	p.RegisterJob("increment", env.LongJobFunc(func() {}))
	_, err := p.ParseFile("testdata/longjob.yml")
	assert.Error(t, err)
}

func TestParseLongJobUnregisteredJobFails(t *testing.T) {
	p := NewParser()
	p.ThreadEnv = env.NewThreadEnvironment(1)
	_, err := p.ParseFile("testdata/longjob.yml")
	assert.Error(t, err)
}

func TestParseUnknownTransitionKindFails(t *testing.T) {
	p := NewParser()
	_, err := p.Parse([]byte(`
places:
  - id: a
    name: a
transitions:
  - id: t
    name: t
    kind: bogus
arcs:
  - from: a
    to: t
`))
	assert.Error(t, err)
}

func TestParseArcWithUnknownEndpointFails(t *testing.T) {
	p := NewParser()
	_, err := p.Parse([]byte(`
places:
  - id: a
    name: a
transitions:
  - id: t
    name: t
arcs:
  - from: a
    to: missing
`))
	assert.Error(t, err)
}

func TestParseAutoAssignsIDs(t *testing.T) {
	p := NewParser()
	content, err := p.Parse([]byte(`
places:
  - name: only place
transitions:
  - name: only transition
arcs:
  - from: only place
    to: nope
`))
	// The arc names its place by the place's name, which is not its ID, so
	// neither endpoint resolves and Parse fails.
	assert.Error(t, err)
	_ = content

	// Without arcs the same nodes parse, and each received a generated ID.
	content, err = p.Parse([]byte(`
places:
  - name: only place
transitions:
  - name: only transition
`))
	require.NoError(t, err)
	snap := content.Snapshot()
	assert.NotEmpty(t, snap.Places[0].ID)
	assert.NotEmpty(t, snap.Transitions[0].(*petrinet.AtomicTransition).ID)
}
