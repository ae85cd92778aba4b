package petrinet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentInsertionOrderPreserved(t *testing.T) {
	c := NewContent()
	a := NewPlace("a", "A")
	b := NewPlace("b", "B")
	z := NewPlace("z", "Z")
	require.NoError(t, c.AddPlace(b))
	require.NoError(t, c.AddPlace(z))
	require.NoError(t, c.AddPlace(a))

	t1 := NewAtomicTransition("t1", "T1")
	t0 := NewAtomicTransition("t0", "T0")
	require.NoError(t, c.AddTransition(t1))
	require.NoError(t, c.AddTransition(t0))

	snap := c.Snapshot()
	assert.Equal(t, []*Place{b, z, a}, snap.Places)
	assert.Equal(t, []Transition{t1, t0}, snap.Transitions)
}

func TestContentDuplicatePlaceFails(t *testing.T) {
	c := NewContent()
	p := NewPlace("p", "P")
	require.NoError(t, c.AddPlace(p))
	require.ErrorIs(t, c.AddPlace(p), ErrDuplicatePlace)
}

func TestContentDuplicateTransitionFails(t *testing.T) {
	c := NewContent()
	tr := NewAtomicTransition("t", "T")
	require.NoError(t, c.AddTransition(tr))
	require.ErrorIs(t, c.AddTransition(tr), ErrDuplicateTransition)
}

func TestContentArcUnknownEndpointFails(t *testing.T) {
	c := NewContent()
	p := NewPlace("p", "P")
	tr := NewAtomicTransition("t", "T")
	require.NoError(t, c.AddPlace(p))
	require.ErrorIs(t, c.AddInputArc(p, tr), ErrUnknownTransition)

	c2 := NewContent()
	require.NoError(t, c2.AddTransition(tr))
	require.ErrorIs(t, c2.AddInputArc(p, tr), ErrUnknownPlace)
}

func TestContentNonPositiveWeightFails(t *testing.T) {
	c := NewContent()
	p := NewPlace("p", "P")
	tr := NewAtomicTransition("t", "T")
	require.NoError(t, c.AddPlace(p))
	require.NoError(t, c.AddTransition(tr))
	require.ErrorIs(t, c.AddInputArc(p, tr, 0), ErrNonPositiveWeight)
	require.ErrorIs(t, c.AddInputArc(p, tr, -1), ErrNonPositiveWeight)
}

func TestContentNonPositiveTokensFails(t *testing.T) {
	c := NewContent()
	p := NewPlace("p", "P")
	require.NoError(t, c.AddPlace(p))
	require.ErrorIs(t, c.AddToken(p, 0), ErrNonPositiveTokens)
}

// Summing two AddInputArc calls of weights a and b must equal a single call
// of weight a+b (spec.md §8, round-trip property).
func TestContentRepeatedArcsSumWeights(t *testing.T) {
	c := NewContent()
	p := NewPlace("p", "P")
	tr := NewAtomicTransition("t", "T")
	require.NoError(t, c.AddPlace(p))
	require.NoError(t, c.AddTransition(tr))
	require.NoError(t, c.AddInputArc(p, tr, 2))
	require.NoError(t, c.AddInputArc(p, tr, 3))

	summed := c.Snapshot().In[0][0]

	c2 := NewContent()
	require.NoError(t, c2.AddPlace(p))
	require.NoError(t, c2.AddTransition(tr))
	require.NoError(t, c2.AddInputArc(p, tr, 5))

	assert.Equal(t, c2.Snapshot().In[0][0], summed)
}

func TestContentDefaultWeightAndTokenCountIsOne(t *testing.T) {
	c := NewContent()
	p := NewPlace("p", "P")
	tr := NewAtomicTransition("t", "T")
	require.NoError(t, c.AddPlace(p))
	require.NoError(t, c.AddTransition(tr))
	require.NoError(t, c.AddInputArc(p, tr))
	require.NoError(t, c.AddToken(p))

	snap := c.Snapshot()
	assert.Equal(t, 1, snap.In[0][0])
	assert.Equal(t, 1, snap.Initial[p])
}
