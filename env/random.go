package env

import (
	"math/rand"
	"sync"

	"github.com/ivanprosh/Mod-Petri/petrinet"
)

// RandomEnvironment selects uniformly at random among the enabled set
// (component C8). It never consults marked. The seed is exposed so tests can
// reproduce a specific run, or force both branches of a conflict.
type RandomEnvironment struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomEnvironment returns an environment seeded deterministically.
func NewRandomEnvironment(seed int64) *RandomEnvironment {
	return &RandomEnvironment{rng: rand.New(rand.NewSource(seed))}
}

// Wait implements petrinet.Environment.
func (e *RandomEnvironment) Wait(enabled []petrinet.Transition, marked petrinet.Marking) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Intn(len(enabled))
}
