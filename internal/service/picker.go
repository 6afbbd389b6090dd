package service

import (
	"math/rand"
	"sync"
)

// Picker selects a uniformly random index in [0,n). Both the approver
// assigner and the allocator draw through it so tests can seed the
// selection deterministically.
type Picker interface {
	Pick(n int) int
}

// seededPicker is a mutex-guarded math/rand source; rand.Rand itself is
// not safe for concurrent use.
type seededPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededPicker creates a Picker seeded with the given value.
func NewSeededPicker(seed int64) Picker {
	return &seededPicker{rng: rand.New(rand.NewSource(seed))}
}

func (p *seededPicker) Pick(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Intn(n)
}
