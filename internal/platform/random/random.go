package random

import (
	"math/rand/v2"
	"sync"
)

// Source yields integers uniformly distributed in [0, n).
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

// New returns a Source backed by the runtime's shared generator.
func New() Source {
	return globalSource{}
}

func (globalSource) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return rand.IntN(n)
}

// Seeded is a reproducible Source for local tooling and tests.
type Seeded struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSeeded(seed uint64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *Seeded) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// Sequence replays a fixed list of values, each reduced modulo n.
// It wraps around when exhausted.
type Sequence struct {
	mu     sync.Mutex
	values []int
	next   int
}

func NewSequence(values ...int) *Sequence {
	return &Sequence{values: append([]int(nil), values...)}
}

func (s *Sequence) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	if v < 0 {
		v = -v
	}
	return v % n
}

// Sample picks k distinct items uniformly without replacement.
// The input slice is left untouched.
func Sample[T any](src Source, items []T, k int) []T {
	if k <= 0 || len(items) == 0 {
		return nil
	}
	pool := append([]T(nil), items...)
	if k > len(pool) {
		k = len(pool)
	}
	for i := 0; i < k; i++ {
		j := i + src.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
