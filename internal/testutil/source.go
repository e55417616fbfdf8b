// Package testutil provides shared test helpers: deterministic randomness
// sources and content fixtures.
package testutil

import "sync"

// SequenceSource is a dice.Source that replays fixed values.
//
// Float64 returns Floats in order and Intn returns Ints (reduced modulo n) in
// order. Once a sequence is exhausted its last value repeats; an empty
// sequence yields 0.
type SequenceSource struct {
	mu     sync.Mutex
	Floats []float64
	Ints   []int
	fi, ii int
}

// NewFloats returns a SequenceSource whose Float64 calls replay floats.
func NewFloats(floats ...float64) *SequenceSource {
	return &SequenceSource{Floats: floats}
}

// Float64 returns the next configured float.
func (s *SequenceSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Floats) == 0 {
		return 0
	}
	i := s.fi
	if i >= len(s.Floats) {
		i = len(s.Floats) - 1
	}
	s.fi++
	return s.Floats[i]
}

// Intn returns the next configured int modulo n.
//
// Precondition: n > 0.
func (s *SequenceSource) Intn(n int) int {
	if n <= 0 {
		panic("testutil: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Ints) == 0 {
		return 0
	}
	i := s.ii
	if i >= len(s.Ints) {
		i = len(s.Ints) - 1
	}
	s.ii++
	v := s.Ints[i] % n
	if v < 0 {
		v += n
	}
	return v
}

// FloatCalls reports how many Float64 draws have been made.
func (s *SequenceSource) FloatCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fi
}
