// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package local

import (
	"math/rand/v2"
	"sync"
)

// RandomSource picks an index in [0, bound). bound is always > 0.
type RandomSource interface {
	NextIndex(bound int) int
}

// uniform draws from the runtime's auto-seeded PRNG, so successive reports
// differ. Safe for concurrent use.
type uniform struct{}

func (uniform) NextIndex(bound int) int { return rand.IntN(bound) }

// Uniform returns the production RandomSource.
func Uniform() RandomSource { return uniform{} }

// Sequence replays fixed draws, cycling when exhausted. Each draw is
// reduced modulo bound. Useful for pinning generator output in tests.
type Sequence struct {
	mu    sync.Mutex
	draws []int
	pos   int
}

// NewSequence returns a Sequence over draws. An empty Sequence always
// returns 0.
func NewSequence(draws ...int) *Sequence {
	return &Sequence{draws: draws}
}

// NextIndex implements RandomSource.
func (s *Sequence) NextIndex(bound int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.draws) == 0 {
		return 0
	}
	v := s.draws[s.pos%len(s.draws)]
	s.pos++
	if v < 0 {
		v = -v
	}
	return v % bound
}
