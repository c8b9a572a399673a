// Package rng supplies the random choices of a trail build: vertex membership
// coin flips and keyframe jitter.
package rng

import (
	"math/rand/v2"
	"time"
)

// Source is a pseudo-random source.
type Source interface {
	// NextBool returns true or false with equal probability.
	NextBool() bool
	// NextInt returns a uniform integer in [lo, hi], both inclusive.
	NextInt(lo, hi int) int
}

// System draws from a PCG generator.
type System struct {
	r *rand.Rand
}

// New returns a System source. A zero seed selects a time-based seed, so runs
// are not reproducible.
func New(seed uint64) *System {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &System{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NextBool implements Source.
func (s *System) NextBool() bool {
	return s.r.IntN(2) == 1
}

// NextInt implements Source.
func (s *System) NextInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.IntN(hi-lo+1)
}

// Sequence replays fixed values, cycling when exhausted. Ints are clamped to
// the requested range. An empty Bools yields true and an empty Ints yields lo.
type Sequence struct {
	Bools []bool
	Ints  []int

	bi, ii int
}

// NextBool implements Source.
func (s *Sequence) NextBool() bool {
	if len(s.Bools) == 0 {
		return true
	}
	b := s.Bools[s.bi%len(s.Bools)]
	s.bi++
	return b
}

// NextInt implements Source.
func (s *Sequence) NextInt(lo, hi int) int {
	if len(s.Ints) == 0 {
		return lo
	}
	v := s.Ints[s.ii%len(s.Ints)]
	s.ii++
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
