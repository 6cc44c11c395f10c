package shared

import (
	"math/rand/v2"
	"sync/atomic"
	"time"
)

// RandomSource supplies uniform draws to the simulation.
// Processors receive one per invocation so tests can pin the sequence.
type RandomSource interface {
	// Float64 returns a value in [0.0, 1.0)
	Float64() float64
	// IntN returns a value in [0, n)
	IntN(n int) int
}

// RandomFactory creates a fresh RandomSource for one job invocation
type RandomFactory func() RandomSource

// NewSeededRandom returns a deterministic source for the given seed
func NewSeededRandom(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandomFactory returns a factory producing seeded sources.
// With seed 0 every invocation is seeded from the wall clock; otherwise
// invocations use seed, seed+1, seed+2, ...
func NewRandomFactory(seed uint64) RandomFactory {
	if seed == 0 {
		return func() RandomSource {
			return NewSeededRandom(uint64(time.Now().UnixNano()))
		}
	}
	var calls atomic.Uint64
	return func() RandomSource {
		return NewSeededRandom(seed + calls.Add(1) - 1)
	}
}

// Uniform draws a value in [min, max) from src
func Uniform(src RandomSource, min, max float64) float64 {
	return min + src.Float64()*(max-min)
}

// FixedRandom always returns the same draw. Useful in tests.
type FixedRandom struct {
	Value float64
}

func (f FixedRandom) Float64() float64 { return f.Value }

func (f FixedRandom) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return int(f.Value * float64(n))
}
