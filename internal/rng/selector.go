package rng

import (
	"errors"
	"math/rand"
	"time"
)

var (
	ErrInvalidCount = errors.New("count must be > 0")
	ErrPoolTooSmall = errors.New("count exceeds pool size")
)

// Source yields uniform random integers in [0, n). *rand.Rand satisfies it;
// tests inject a seeded instance for deterministic selection.
type Source interface {
	Intn(n int) int
}

// NewSource returns a time-seeded Source for production use.
func NewSource() Source {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// SelectWinners picks count distinct elements from pool, uniformly at random
// and without replacement: a Fisher-Yates shuffle of a copy of pool, taking
// the first count elements. The caller must check the pool size first; a
// count larger than the pool is an error, never a truncated result.
func SelectWinners(pool []uint, count int, src Source) ([]uint, error) {
	if count <= 0 {
		return nil, ErrInvalidCount
	}
	if count > len(pool) {
		return nil, ErrPoolTooSmall
	}

	shuffled := make([]uint, len(pool))
	copy(shuffled, pool)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled[:count], nil
}
