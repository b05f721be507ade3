package rng

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectWinners_DistinctAndFromPool(t *testing.T) {
	pool := []uint{11, 22, 33, 44, 55, 66, 77}
	src := rand.New(rand.NewSource(1))

	winners, err := SelectWinners(pool, 5, src)
	require.NoError(t, err)
	require.Len(t, winners, 5)

	poolSet := make(map[uint]bool, len(pool))
	for _, id := range pool {
		poolSet[id] = true
	}

	seen := make(map[uint]bool, len(winners))
	for _, id := range winners {
		assert.True(t, poolSet[id], "winner %d not from pool", id)
		assert.False(t, seen[id], "winner %d selected twice", id)
		seen[id] = true
	}
}

func TestSelectWinners_DeterministicWithSeededSource(t *testing.T) {
	pool := []uint{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	first, err := SelectWinners(pool, 4, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	second, err := SelectWinners(pool, 4, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSelectWinners_DoesNotMutateInput(t *testing.T) {
	pool := []uint{1, 2, 3, 4, 5}
	original := []uint{1, 2, 3, 4, 5}

	_, err := SelectWinners(pool, 3, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	assert.Equal(t, original, pool)
}

func TestSelectWinners_WholePool(t *testing.T) {
	pool := []uint{9, 8, 7}

	winners, err := SelectWinners(pool, 3, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	assert.ElementsMatch(t, pool, winners)
}

func TestSelectWinners_CountExceedsPool(t *testing.T) {
	_, err := SelectWinners([]uint{1, 2}, 3, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrPoolTooSmall)
}

func TestSelectWinners_InvalidCount(t *testing.T) {
	_, err := SelectWinners([]uint{1, 2}, 0, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrInvalidCount)

	_, err = SelectWinners([]uint{1, 2}, -1, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrInvalidCount)
}
