package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShuffleDeterministic(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f", "g"}

	first := Shuffle(items, 42)
	second := Shuffle(items, 42)

	assert.Equal(t, first, second)
}

func TestShuffleIsPermutation(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	out := Shuffle(items, 7)

	require.Len(t, out, len(items))
	assert.ElementsMatch(t, items, out)
}

func TestShuffleDoesNotMutateInput(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	original := []string{"a", "b", "c", "d"}

	Shuffle(items, 99)

	assert.Equal(t, original, items)
}

func TestShuffleDifferentSeeds(t *testing.T) {
	items := make([]int, 50)
	for i := range items {
		items[i] = i
	}

	first := Shuffle(items, 1)
	second := Shuffle(items, 2)

	// With 50 elements two seeds colliding on the same permutation would
	// be astronomically unlikely.
	assert.NotEqual(t, first, second)
}

func TestShuffleEmptyAndSingle(t *testing.T) {
	assert.Empty(t, Shuffle([]int{}, 5))
	assert.Equal(t, []int{9}, Shuffle([]int{9}, 5))
}

func TestHourlySeedStableWithinHour(t *testing.T) {
	base := time.Date(2025, 3, 10, 14, 0, 1, 0, time.UTC)
	later := time.Date(2025, 3, 10, 14, 59, 59, 0, time.UTC)
	nextHour := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, HourlySeed(base), HourlySeed(later))
	assert.Equal(t, HourlySeed(base)+1, HourlySeed(nextHour))
}

func TestDailySeedStableWithinDay(t *testing.T) {
	morning := time.Date(2025, 3, 10, 0, 0, 1, 0, time.UTC)
	night := time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC)
	nextDay := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, DailySeed(morning), DailySeed(night))
	assert.Equal(t, DailySeed(morning)+1, DailySeed(nextDay))
}

func TestRandomSeedInRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		seed := RandomSeed()
		assert.GreaterOrEqual(t, seed, int64(0))
		assert.Less(t, seed, int64(1_000_000))
	}
}
