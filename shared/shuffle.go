package shared

import (
	"math"
	"math/rand"
	"time"
)

// Shuffle returns a deterministic permutation of items for the given seed.
// The input is never mutated; equal inputs and seeds always produce the same
// ordering. The draw at each step is a trigonometric hash of seed+i, which is
// nowhere near cryptographic quality and only exists so a display order stays
// stable within a seed window (e.g. "reshuffle hourly").
func Shuffle[T any](items []T, seed int64) []T {
	out := make([]T, len(items))
	copy(out, items)

	for i := len(out) - 1; i > 0; i-- {
		r := seededUnit(seed + int64(i))
		j := int(r * float64(i+1))
		if j > i {
			j = i
		}
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// seededUnit maps a seed to [0, 1).
func seededUnit(seed int64) float64 {
	v := math.Sin(float64(seed)) * 10000
	return v - math.Floor(v)
}

// HourlySeed changes once per hour.
func HourlySeed(now time.Time) int64 {
	return now.UnixMilli() / (60 * 60 * 1000)
}

// DailySeed changes once per calendar day of the Unix epoch.
func DailySeed(now time.Time) int64 {
	return now.UnixMilli() / (24 * 60 * 60 * 1000)
}

// RandomSeed draws a fresh seed in [0, 1_000_000).
func RandomSeed() int64 {
	return rand.Int63n(1_000_000)
}
