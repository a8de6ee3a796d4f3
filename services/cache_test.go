package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotoba-club/kotoba_api/dto"
	"github.com/kotoba-club/kotoba_api/shared"
)

func newTestCacheService(t *testing.T) (*ProgressCacheService, *time.Time) {
	t.Helper()
	progressSvc, clock := newTestProgressService(newMemStore(), testDay)
	cache := &ProgressCacheService{
		progressSvc: progressSvc,
		entries:     map[string]*cacheEntry{},
		ttl:         30 * time.Minute,
	}
	return cache, clock
}

func TestCacheReadThrough(t *testing.T) {
	cache, _ := newTestCacheService(t)

	stats := cache.GetProgressStats("hana")
	require.NotNil(t, stats)
	assert.Equal(t, "hana", stats.UserName)

	// The miss populated the cache; the next read returns the same snapshot.
	again := cache.GetProgressStats("hana")
	assert.Same(t, stats, again)
}

func TestCacheWriteThroughRefresh(t *testing.T) {
	cache, _ := newTestCacheService(t)

	before := cache.GetProgressStats("hana")
	assert.Zero(t, before.TotalScore)

	cache.RecordSentenceAttempt("hana", "s1", true, 50)

	after := cache.GetProgressStats("hana")
	assert.NotSame(t, before, after)
	assert.Equal(t, 50, after.TotalScore)
	assert.Equal(t, 1, after.CompletedSentences)
}

func TestCacheStoryWriteThrough(t *testing.T) {
	cache, _ := newTestCacheService(t)

	cache.RecordStoryRead("hana", "st1", 3, 3)

	stats := cache.GetProgressStats("hana")
	assert.Equal(t, 1, stats.CompletedStories)
	assert.Equal(t, shared.StoryCompletionBonus, stats.TotalScore)

	weekly := cache.GetWeeklyActivity("hana")
	require.Len(t, weekly, 7)
	assert.Equal(t, 1, weekly[6].Stories)
}

func TestCacheSetKanjiGrade(t *testing.T) {
	cache, _ := newTestCacheService(t)

	cache.SetKanjiGrade("hana", 4)

	assert.Equal(t, 4, cache.GetProgressStats("hana").CurrentKanjiGrade)
}

func TestCacheInvalidateForcesRecompute(t *testing.T) {
	cache, _ := newTestCacheService(t)

	before := cache.GetProgressStats("hana")
	cache.Invalidate("hana")
	after := cache.GetProgressStats("hana")

	assert.NotSame(t, before, after)
}

func TestCacheClearProgressEvicts(t *testing.T) {
	cache, _ := newTestCacheService(t)

	cache.RecordSentenceAttempt("hana", "s1", true, 50)
	require.Equal(t, 50, cache.GetProgressStats("hana").TotalScore)

	cache.ClearProgress("hana")

	assert.Zero(t, cache.GetProgressStats("hana").TotalScore)
}

func TestCacheClearAllProgressResets(t *testing.T) {
	cache, _ := newTestCacheService(t)

	cache.RecordSentenceAttempt("hana", "s1", true, 50)
	cache.RecordSentenceAttempt("kenji", "s1", true, 30)

	cache.ClearAllProgress()

	assert.Empty(t, cache.entries)
	assert.Zero(t, cache.GetProgressStats("hana").TotalScore)
	assert.Zero(t, cache.GetProgressStats("kenji").TotalScore)
}

func TestCacheSweepExpired(t *testing.T) {
	cache, _ := newTestCacheService(t)

	cache.GetProgressStats("hana")
	cache.GetProgressStats("kenji")

	// Backdate one entry beyond the TTL.
	cache.mu.Lock()
	cache.entries["hana"].refreshedAt = time.Now().Add(-time.Hour)
	cache.mu.Unlock()

	evicted := cache.SweepExpired()

	assert.Equal(t, 1, evicted)
	cache.mu.RLock()
	_, hanaCached := cache.entries["hana"]
	_, kenjiCached := cache.entries["kenji"]
	cache.mu.RUnlock()
	assert.False(t, hanaCached)
	assert.True(t, kenjiCached)
}

func TestCacheWeeklyReadThrough(t *testing.T) {
	cache, _ := newTestCacheService(t)

	weekly := cache.GetWeeklyActivity("hana")
	require.Len(t, weekly, 7)

	var zero dto.DailyActivityResponse
	for _, day := range weekly {
		zero.Date = day.Date
		assert.Equal(t, zero, day)
	}
}
