// services/cache.go
package services

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/kotoba-club/kotoba_api/dto"
)

// ProgressCacheService memoizes per-user derived snapshots so the dashboard
// does not recompute stats on every read. Reads go through to
// ProgressService on a miss; every mutator calls through and then eagerly
// rebuilds the snapshot (write-through, not write-invalidate). Entries have
// no hard size bound; a periodic sweep driven by the scheduler evicts
// entries idle longer than the configured TTL, since unlike a browser tab
// this process runs for a long time.
type ProgressCacheService struct {
	context.DefaultService

	progressSvc *ProgressService

	mu      sync.RWMutex
	entries map[string]*cacheEntry
	ttl     time.Duration
}

type cacheEntry struct {
	stats       *dto.ProgressStatsResponse
	weekly      []dto.DailyActivityResponse
	refreshedAt time.Time
}

const PROGRESS_CACHE_SVC = "progress_cache_svc"

func (svc ProgressCacheService) Id() string {
	return PROGRESS_CACHE_SVC
}

func (svc *ProgressCacheService) Configure(ctx *context.Context) error {
	svc.entries = make(map[string]*cacheEntry)

	svc.ttl = 30 * time.Minute
	if raw := os.Getenv("CACHE_TTL_MINUTES"); raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
			svc.ttl = time.Duration(minutes) * time.Minute
		}
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *ProgressCacheService) Start() error {
	if svc.progressSvc == nil {
		svc.progressSvc = svc.Service(PROGRESS_SVC).(*ProgressService)
	}
	return nil
}

// GetProgressStats returns the cached snapshot, computing and storing it on
// a miss. Entries never expire on the read path.
func (svc *ProgressCacheService) GetProgressStats(userName string) *dto.ProgressStatsResponse {
	svc.mu.RLock()
	entry, ok := svc.entries[userName]
	svc.mu.RUnlock()

	if ok {
		recordCacheHit()
		return entry.stats
	}

	recordCacheMiss()
	return svc.refresh(userName).stats
}

// GetWeeklyActivity returns the cached 7-day activity series.
func (svc *ProgressCacheService) GetWeeklyActivity(userName string) []dto.DailyActivityResponse {
	svc.mu.RLock()
	entry, ok := svc.entries[userName]
	svc.mu.RUnlock()

	if ok {
		recordCacheHit()
		return entry.weekly
	}

	recordCacheMiss()
	return svc.refresh(userName).weekly
}

func (svc *ProgressCacheService) RecordSentenceAttempt(userName, sentenceID string, isCorrect bool, score int) {
	svc.progressSvc.UpdateSentencePractice(userName, sentenceID, isCorrect, score)
	svc.refresh(userName)
}

func (svc *ProgressCacheService) RecordStoryRead(userName, storyID string, pagesRead, totalPages int) {
	svc.progressSvc.UpdateStoryProgress(userName, storyID, pagesRead, totalPages)
	svc.refresh(userName)
}

func (svc *ProgressCacheService) SetKanjiGrade(userName string, grade int) {
	svc.progressSvc.UpdateKanjiGrade(userName, grade)
	svc.refresh(userName)
}

// Invalidate evicts one user's snapshot, forcing the next read to
// recompute.
func (svc *ProgressCacheService) Invalidate(userName string) {
	svc.mu.Lock()
	delete(svc.entries, userName)
	svc.mu.Unlock()
}

// ClearProgress deletes one user's persisted record and evicts the
// snapshot.
func (svc *ProgressCacheService) ClearProgress(userName string) {
	svc.progressSvc.ClearProgress(userName)
	svc.Invalidate(userName)
}

// ClearAllProgress wipes every persisted record and the whole cache.
func (svc *ProgressCacheService) ClearAllProgress() {
	svc.progressSvc.ClearAllProgress()

	svc.mu.Lock()
	svc.entries = make(map[string]*cacheEntry)
	svc.mu.Unlock()
}

// SweepExpired evicts entries not refreshed within the TTL. Called
// periodically by the scheduler.
func (svc *ProgressCacheService) SweepExpired() int {
	cutoff := time.Now().Add(-svc.ttl)
	evicted := 0

	svc.mu.Lock()
	for userName, entry := range svc.entries {
		if entry.refreshedAt.Before(cutoff) {
			delete(svc.entries, userName)
			evicted++
		}
	}
	size := len(svc.entries)
	svc.mu.Unlock()

	if evicted > 0 {
		log.WithFields(log.Fields{"evicted": evicted, "remaining": size}).
			Debug("Swept progress cache")
	}
	return evicted
}

func (svc *ProgressCacheService) refresh(userName string) *cacheEntry {
	entry := &cacheEntry{
		stats:       svc.progressSvc.GetProgressStats(userName),
		weekly:      svc.progressSvc.GetWeeklyActivity(userName),
		refreshedAt: time.Now(),
	}

	svc.mu.Lock()
	svc.entries[userName] = entry
	svc.mu.Unlock()

	return entry
}
