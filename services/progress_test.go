package services

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotoba-club/kotoba_api/model"
	"github.com/kotoba-club/kotoba_api/shared"
)

// memStore is an in-memory ProgressStore for tests.
type memStore struct {
	values  map[string]string
	failGet bool
	failSet bool
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (m *memStore) GetValue(key string) (string, error) {
	if m.failGet {
		return "", errors.New("store unavailable")
	}
	value, ok := m.values[key]
	if !ok {
		return "", errors.New("not found")
	}
	return value, nil
}

func (m *memStore) SetValue(key, value string) error {
	if m.failSet {
		return errors.New("store unavailable")
	}
	m.values[key] = value
	return nil
}

func (m *memStore) DeleteValue(key string) error {
	delete(m.values, key)
	return nil
}

func (m *memStore) DeleteByPrefix(prefix string) error {
	for key := range m.values {
		if strings.HasPrefix(key, prefix) {
			delete(m.values, key)
		}
	}
	return nil
}

func newTestProgressService(store ProgressStore, at time.Time) (*ProgressService, *time.Time) {
	clock := at
	svc := &ProgressService{
		store: store,
		now:   func() time.Time { return clock },
	}
	return svc, &clock
}

var testDay = time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

func TestGetUserProgressCreatesFreshRecord(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestProgressService(store, testDay)

	progress := svc.GetUserProgress("hana")

	require.NotNil(t, progress)
	assert.Equal(t, "hana", progress.UserName)
	assert.Equal(t, shared.MinKanjiGrade, progress.CurrentKanjiGrade)
	assert.Empty(t, progress.SentencePractice)
	assert.Empty(t, progress.Achievements)

	// Fresh record is persisted immediately.
	_, ok := store.values[shared.ProgressKeyPrefix+"hana"]
	assert.True(t, ok)
}

func TestGetUserProgressStoreErrorDegradesToFresh(t *testing.T) {
	store := newMemStore()
	store.failGet = true
	store.failSet = true
	svc, _ := newTestProgressService(store, testDay)

	progress := svc.GetUserProgress("hana")

	require.NotNil(t, progress)
	assert.Equal(t, "hana", progress.UserName)
	assert.Zero(t, progress.TotalScore)
}

func TestGetUserProgressCorruptedRecordStartsFresh(t *testing.T) {
	store := newMemStore()
	store.values[shared.ProgressKeyPrefix+"hana"] = "{not json"
	svc, _ := newTestProgressService(store, testDay)

	progress := svc.GetUserProgress("hana")

	require.NotNil(t, progress)
	assert.Equal(t, "hana", progress.UserName)
	assert.Zero(t, progress.TotalScore)
}

func TestGetUserProgressUserMismatchStartsFresh(t *testing.T) {
	store := newMemStore()
	other := &model.UserProgress{UserName: "kenji", TotalScore: 500}
	raw, _ := json.Marshal(other)
	store.values[shared.ProgressKeyPrefix+"hana"] = string(raw)
	svc, _ := newTestProgressService(store, testDay)

	progress := svc.GetUserProgress("hana")

	assert.Equal(t, "hana", progress.UserName)
	assert.Zero(t, progress.TotalScore)
}

func TestGetUserProgressRoundTrip(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestProgressService(store, testDay)

	svc.UpdateSentencePractice("hana", "s1", true, 50)

	reloaded := svc.GetUserProgress("hana")
	require.Len(t, reloaded.SentencePractice, 1)
	assert.Equal(t, "s1", reloaded.SentencePractice[0].SentenceID)
	assert.Equal(t, 50, reloaded.TotalScore)
}

func TestUpdateSentencePracticeCorrectAttempt(t *testing.T) {
	svc, _ := newTestProgressService(newMemStore(), testDay)

	svc.UpdateSentencePractice("hana", "s1", true, 50)

	progress := svc.GetUserProgress("hana")
	require.Len(t, progress.SentencePractice, 1)
	sentence := progress.SentencePractice[0]
	assert.Equal(t, 1, sentence.Attempts)
	assert.Equal(t, 1, sentence.CorrectAttempts)
	assert.True(t, sentence.Completed)
	assert.Equal(t, 50, sentence.BestScore)
	assert.Equal(t, 50, progress.TotalScore)
	assert.Equal(t, 1, progress.StreakDays)
}

func TestUpdateSentencePracticeIncorrectAttempt(t *testing.T) {
	svc, _ := newTestProgressService(newMemStore(), testDay)

	svc.UpdateSentencePractice("hana", "s1", false, 40)

	progress := svc.GetUserProgress("hana")
	sentence := progress.SentencePractice[0]
	assert.Equal(t, 1, sentence.Attempts)
	assert.Zero(t, sentence.CorrectAttempts)
	assert.False(t, sentence.Completed)
	// Best score still moves on an incorrect attempt.
	assert.Equal(t, 40, sentence.BestScore)
	// Total score does not.
	assert.Zero(t, progress.TotalScore)
}

func TestUpdateSentencePracticeBestScoreNeverDecreases(t *testing.T) {
	svc, _ := newTestProgressService(newMemStore(), testDay)

	svc.UpdateSentencePractice("hana", "s1", true, 80)
	svc.UpdateSentencePractice("hana", "s1", true, 30)

	progress := svc.GetUserProgress("hana")
	sentence := progress.SentencePractice[0]
	assert.Equal(t, 2, sentence.Attempts)
	assert.Equal(t, 80, sentence.BestScore)
	assert.Equal(t, 110, progress.TotalScore)
}

func TestUpdateSentencePracticeCompletionSticks(t *testing.T) {
	svc, _ := newTestProgressService(newMemStore(), testDay)

	svc.UpdateSentencePractice("hana", "s1", true, 50)
	svc.UpdateSentencePractice("hana", "s1", false, 0)

	progress := svc.GetUserProgress("hana")
	assert.True(t, progress.SentencePractice[0].Completed)
}

func TestUpdateSentencePracticeDailyCounters(t *testing.T) {
	svc, _ := newTestProgressService(newMemStore(), testDay)

	svc.UpdateSentencePractice("hana", "s1", true, 50)
	svc.UpdateSentencePractice("hana", "s2", false, 20)

	progress := svc.GetUserProgress("hana")
	require.Len(t, progress.DailyProgress, 1)
	day := progress.DailyProgress[0]
	assert.Equal(t, shared.DateKey(testDay), day.Date)
	// The daily counter moves per attempt, not per completion.
	assert.Equal(t, 2, day.SentencePracticeCompleted)
	assert.Equal(t, 70, day.TotalScore)
	assert.Equal(t, 2*shared.ActivityMinutes, day.TimeSpent)
	assert.Equal(t, 2*shared.ActivityMinutes, progress.TotalTimeSpent)
}

func TestUpdateStoryProgressPartialRead(t *testing.T) {
	svc, _ := newTestProgressService(newMemStore(), testDay)

	svc.UpdateStoryProgress("hana", "st1", 2, 5)

	progress := svc.GetUserProgress("hana")
	require.Len(t, progress.Stories, 1)
	story := progress.Stories[0]
	assert.Equal(t, 2, story.PagesRead)
	assert.Equal(t, 5, story.TotalPages)
	assert.False(t, story.Completed)
	assert.Zero(t, story.TimesRead)
	assert.Zero(t, progress.TotalScore)

	day := progress.DailyProgress[0]
	assert.Equal(t, 1, day.StoriesRead)
	assert.Equal(t, shared.StoryReadScore, day.TotalScore)
}

func TestUpdateStoryProgressCompletionBonusOnce(t *testing.T) {
	svc, _ := newTestProgressService(newMemStore(), testDay)

	svc.UpdateStoryProgress("hana", "st1", 5, 5)
	svc.UpdateStoryProgress("hana", "st1", 5, 5)

	progress := svc.GetUserProgress("hana")
	story := progress.Stories[0]
	assert.True(t, story.Completed)
	// TimesRead and the bonus move only on the transition.
	assert.Equal(t, 1, story.TimesRead)
	assert.Equal(t, shared.StoryCompletionBonus, progress.TotalScore)

	day := progress.DailyProgress[0]
	assert.Equal(t, 2, day.StoriesRead)
	assert.Equal(t, shared.StoryCompletionBonus+shared.StoryReadScore, day.TotalScore)
}

func TestUpdateStoryProgressPagesReadMonotonic(t *testing.T) {
	svc, _ := newTestProgressService(newMemStore(), testDay)

	svc.UpdateStoryProgress("hana", "st1", 4, 5)
	svc.UpdateStoryProgress("hana", "st1", 2, 5)

	progress := svc.GetUserProgress("hana")
	assert.Equal(t, 4, progress.Stories[0].PagesRead)
}

func TestUpdateKanjiGradeClampsAndPersists(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestProgressService(store, testDay)

	svc.UpdateKanjiGrade("hana", 9)
	assert.Equal(t, shared.MaxKanjiGrade, svc.GetUserProgress("hana").CurrentKanjiGrade)

	svc.UpdateKanjiGrade("hana", 0)
	assert.Equal(t, shared.MinKanjiGrade, svc.GetUserProgress("hana").CurrentKanjiGrade)

	svc.UpdateKanjiGrade("hana", 3)
	progress := svc.GetUserProgress("hana")
	assert.Equal(t, 3, progress.CurrentKanjiGrade)
	// Grade change is not activity.
	assert.Empty(t, progress.DailyProgress)
	assert.Zero(t, progress.StreakDays)
}

func TestStreakConsecutiveDays(t *testing.T) {
	svc, clock := newTestProgressService(newMemStore(), testDay)

	svc.UpdateSentencePractice("hana", "s1", true, 10)
	assert.Equal(t, 1, svc.GetUserProgress("hana").StreakDays)

	*clock = testDay.AddDate(0, 0, 1)
	svc.UpdateSentencePractice("hana", "s2", true, 10)
	assert.Equal(t, 2, svc.GetUserProgress("hana").StreakDays)

	*clock = testDay.AddDate(0, 0, 2)
	svc.UpdateStoryProgress("hana", "st1", 1, 3)
	assert.Equal(t, 3, svc.GetUserProgress("hana").StreakDays)
}

func TestStreakSameDayNoChange(t *testing.T) {
	svc, _ := newTestProgressService(newMemStore(), testDay)

	svc.UpdateSentencePractice("hana", "s1", true, 10)
	svc.UpdateSentencePractice("hana", "s2", true, 10)
	svc.UpdateSentencePractice("hana", "s3", false, 0)

	assert.Equal(t, 1, svc.GetUserProgress("hana").StreakDays)
}

func TestStreakGapResetsToOne(t *testing.T) {
	svc, clock := newTestProgressService(newMemStore(), testDay)

	svc.UpdateSentencePractice("hana", "s1", true, 10)
	*clock = testDay.AddDate(0, 0, 1)
	svc.UpdateSentencePractice("hana", "s2", true, 10)
	assert.Equal(t, 2, svc.GetUserProgress("hana").StreakDays)

	*clock = testDay.AddDate(0, 0, 4)
	svc.UpdateSentencePractice("hana", "s3", true, 10)
	assert.Equal(t, 1, svc.GetUserProgress("hana").StreakDays)
}

func TestAchievementFirstSentence(t *testing.T) {
	svc, _ := newTestProgressService(newMemStore(), testDay)

	svc.UpdateSentencePractice("hana", "s1", false, 0)
	assert.NotContains(t, svc.GetUserProgress("hana").Achievements, shared.AchievementFirstSentence)

	svc.UpdateSentencePractice("hana", "s1", true, 50)
	assert.Contains(t, svc.GetUserProgress("hana").Achievements, shared.AchievementFirstSentence)
}

func TestAchievementSentenceMasterAtThreshold(t *testing.T) {
	svc, _ := newTestProgressService(newMemStore(), testDay)

	for i := 0; i < shared.SentenceMasterThreshold-1; i++ {
		svc.UpdateSentencePractice("hana", sentenceID(i), true, 10)
	}
	assert.NotContains(t, svc.GetUserProgress("hana").Achievements, shared.AchievementSentenceMaster)

	svc.UpdateSentencePractice("hana", sentenceID(shared.SentenceMasterThreshold-1), true, 10)
	assert.Contains(t, svc.GetUserProgress("hana").Achievements, shared.AchievementSentenceMaster)
}

func sentenceID(i int) string {
	return "s" + string(rune('a'+i))
}

func TestAchievementFirstStoryAndReader(t *testing.T) {
	svc, _ := newTestProgressService(newMemStore(), testDay)

	svc.UpdateStoryProgress("hana", "st0", 3, 3)
	progress := svc.GetUserProgress("hana")
	assert.Contains(t, progress.Achievements, shared.AchievementFirstStory)
	assert.NotContains(t, progress.Achievements, shared.AchievementStoryReader)

	for i := 1; i < shared.StoryReaderThreshold; i++ {
		svc.UpdateStoryProgress("hana", sentenceID(i), 3, 3)
	}
	assert.Contains(t, svc.GetUserProgress("hana").Achievements, shared.AchievementStoryReader)
}

func TestAchievementScoreChampion(t *testing.T) {
	svc, _ := newTestProgressService(newMemStore(), testDay)

	for i := 0; i < 20; i++ {
		svc.UpdateSentencePractice("hana", sentenceID(i), true, 50)
	}

	progress := svc.GetUserProgress("hana")
	assert.GreaterOrEqual(t, progress.TotalScore, shared.ScoreChampionThreshold)
	assert.Contains(t, progress.Achievements, shared.AchievementScoreChampion)
}

func TestAchievementWeekStreak(t *testing.T) {
	svc, clock := newTestProgressService(newMemStore(), testDay)

	for i := 0; i < shared.WeekStreakThreshold; i++ {
		*clock = testDay.AddDate(0, 0, i)
		svc.UpdateSentencePractice("hana", "s1", false, 0)
	}

	progress := svc.GetUserProgress("hana")
	assert.Equal(t, shared.WeekStreakThreshold, progress.StreakDays)
	assert.Contains(t, progress.Achievements, shared.AchievementWeekStreak)
}

func TestAchievementsAreNeverRevoked(t *testing.T) {
	svc, clock := newTestProgressService(newMemStore(), testDay)

	svc.UpdateSentencePractice("hana", "s1", true, 10)
	require.Contains(t, svc.GetUserProgress("hana").Achievements, shared.AchievementFirstSentence)

	// A later activity after a long gap resets the streak but unlocked
	// achievements stay.
	*clock = testDay.AddDate(0, 1, 0)
	svc.UpdateSentencePractice("hana", "s2", false, 0)
	assert.Contains(t, svc.GetUserProgress("hana").Achievements, shared.AchievementFirstSentence)
}

func TestGetProgressStatsDerivation(t *testing.T) {
	svc, _ := newTestProgressService(newMemStore(), testDay)

	svc.UpdateSentencePractice("hana", "s1", true, 50)
	svc.UpdateSentencePractice("hana", "s1", false, 20)
	svc.UpdateSentencePractice("hana", "s2", true, 30)
	svc.UpdateStoryProgress("hana", "st1", 3, 3)

	stats := svc.GetProgressStats("hana")
	assert.Equal(t, "hana", stats.UserName)
	assert.Equal(t, 2, stats.CompletedSentences)
	assert.Equal(t, 3, stats.TotalSentenceAttempts)
	assert.Equal(t, 67, stats.Accuracy) // round(2/3*100)
	assert.Equal(t, 1, stats.CompletedStories)
	assert.Equal(t, 1, stats.TotalStoriesRead)
	assert.Equal(t, 50+30+shared.StoryCompletionBonus, stats.TotalScore)
	assert.Equal(t, 4, stats.ActivitiesLast7Days)
	assert.Equal(t, shared.MinKanjiGrade, stats.CurrentKanjiGrade)
}

func TestGetProgressStatsAccuracyGuard(t *testing.T) {
	svc, _ := newTestProgressService(newMemStore(), testDay)

	stats := svc.GetProgressStats("hana")
	assert.Zero(t, stats.TotalSentenceAttempts)
	assert.Zero(t, stats.Accuracy)
}

func TestGetProgressStatsIsReadOnly(t *testing.T) {
	svc, _ := newTestProgressService(newMemStore(), testDay)

	svc.UpdateSentencePractice("hana", "s1", true, 50)
	first := svc.GetProgressStats("hana")
	second := svc.GetProgressStats("hana")

	assert.Equal(t, first, second)
}

func TestActivitiesLast7DaysWindow(t *testing.T) {
	svc, clock := newTestProgressService(newMemStore(), testDay)

	// 7 days ago falls outside the window (today-6 .. today).
	*clock = testDay.AddDate(0, 0, -7)
	svc.UpdateSentencePractice("hana", "s1", true, 10)

	*clock = testDay.AddDate(0, 0, -6)
	svc.UpdateSentencePractice("hana", "s2", true, 10)

	*clock = testDay
	svc.UpdateStoryProgress("hana", "st1", 1, 3)

	stats := svc.GetProgressStats("hana")
	assert.Equal(t, 2, stats.ActivitiesLast7Days)
}

func TestGetWeeklyActivityZeroFilled(t *testing.T) {
	svc, clock := newTestProgressService(newMemStore(), testDay)

	*clock = testDay.AddDate(0, 0, -2)
	svc.UpdateSentencePractice("hana", "s1", true, 30)

	*clock = testDay
	week := svc.GetWeeklyActivity("hana")

	require.Len(t, week, 7)
	assert.Equal(t, shared.DateKeyOffset(testDay, -6), week[0].Date)
	assert.Equal(t, shared.DateKey(testDay), week[6].Date)

	for i, day := range week {
		if i == 4 { // testDay-2
			assert.Equal(t, 1, day.Sentences)
			assert.Equal(t, 30, day.Score)
			assert.Equal(t, 1, day.TotalCount)
		} else {
			assert.Zero(t, day.TotalCount)
			assert.Zero(t, day.Score)
		}
	}
}

func TestClearProgress(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestProgressService(store, testDay)

	svc.UpdateSentencePractice("hana", "s1", true, 50)
	svc.ClearProgress("hana")

	_, ok := store.values[shared.ProgressKeyPrefix+"hana"]
	assert.False(t, ok)

	// Next read starts from a fresh record.
	assert.Zero(t, svc.GetUserProgress("hana").TotalScore)
}

func TestClearAllProgress(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestProgressService(store, testDay)

	svc.UpdateSentencePractice("hana", "s1", true, 50)
	svc.UpdateSentencePractice("kenji", "s1", true, 50)
	store.values["other:key"] = "kept"

	svc.ClearAllProgress()

	assert.Len(t, store.values, 1)
	assert.Contains(t, store.values, "other:key")
}

func TestPersistFailureDoesNotPanic(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestProgressService(store, testDay)

	svc.UpdateSentencePractice("hana", "s1", true, 50)
	store.failSet = true

	assert.NotPanics(t, func() {
		svc.UpdateSentencePractice("hana", "s2", true, 30)
	})
}
