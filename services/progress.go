// services/progress.go
package services

import (
	"encoding/json"
	"math"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/kotoba-club/kotoba_api/dto"
	"github.com/kotoba-club/kotoba_api/model"
	"github.com/kotoba-club/kotoba_api/shared"
)

// ProgressStore is the synchronous key-value slot backing user progress.
// DbService implements it; tests use an in-memory map.
type ProgressStore interface {
	GetValue(key string) (string, error)
	SetValue(key, value string) error
	DeleteValue(key string) error
	DeleteByPrefix(prefix string) error
}

// ProgressService owns all mutation logic and derived-statistic computation
// for user learning progress. Every mutating call is a full
// read-modify-write of the user's JSON document; storage failures never
// propagate to callers, they degrade to a fresh in-memory record on read and
// are logged and dropped on write. A broken progress slot must never take
// the app down with it.
type ProgressService struct {
	context.DefaultService

	store ProgressStore
	now   func() time.Time
}

const PROGRESS_SVC = "progress_svc"

func (svc ProgressService) Id() string {
	return PROGRESS_SVC
}

func (svc *ProgressService) Configure(ctx *context.Context) error {
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *ProgressService) Start() error {
	if svc.store == nil {
		svc.store = svc.Service(DB_SVC).(*DbService)
	}
	return nil
}

func progressKey(userName string) string {
	return shared.ProgressKeyPrefix + userName
}

// GetUserProgress loads the persisted record for userName, lazily creating a
// zeroed record when none exists or the stored document is unreadable.
func (svc *ProgressService) GetUserProgress(userName string) *model.UserProgress {
	raw, err := svc.store.GetValue(progressKey(userName))
	if err != nil {
		return svc.freshProgress(userName)
	}

	var progress model.UserProgress
	if err := json.Unmarshal([]byte(raw), &progress); err != nil {
		log.WithFields(log.Fields{"user": userName, "error": err.Error()}).
			Warn("Corrupted progress record, starting fresh")
		return svc.freshProgress(userName)
	}

	// Keys are namespaced per user, so a name mismatch means the slot was
	// written outside this service. Treat it like corruption.
	if progress.UserName != userName {
		log.WithFields(log.Fields{"user": userName, "stored": progress.UserName}).
			Warn("Progress record user mismatch, starting fresh")
		return svc.freshProgress(userName)
	}

	return &progress
}

func (svc *ProgressService) freshProgress(userName string) *model.UserProgress {
	progress := &model.UserProgress{
		UserName:          userName,
		CurrentKanjiGrade: shared.MinKanjiGrade,
		SentencePractice:  []model.SentencePracticeProgress{},
		Stories:           []model.StoryProgress{},
		DailyProgress:     []model.DailyProgress{},
		Achievements:      []string{},
	}
	svc.persist(progress)
	return progress
}

func (svc *ProgressService) persist(progress *model.UserProgress) {
	raw, err := json.Marshal(progress)
	if err != nil {
		log.WithError(err).WithField("user", progress.UserName).Error("Failed to marshal progress")
		return
	}
	if err := svc.store.SetValue(progressKey(progress.UserName), string(raw)); err != nil {
		// The in-memory mutation survives the current call chain; only
		// durability is lost.
		log.WithError(err).WithField("user", progress.UserName).Warn("Failed to persist progress")
	}
}

// UpdateSentencePractice records one answer submission for a sentence.
// Attempts and bestScore move on every submission; correctAttempts,
// completion and totalScore only on correct ones.
func (svc *ProgressService) UpdateSentencePractice(userName, sentenceID string, isCorrect bool, score int) {
	progress := svc.GetUserProgress(userName)
	now := svc.now()

	sentence := progress.FindSentence(sentenceID)
	if sentence == nil {
		progress.SentencePractice = append(progress.SentencePractice, model.SentencePracticeProgress{
			SentenceID: sentenceID,
		})
		sentence = &progress.SentencePractice[len(progress.SentencePractice)-1]
	}

	sentence.Attempts++
	sentence.LastAttempted = now
	if score > sentence.BestScore {
		sentence.BestScore = score
	}

	if isCorrect {
		sentence.CorrectAttempts++
		sentence.Completed = true
		progress.TotalScore += score
	}

	day := svc.touchDay(progress, now)
	day.SentencePracticeCompleted++
	day.TotalScore += score
	day.TimeSpent += shared.ActivityMinutes
	progress.TotalTimeSpent += shared.ActivityMinutes

	svc.updateStreak(progress, now)
	svc.evaluateAchievements(progress)
	svc.persist(progress)

	recordSentenceAttempt(isCorrect)
}

// UpdateStoryProgress records a reading report for a story. PagesRead is
// monotonic and the completion bonus is granted exactly once, on the
// incomplete-to-complete transition.
func (svc *ProgressService) UpdateStoryProgress(userName, storyID string, pagesRead, totalPages int) {
	progress := svc.GetUserProgress(userName)
	now := svc.now()

	story := progress.FindStory(storyID)
	if story == nil {
		progress.Stories = append(progress.Stories, model.StoryProgress{
			StoryID: storyID,
		})
		story = &progress.Stories[len(progress.Stories)-1]
	}

	wasCompleted := story.Completed

	if pagesRead > story.PagesRead {
		story.PagesRead = pagesRead
	}
	story.TotalPages = totalPages
	story.LastRead = now

	completedNow := false
	if story.PagesRead >= story.TotalPages {
		story.Completed = true
		if !wasCompleted {
			story.TimesRead++
			progress.TotalScore += shared.StoryCompletionBonus
			completedNow = true
		}
	}

	dayScore := shared.StoryReadScore
	if completedNow {
		dayScore = shared.StoryCompletionBonus
	}

	day := svc.touchDay(progress, now)
	day.StoriesRead++
	day.TotalScore += dayScore
	day.TimeSpent += shared.ActivityMinutes
	progress.TotalTimeSpent += shared.ActivityMinutes

	svc.updateStreak(progress, now)
	svc.evaluateAchievements(progress)
	svc.persist(progress)

	if completedNow {
		recordStoryCompletion()
	}
}

// UpdateKanjiGrade sets the user's reading-complexity level. No streak or
// achievement recomputation; changing a setting is not activity.
func (svc *ProgressService) UpdateKanjiGrade(userName string, grade int) {
	progress := svc.GetUserProgress(userName)
	progress.CurrentKanjiGrade = shared.ClampGrade(grade)
	svc.persist(progress)
}

// GetProgressStats derives the dashboard snapshot. Pure read, no
// persistence side effect.
func (svc *ProgressService) GetProgressStats(userName string) *dto.ProgressStatsResponse {
	progress := svc.GetUserProgress(userName)

	totalAttempts := lo.SumBy(progress.SentencePractice, func(s model.SentencePracticeProgress) int {
		return s.Attempts
	})
	correctAttempts := lo.SumBy(progress.SentencePractice, func(s model.SentencePracticeProgress) int {
		return s.CorrectAttempts
	})

	accuracy := 0
	if totalAttempts > 0 {
		accuracy = int(math.Round(float64(correctAttempts) * 100 / float64(totalAttempts)))
	}

	return &dto.ProgressStatsResponse{
		UserName: userName,
		CompletedSentences: lo.CountBy(progress.SentencePractice, func(s model.SentencePracticeProgress) bool {
			return s.Completed
		}),
		TotalSentenceAttempts: totalAttempts,
		Accuracy:              accuracy,
		CompletedStories: lo.CountBy(progress.Stories, func(s model.StoryProgress) bool {
			return s.Completed
		}),
		TotalStoriesRead: lo.SumBy(progress.Stories, func(s model.StoryProgress) int {
			return s.TimesRead
		}),
		ActivitiesLast7Days: svc.activitiesSince(progress, shared.DateKeyOffset(svc.now(), -6)),
		TotalScore:          progress.TotalScore,
		StreakDays:          progress.StreakDays,
		TotalTimeSpent:      progress.TotalTimeSpent,
		Achievements:        progress.Achievements,
		CurrentKanjiGrade:   progress.CurrentKanjiGrade,
	}
}

// GetWeeklyActivity returns the last 7 calendar days, oldest first,
// zero-filled for days without activity.
func (svc *ProgressService) GetWeeklyActivity(userName string) []dto.DailyActivityResponse {
	progress := svc.GetUserProgress(userName)
	now := svc.now()

	week := make([]dto.DailyActivityResponse, 0, 7)
	for offset := -6; offset <= 0; offset++ {
		key := shared.DateKeyOffset(now, offset)
		entry := dto.DailyActivityResponse{Date: key}
		if day := progress.FindDay(key); day != nil {
			entry.Sentences = day.SentencePracticeCompleted
			entry.Stories = day.StoriesRead
			entry.Score = day.TotalScore
			entry.TimeSpent = day.TimeSpent
			entry.TotalCount = day.SentencePracticeCompleted + day.StoriesRead
		}
		week = append(week, entry)
	}
	return week
}

// ClearProgress deletes one user's persisted record.
func (svc *ProgressService) ClearProgress(userName string) {
	if err := svc.store.DeleteValue(progressKey(userName)); err != nil {
		log.WithError(err).WithField("user", userName).Warn("Failed to clear progress")
	}
}

// ClearAllProgress deletes every persisted progress record.
func (svc *ProgressService) ClearAllProgress() {
	if err := svc.store.DeleteByPrefix(shared.ProgressKeyPrefix); err != nil {
		log.WithError(err).Warn("Failed to clear progress records")
	}
}

// ==================== INTERNALS ====================

// activitiesSince counts activities on days with key >= cutoff. Day keys are
// YYYY-MM-DD so string comparison is date comparison.
func (svc *ProgressService) activitiesSince(progress *model.UserProgress, cutoff string) int {
	total := 0
	for _, day := range progress.DailyProgress {
		if day.Date >= cutoff {
			total += day.SentencePracticeCompleted + day.StoriesRead
		}
	}
	return total
}

func (svc *ProgressService) touchDay(progress *model.UserProgress, now time.Time) *model.DailyProgress {
	key := shared.DateKey(now)
	if day := progress.FindDay(key); day != nil {
		return day
	}
	progress.DailyProgress = append(progress.DailyProgress, model.DailyProgress{Date: key})
	return &progress.DailyProgress[len(progress.DailyProgress)-1]
}

// updateStreak advances the consecutive-day counter. Repeat activity on the
// same day leaves the streak alone; exactly one day's gap extends it; a
// longer gap (or first-ever activity) resets it to 1.
func (svc *ProgressService) updateStreak(progress *model.UserProgress, now time.Time) {
	today := shared.DateKey(now)
	yesterday := shared.DateKeyOffset(now, -1)

	switch progress.LastActiveDate {
	case yesterday:
		progress.StreakDays++
	case today:
		// Same day, no change.
	default:
		progress.StreakDays = 1
	}

	progress.LastActiveDate = today
}

type achievementRule struct {
	ID       string
	Unlocked func(*model.UserProgress) bool
}

var achievementRules = []achievementRule{
	{
		ID: shared.AchievementFirstSentence,
		Unlocked: func(p *model.UserProgress) bool {
			return lo.SomeBy(p.SentencePractice, func(s model.SentencePracticeProgress) bool {
				return s.Completed
			})
		},
	},
	{
		ID: shared.AchievementFirstStory,
		Unlocked: func(p *model.UserProgress) bool {
			return lo.SomeBy(p.Stories, func(s model.StoryProgress) bool {
				return s.Completed
			})
		},
	},
	{
		ID: shared.AchievementSentenceMaster,
		Unlocked: func(p *model.UserProgress) bool {
			completed := lo.CountBy(p.SentencePractice, func(s model.SentencePracticeProgress) bool {
				return s.Completed
			})
			return completed >= shared.SentenceMasterThreshold
		},
	},
	{
		ID: shared.AchievementStoryReader,
		Unlocked: func(p *model.UserProgress) bool {
			if len(p.Stories) < shared.StoryReaderThreshold {
				return false
			}
			return lo.EveryBy(p.Stories, func(s model.StoryProgress) bool {
				return s.Completed
			})
		},
	},
	{
		ID: shared.AchievementWeekStreak,
		Unlocked: func(p *model.UserProgress) bool {
			return p.StreakDays >= shared.WeekStreakThreshold
		},
	},
	{
		ID: shared.AchievementScoreChampion,
		Unlocked: func(p *model.UserProgress) bool {
			return p.TotalScore >= shared.ScoreChampionThreshold
		},
	},
}

// evaluateAchievements re-checks every rule in full and appends the newly
// satisfied ones. Unlocked achievements are never revoked, even if a later
// state would no longer satisfy the rule.
func (svc *ProgressService) evaluateAchievements(progress *model.UserProgress) {
	for _, rule := range achievementRules {
		if progress.HasAchievement(rule.ID) {
			continue
		}
		if rule.Unlocked(progress) {
			progress.Achievements = append(progress.Achievements, rule.ID)
			recordAchievementUnlock(rule.ID)
			log.WithFields(log.Fields{
				"user":        progress.UserName,
				"achievement": rule.ID,
			}).Info("Achievement unlocked")
		}
	}
}
