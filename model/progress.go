// model/progress.go
package model

import "time"

// UserProgress is the durable learning-progress record for one user. It is
// persisted as a single JSON document under a per-user key in the kv_records
// table, loaded, mutated in memory and written straight back on every update.
type UserProgress struct {
	UserName          string                     `json:"user_name"`
	CurrentKanjiGrade int                        `json:"current_kanji_grade"`
	TotalScore        int                        `json:"total_score"`
	SentencePractice  []SentencePracticeProgress `json:"sentence_practice"`
	Stories           []StoryProgress            `json:"stories"`
	DailyProgress     []DailyProgress            `json:"daily_progress"`
	Achievements      []string                   `json:"achievements"`
	TotalTimeSpent    int                        `json:"total_time_spent"` // minutes
	StreakDays        int                        `json:"streak_days"`
	LastActiveDate    string                     `json:"last_active_date"` // YYYY-MM-DD
}

// SentencePracticeProgress tracks one sentence across all attempts.
// BestScore only ever moves up, regardless of whether the attempt that set it
// was correct.
type SentencePracticeProgress struct {
	SentenceID      string    `json:"sentence_id"`
	Completed       bool      `json:"completed"`
	Attempts        int       `json:"attempts"`
	CorrectAttempts int       `json:"correct_attempts"`
	LastAttempted   time.Time `json:"last_attempted"`
	BestScore       int       `json:"best_score"`
}

// StoryProgress tracks one story. PagesRead is monotonic; TimesRead counts
// incomplete-to-complete transitions only, so re-reporting a finished story
// never inflates it.
type StoryProgress struct {
	StoryID    string    `json:"story_id"`
	Completed  bool      `json:"completed"`
	PagesRead  int       `json:"pages_read"`
	TotalPages int       `json:"total_pages"`
	LastRead   time.Time `json:"last_read"`
	TimesRead  int       `json:"times_read"`
}

// DailyProgress aggregates one calendar day of activity.
// SentencePracticeCompleted keeps its historical name but counts every
// submitted attempt, not only correct ones.
type DailyProgress struct {
	Date                      string `json:"date"` // YYYY-MM-DD
	SentencePracticeCompleted int    `json:"sentence_practice_completed"`
	StoriesRead               int    `json:"stories_read"`
	TotalScore                int    `json:"total_score"`
	TimeSpent                 int    `json:"time_spent"` // minutes
}

// FindSentence returns the record for sentenceID, or nil.
func (p *UserProgress) FindSentence(sentenceID string) *SentencePracticeProgress {
	for i := range p.SentencePractice {
		if p.SentencePractice[i].SentenceID == sentenceID {
			return &p.SentencePractice[i]
		}
	}
	return nil
}

// FindStory returns the record for storyID, or nil.
func (p *UserProgress) FindStory(storyID string) *StoryProgress {
	for i := range p.Stories {
		if p.Stories[i].StoryID == storyID {
			return &p.Stories[i]
		}
	}
	return nil
}

// FindDay returns the daily aggregate for the given day key, or nil.
func (p *UserProgress) FindDay(date string) *DailyProgress {
	for i := range p.DailyProgress {
		if p.DailyProgress[i].Date == date {
			return &p.DailyProgress[i]
		}
	}
	return nil
}

// HasAchievement reports whether id is already unlocked.
func (p *UserProgress) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a == id {
			return true
		}
	}
	return false
}
