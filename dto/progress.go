package dto

// Progress DTOs

type SentenceAttemptRequest struct {
	SentenceID string `json:"sentence_id" validate:"required"`
	IsCorrect  bool   `json:"is_correct"`
	Score      int    `json:"score" validate:"gte=0"`
}

type StoryReadRequest struct {
	StoryID    string `json:"story_id" validate:"required"`
	PagesRead  int    `json:"pages_read" validate:"gte=0"`
	TotalPages int    `json:"total_pages" validate:"gt=0"`
}

type KanjiGradeRequest struct {
	Grade int `json:"grade" validate:"required,gte=1,lte=6"`
}

// ProgressStatsResponse is the derived snapshot the dashboard renders.
type ProgressStatsResponse struct {
	UserName              string   `json:"user_name"`
	TotalScore            int      `json:"total_score"`
	CompletedSentences    int      `json:"completed_sentences"`
	TotalSentenceAttempts int      `json:"total_sentence_attempts"`
	Accuracy              int      `json:"accuracy"` // rounded percentage
	CompletedStories      int      `json:"completed_stories"`
	TotalStoriesRead      int      `json:"total_stories_read"`
	StreakDays            int      `json:"streak_days"`
	TotalTimeSpent        int      `json:"total_time_spent"` // minutes
	ActivitiesLast7Days   int      `json:"activities_last_7_days"`
	Achievements          []string `json:"achievements"`
	CurrentKanjiGrade     int      `json:"current_kanji_grade"`
}

// DailyActivityResponse is one bar of the weekly activity chart.
type DailyActivityResponse struct {
	Date       string `json:"date"`
	Sentences  int    `json:"sentences"`
	Stories    int    `json:"stories"`
	Score      int    `json:"score"`
	TimeSpent  int    `json:"time_spent"`
	TotalCount int    `json:"total_count"`
}
