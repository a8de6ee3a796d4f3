package shared

import "time"

const (
	UserName = "user_name"

	// Kanji reading grades supported by the content catalog.
	MinKanjiGrade = 1
	MaxKanjiGrade = 6

	// Fixed score contributions of the scoring model. Sentence scores come
	// from the caller; story values are constants.
	StoryCompletionBonus = 50
	StoryReadScore       = 10

	// Every recorded activity counts as this many minutes of practice time.
	ActivityMinutes = 2

	// Per-user progress records are stored under ProgressKeyPrefix + userName.
	ProgressKeyPrefix = "progress:"

	CategoryAnimals   = "animals"
	CategoryFood      = "food"
	CategoryColors    = "colors"
	CategoryNumbers   = "numbers"
	CategoryEveryday  = "everyday"
	CategoryGreetings = "greetings"

	OrderHourly = "hourly"
	OrderDaily  = "daily"
	OrderRandom = "random"
	OrderFixed  = "fixed"
)

// Achievement identifiers. Once unlocked an ID is never removed from a
// user's record.
const (
	AchievementFirstSentence  = "first_sentence"
	AchievementFirstStory     = "first_story"
	AchievementSentenceMaster = "sentence_master"
	AchievementStoryReader    = "story_reader"
	AchievementWeekStreak     = "week_streak"
	AchievementScoreChampion  = "score_champion"
)

const (
	SentenceMasterThreshold = 10
	StoryReaderThreshold    = 6
	WeekStreakThreshold     = 7
	ScoreChampionThreshold  = 1000
)

const DateKeyLayout = "2006-01-02"

// DateKey returns the calendar-day key for t in the process-local zone.
// All day-boundary decisions (daily aggregates, streaks) go through here so
// the timezone policy lives in exactly one place.
func DateKey(t time.Time) string {
	return t.Local().Format(DateKeyLayout)
}

// DateKeyOffset returns the day key for t shifted by days calendar days.
func DateKeyOffset(t time.Time, days int) string {
	return DateKey(t.AddDate(0, 0, days))
}
