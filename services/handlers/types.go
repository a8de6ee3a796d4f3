package handlers

import (
	"mime/multipart"

	"github.com/kotoba-club/kotoba_api/dto"
)

type ProgressServiceInterface interface {
	GetProgressStats(userName string) *dto.ProgressStatsResponse
	GetWeeklyActivity(userName string) []dto.DailyActivityResponse
	RecordSentenceAttempt(userName, sentenceID string, isCorrect bool, score int)
	RecordStoryRead(userName, storyID string, pagesRead, totalPages int)
	SetKanjiGrade(userName string, grade int)
	ClearProgress(userName string)
	ClearAllProgress()
}

type ContentServiceInterface interface {
	GetWords(category, order string, fixedSeed int64) (*dto.WordCollectionResponse, error)
	GetSpelling(wordID string, fixedSeed int64) (*dto.SpellingResponse, error)
	GetSentences(category string) (*dto.SentenceCollectionResponse, error)
	GetSentencePractice(sentenceID, order string, fixedSeed int64) (*dto.SentencePracticeResponse, error)
	CheckSentenceAnswer(sentenceID string, answer []string) (bool, int, error)
	GetStories(grade int) (*dto.StoryCollectionResponse, error)
	GetStory(storyID string, grade int) (*dto.StoryResponse, error)
	CreateWord(req dto.CreateWordRequest) (*dto.WordResponse, error)
	CreateSentence(req dto.CreateSentenceRequest) (*dto.SentenceResponse, error)
	CreateStory(req dto.CreateStoryRequest) (*dto.StoryResponse, error)
}

type MediaServiceInterface interface {
	UploadIllustration(storyID string, page int, file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
	UploadCover(storyID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
	UploadAudio(ownerType, ownerID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
	GetStoryMedia(storyID string) (*dto.StoryMediaResponse, error)
	DeleteAsset(assetID string) error
	GetMediaStatistics() (map[string]int64, error)
}
