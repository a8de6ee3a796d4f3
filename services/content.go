// services/content.go
package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/kotoba-club/kotoba_api/dto"
	"github.com/kotoba-club/kotoba_api/model"
	"github.com/kotoba-club/kotoba_api/shared"
)

// ContentService serves the learning catalog: flashcard words, spelling
// rounds, sentence-ordering exercises and grade-resolved stories. Display
// orderings come from the seeded shuffle so an order is stable within its
// seed window.
type ContentService struct {
	context.DefaultService

	sqlSvc   *DbService
	mediaSvc *MediaService

	now func() time.Time
}

const CONTENT_SVC = "content_svc"

func (svc ContentService) Id() string {
	return CONTENT_SVC
}

func (svc *ContentService) Configure(ctx *context.Context) error {
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *ContentService) Start() error {
	svc.sqlSvc = svc.Service(DB_SVC).(*DbService)
	svc.mediaSvc = svc.Service(MEDIA_SVC).(*MediaService)
	return nil
}

// pickSeed maps an order name to a concrete shuffle seed.
func (svc *ContentService) pickSeed(order string, fixedSeed int64) (string, int64) {
	switch order {
	case shared.OrderHourly:
		return order, shared.HourlySeed(svc.now())
	case shared.OrderRandom:
		return order, shared.RandomSeed()
	case shared.OrderFixed:
		return order, fixedSeed
	default:
		return shared.OrderDaily, shared.DailySeed(svc.now())
	}
}

// ==================== WORD METHODS ====================

func (svc *ContentService) GetWords(category, order string, fixedSeed int64) (*dto.WordCollectionResponse, error) {
	words, err := svc.sqlSvc.GetWords(category)
	if err != nil {
		return nil, err
	}

	order, seed := svc.pickSeed(order, fixedSeed)
	shuffled := shared.Shuffle(words, seed)

	responses := make([]dto.WordResponse, len(shuffled))
	for i, word := range shuffled {
		responses[i] = svc.mapWordToResponse(&word)
	}

	return &dto.WordCollectionResponse{
		Words: responses,
		Total: len(responses),
		Order: order,
		Seed:  seed,
	}, nil
}

func (svc *ContentService) mapWordToResponse(word *model.Word) dto.WordResponse {
	return dto.WordResponse{
		ID:         word.ID,
		English:    word.English,
		Japanese:   word.Japanese,
		Kana:       word.Kana,
		Romaji:     word.Romaji,
		Category:   word.Category,
		Difficulty: word.Difficulty,
		ImageURL:   svc.mediaSvc.ResolveURL(word.ImageKey),
		AudioURL:   svc.mediaSvc.ResolveURL(word.AudioKey),
	}
}

// GetSpelling builds one spelling round for a word: roughly half the kana
// are masked out and offered back as a shuffled letter bank. The same seed
// always yields the same round.
func (svc *ContentService) GetSpelling(wordID string, fixedSeed int64) (*dto.SpellingResponse, error) {
	word, err := svc.sqlSvc.GetWord(wordID)
	if err != nil {
		return nil, shared.NewNotFoundError(err, "Word not found")
	}

	target := word.Kana
	if target == "" {
		target = word.Japanese
	}

	runes := []rune(target)
	if len(runes) == 0 {
		return nil, shared.NewBadRequestError(nil, "Word has no spellable text")
	}

	indices := make([]int, len(runes))
	for i := range indices {
		indices[i] = i
	}

	maskCount := (len(runes) + 1) / 2
	masked := shared.Shuffle(indices, fixedSeed)[:maskCount]

	hidden := make(map[int]bool, maskCount)
	bank := make([]string, 0, maskCount)
	for _, idx := range masked {
		hidden[idx] = true
	}

	display := make([]rune, len(runes))
	for i, r := range runes {
		if hidden[i] {
			display[i] = '＿'
			bank = append(bank, string(r))
		} else {
			display[i] = r
		}
	}

	return &dto.SpellingResponse{
		WordID:     word.ID,
		Japanese:   word.Japanese,
		Masked:     string(display),
		LetterBank: shared.Shuffle(bank, fixedSeed+1),
		AudioURL:   svc.mediaSvc.ResolveURL(word.AudioKey),
	}, nil
}

// ==================== SENTENCE METHODS ====================

func (svc *ContentService) GetSentences(category string) (*dto.SentenceCollectionResponse, error) {
	sentences, err := svc.sqlSvc.GetSentences(category)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SentenceResponse, len(sentences))
	for i, sentence := range sentences {
		responses[i] = dto.SentenceResponse{
			ID:         sentence.ID,
			English:    sentence.English,
			Japanese:   sentence.Japanese,
			Category:   sentence.Category,
			Difficulty: sentence.Difficulty,
			Score:      sentence.Score,
		}
	}

	return &dto.SentenceCollectionResponse{
		Sentences: responses,
		Total:     len(responses),
	}, nil
}

// GetSentencePractice returns one ordering round: the sentence tokens in a
// seeded shuffled order. The correct ordering never leaves the server.
func (svc *ContentService) GetSentencePractice(sentenceID, order string, fixedSeed int64) (*dto.SentencePracticeResponse, error) {
	sentence, err := svc.sqlSvc.GetSentence(sentenceID)
	if err != nil {
		return nil, shared.NewNotFoundError(err, "Sentence not found")
	}

	var tokens []string
	if sentence.Tokens != nil {
		if err := json.Unmarshal(sentence.Tokens, &tokens); err != nil {
			log.Printf("Failed to unmarshal tokens for sentence %s: %v", sentence.ID, err)
			return nil, shared.NewInternalError(err, "Sentence tokens unreadable")
		}
	}

	_, seed := svc.pickSeed(order, fixedSeed)

	return &dto.SentencePracticeResponse{
		SentenceID: sentence.ID,
		English:    sentence.English,
		Tokens:     shared.Shuffle(tokens, seed),
		TokenCount: len(tokens),
		Seed:       seed,
		Score:      sentence.Score,
	}, nil
}

// CheckSentenceAnswer compares a submitted token ordering against the
// stored one.
func (svc *ContentService) CheckSentenceAnswer(sentenceID string, answer []string) (bool, int, error) {
	sentence, err := svc.sqlSvc.GetSentence(sentenceID)
	if err != nil {
		return false, 0, shared.NewNotFoundError(err, "Sentence not found")
	}

	var tokens []string
	if err := json.Unmarshal(sentence.Tokens, &tokens); err != nil {
		return false, 0, shared.NewInternalError(err, "Sentence tokens unreadable")
	}

	if len(answer) != len(tokens) {
		return false, 0, nil
	}
	for i := range tokens {
		if answer[i] != tokens[i] {
			return false, 0, nil
		}
	}
	return true, sentence.Score, nil
}

// ==================== STORY METHODS ====================

func (svc *ContentService) GetStories(grade int) (*dto.StoryCollectionResponse, error) {
	stories, err := svc.sqlSvc.GetStories()
	if err != nil {
		return nil, err
	}

	grade = shared.ClampGrade(grade)
	responses := make([]dto.StorySummaryResponse, len(stories))
	for i, story := range stories {
		responses[i] = dto.StorySummaryResponse{
			ID:          story.ID,
			Title:       kanjiMap(story.TitleKanji).Resolve(grade, story.Title),
			Description: kanjiMap(story.DescKanji).Resolve(grade, story.Description),
			Level:       story.Level,
			TotalPages:  story.TotalPages,
			CoverURL:    svc.mediaSvc.ResolveURL(story.CoverKey),
		}
	}

	return &dto.StoryCollectionResponse{
		Stories: responses,
		Total:   len(responses),
	}, nil
}

// GetStory returns a full story with every text field resolved down to the
// requested kanji grade.
func (svc *ContentService) GetStory(storyID string, grade int) (*dto.StoryResponse, error) {
	story, err := svc.sqlSvc.GetStory(storyID)
	if err != nil {
		return nil, shared.NewNotFoundError(err, "Story not found")
	}

	grade = shared.ClampGrade(grade)

	pages := make([]dto.StoryPageResponse, len(story.Pages))
	for i, page := range story.Pages {
		pages[i] = dto.StoryPageResponse{
			Page:     page.Page,
			Text:     kanjiMap(page.TextKanji).Resolve(grade, page.Text),
			ImageURL: svc.mediaSvc.ResolveURL(page.ImageKey),
			AudioURL: svc.mediaSvc.ResolveURL(page.AudioKey),
		}
	}

	return &dto.StoryResponse{
		ID:          story.ID,
		Title:       kanjiMap(story.TitleKanji).Resolve(grade, story.Title),
		Description: kanjiMap(story.DescKanji).Resolve(grade, story.Description),
		Level:       story.Level,
		KanjiGrade:  grade,
		TotalPages:  story.TotalPages,
		CoverURL:    svc.mediaSvc.ResolveURL(story.CoverKey),
		Pages:       pages,
	}, nil
}

// kanjiMap decodes a stored per-grade text map; unreadable maps resolve as
// empty so the plain-text fallback wins.
func kanjiMap(raw json.RawMessage) shared.KanjiTextMap {
	if raw == nil {
		return nil
	}
	var m shared.KanjiTextMap
	if err := json.Unmarshal(raw, &m); err != nil {
		log.Printf("Failed to unmarshal kanji text map: %v", err)
		return nil
	}
	return m
}

func marshalKanjiMap(m map[int]string) json.RawMessage {
	if len(m) == 0 {
		return nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	return raw
}

// ==================== ADMIN METHODS ====================

func (svc *ContentService) CreateWord(req dto.CreateWordRequest) (*dto.WordResponse, error) {
	id, _ := uuid.NewV7()
	word := &model.Word{
		ID:         id.String(),
		English:    req.English,
		Japanese:   req.Japanese,
		Kana:       req.Kana,
		Romaji:     req.Romaji,
		Category:   req.Category,
		Difficulty: defaultDifficulty(req.Difficulty),
		KanjiText:  marshalKanjiMap(req.KanjiText),
		IsActive:   true,
	}

	created, err := svc.sqlSvc.CreateWord(word)
	if err != nil {
		return nil, err
	}

	response := svc.mapWordToResponse(created)
	return &response, nil
}

func (svc *ContentService) CreateSentence(req dto.CreateSentenceRequest) (*dto.SentenceResponse, error) {
	tokens, err := json.Marshal(req.Tokens)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tokens: %v", err)
	}

	score := req.Score
	if score == 0 {
		score = 50
	}

	id, _ := uuid.NewV7()
	sentence := &model.Sentence{
		ID:         id.String(),
		English:    req.English,
		Japanese:   req.Japanese,
		Tokens:     tokens,
		KanjiText:  marshalKanjiMap(req.KanjiText),
		Category:   req.Category,
		Difficulty: defaultDifficulty(req.Difficulty),
		Score:      score,
		IsActive:   true,
	}

	created, err := svc.sqlSvc.CreateSentence(sentence)
	if err != nil {
		return nil, err
	}

	return &dto.SentenceResponse{
		ID:         created.ID,
		English:    created.English,
		Japanese:   created.Japanese,
		Category:   created.Category,
		Difficulty: created.Difficulty,
		Score:      created.Score,
	}, nil
}

func (svc *ContentService) CreateStory(req dto.CreateStoryRequest) (*dto.StoryResponse, error) {
	storyID, _ := uuid.NewV7()

	pages := make([]model.StoryPage, len(req.Pages))
	for i, page := range req.Pages {
		pageID, _ := uuid.NewV7()
		pages[i] = model.StoryPage{
			ID:        pageID.String(),
			StoryID:   storyID.String(),
			Page:      page.Page,
			Text:      page.Text,
			TextKanji: marshalKanjiMap(page.TextKanji),
		}
	}

	level := req.Level
	if level == 0 {
		level = 1
	}

	story := &model.Story{
		ID:          storyID.String(),
		Title:       req.Title,
		TitleKanji:  marshalKanjiMap(req.TitleKanji),
		Description: req.Description,
		DescKanji:   marshalKanjiMap(req.DescKanji),
		Level:       level,
		TotalPages:  len(req.Pages),
		IsActive:    true,
		Pages:       pages,
	}

	created, err := svc.sqlSvc.CreateStory(story)
	if err != nil {
		return nil, err
	}

	return svc.GetStory(created.ID, shared.MaxKanjiGrade)
}

func defaultDifficulty(d int) int {
	if d == 0 {
		return 1
	}
	return d
}
