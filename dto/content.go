package dto

// Content DTOs

type WordResponse struct {
	ID         string `json:"id"`
	English    string `json:"english"`
	Japanese   string `json:"japanese"`
	Kana       string `json:"kana"`
	Romaji     string `json:"romaji"`
	Category   string `json:"category"`
	Difficulty int    `json:"difficulty"`
	ImageURL   string `json:"image_url,omitempty"`
	AudioURL   string `json:"audio_url,omitempty"`
}

type WordCollectionResponse struct {
	Words []WordResponse `json:"words"`
	Total int            `json:"total"`
	Order string         `json:"order"`
	Seed  int64          `json:"seed"`
}

// SpellingResponse is one round of the spelling game: the word with some
// letters masked out plus a shuffled bank of the missing letters.
type SpellingResponse struct {
	WordID     string   `json:"word_id"`
	Japanese   string   `json:"japanese"`
	Masked     string   `json:"masked"`
	LetterBank []string `json:"letter_bank"`
	AudioURL   string   `json:"audio_url,omitempty"`
}

type SentenceResponse struct {
	ID         string `json:"id"`
	English    string `json:"english"`
	Japanese   string `json:"japanese"`
	Category   string `json:"category"`
	Difficulty int    `json:"difficulty"`
	Score      int    `json:"score"`
}

type SentenceCollectionResponse struct {
	Sentences []SentenceResponse `json:"sentences"`
	Total     int                `json:"total"`
}

// SentencePracticeResponse is one sentence-ordering round: the tokens in a
// seeded shuffled order. TokenCount lets the client render answer slots
// without revealing the correct ordering.
type SentencePracticeResponse struct {
	SentenceID string   `json:"sentence_id"`
	English    string   `json:"english"`
	Tokens     []string `json:"tokens"`
	TokenCount int      `json:"token_count"`
	Seed       int64    `json:"seed"`
	Score      int      `json:"score"`
}

type StorySummaryResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Level       int    `json:"level"`
	TotalPages  int    `json:"total_pages"`
	CoverURL    string `json:"cover_url,omitempty"`
}

type StoryCollectionResponse struct {
	Stories []StorySummaryResponse `json:"stories"`
	Total   int                    `json:"total"`
}

type StoryPageResponse struct {
	Page     int    `json:"page"`
	Text     string `json:"text"`
	ImageURL string `json:"image_url,omitempty"`
	AudioURL string `json:"audio_url,omitempty"`
}

// StoryResponse is a full story with every text field already resolved for
// the requested kanji grade.
type StoryResponse struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Level       int                 `json:"level"`
	KanjiGrade  int                 `json:"kanji_grade"`
	TotalPages  int                 `json:"total_pages"`
	CoverURL    string              `json:"cover_url,omitempty"`
	Pages       []StoryPageResponse `json:"pages"`
}

// Admin create requests.

type CreateWordRequest struct {
	English    string         `json:"english" validate:"required"`
	Japanese   string         `json:"japanese" validate:"required"`
	Kana       string         `json:"kana"`
	Romaji     string         `json:"romaji"`
	Category   string         `json:"category" validate:"required"`
	Difficulty int            `json:"difficulty" validate:"omitempty,gte=1,lte=5"`
	KanjiText  map[int]string `json:"kanji_text"`
}

type CreateSentenceRequest struct {
	English    string         `json:"english" validate:"required"`
	Japanese   string         `json:"japanese" validate:"required"`
	Tokens     []string       `json:"tokens" validate:"required,min=2"`
	KanjiText  map[int]string `json:"kanji_text"`
	Category   string         `json:"category" validate:"required"`
	Difficulty int            `json:"difficulty" validate:"omitempty,gte=1,lte=5"`
	Score      int            `json:"score" validate:"gte=0"`
}

type CreateStoryPageRequest struct {
	Page      int            `json:"page" validate:"gte=1"`
	Text      string         `json:"text" validate:"required"`
	TextKanji map[int]string `json:"text_kanji"`
}

type CreateStoryRequest struct {
	Title       string                   `json:"title" validate:"required"`
	TitleKanji  map[int]string           `json:"title_kanji"`
	Description string                   `json:"description"`
	DescKanji   map[int]string           `json:"desc_kanji"`
	Level       int                      `json:"level" validate:"omitempty,gte=1,lte=6"`
	Pages       []CreateStoryPageRequest `json:"pages" validate:"required,min=1,dive"`
}

type SentenceAnswerRequest struct {
	Tokens []string `json:"tokens" validate:"required,min=1"`
}

type SentenceAnswerResponse struct {
	SentenceID string `json:"sentence_id"`
	Correct    bool   `json:"correct"`
	Score      int    `json:"score"`
}
