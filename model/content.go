// model/content.go
package model

import (
	"encoding/json"
	"time"
)

// Word is one flashcard entry: an English/Japanese pair with readings,
// used by the flashcard and spelling games.
type Word struct {
	ID         string          `json:"id" gorm:"primaryKey"`
	English    string          `json:"english" gorm:"not null"`
	Japanese   string          `json:"japanese" gorm:"not null"`
	Kana       string          `json:"kana"`
	Romaji     string          `json:"romaji"`
	Category   string          `json:"category" gorm:"index"`
	Difficulty int             `json:"difficulty" gorm:"default:1"` // 1-5
	KanjiText  json.RawMessage `json:"kanji_text" gorm:"type:text"` // grade -> variant
	ImageKey   string          `json:"image_key"`
	AudioKey   string          `json:"audio_key"`
	IsActive   bool            `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Sentence is one sentence-ordering exercise. Tokens holds the Japanese
// sentence split into orderable chunks, in correct order.
type Sentence struct {
	ID         string          `json:"id" gorm:"primaryKey"`
	English    string          `json:"english" gorm:"not null"`
	Japanese   string          `json:"japanese" gorm:"not null"`
	Tokens     json.RawMessage `json:"tokens" gorm:"type:text"`     // JSON array of strings
	KanjiText  json.RawMessage `json:"kanji_text" gorm:"type:text"` // grade -> variant
	Category   string          `json:"category" gorm:"index"`
	Difficulty int             `json:"difficulty" gorm:"default:1"`
	Score      int             `json:"score" gorm:"default:50"` // awarded on a correct answer
	IsActive   bool            `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Story is an illustrated story whose title and description carry per-grade
// kanji variants resolved at read time.
type Story struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	Title       string          `json:"title" gorm:"not null"`
	TitleKanji  json.RawMessage `json:"title_kanji" gorm:"type:text"`
	Description string          `json:"description" gorm:"type:text"`
	DescKanji   json.RawMessage `json:"desc_kanji" gorm:"type:text"`
	Level       int             `json:"level" gorm:"default:1"`
	TotalPages  int             `json:"total_pages" gorm:"not null"`
	CoverKey    string          `json:"cover_key"`
	IsActive    bool            `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Pages []StoryPage `json:"pages" gorm:"foreignKey:StoryID"`
}

// StoryPage is one illustrated page of a story.
type StoryPage struct {
	ID        string          `json:"id" gorm:"primaryKey"`
	StoryID   string          `json:"story_id" gorm:"index;not null"`
	Page      int             `json:"page" gorm:"not null"` // 1-based
	Text      string          `json:"text" gorm:"type:text"`
	TextKanji json.RawMessage `json:"text_kanji" gorm:"type:text"`
	ImageKey  string          `json:"image_key"`
	AudioKey  string          `json:"audio_key"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// MediaAsset records an uploaded object (story illustration, word audio, ...)
// living in the media bucket.
type MediaAsset struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	ObjectKey   string    `json:"object_key" gorm:"uniqueIndex;not null"`
	Kind        string    `json:"kind"` // illustration, audio, cover
	OwnerType   string    `json:"owner_type"`
	OwnerID     string    `json:"owner_id" gorm:"index"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
