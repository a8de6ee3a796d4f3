package seeders

import (
	"encoding/json"
	"log"

	"gorm.io/gorm"

	"github.com/kotoba-club/kotoba_api/model"
)

// WordSeeder handles seeding the starter vocabulary
type WordSeeder struct {
	db *gorm.DB
}

// NewWordSeeder creates a new word seeder
func NewWordSeeder(db *gorm.DB) *WordSeeder {
	return &WordSeeder{db: db}
}

// SeedWords seeds the database with the starter flashcard vocabulary
func (s *WordSeeder) SeedWords() error {
	words := s.getStarterWords()

	for _, word := range words {
		var existing model.Word
		if err := s.db.Where("id = ?", word.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&word).Error; err != nil {
					log.Printf("Error creating word %s: %v", word.English, err)
					return err
				}
				log.Printf("Created word: %s", word.English)
			} else {
				log.Printf("Error checking word %s: %v", word.English, err)
				return err
			}
		} else {
			log.Printf("Word %s already exists, skipping", word.English)
		}
	}

	log.Println("Word seeding completed successfully")
	return nil
}

func kanjiJSON(m map[int]string) json.RawMessage {
	raw, _ := json.Marshal(m)
	return raw
}

// getStarterWords returns the starter vocabulary: animals, food and daily
// objects at the first two kanji grades.
func (s *WordSeeder) getStarterWords() []model.Word {
	return []model.Word{
		{
			ID:         "word_cat",
			English:    "cat",
			Japanese:   "ねこ",
			Kana:       "ねこ",
			Romaji:     "neko",
			Category:   "animals",
			Difficulty: 1,
			KanjiText:  kanjiJSON(map[int]string{2: "猫"}),
			IsActive:   true,
		},
		{
			ID:         "word_dog",
			English:    "dog",
			Japanese:   "いぬ",
			Kana:       "いぬ",
			Romaji:     "inu",
			Category:   "animals",
			Difficulty: 1,
			KanjiText:  kanjiJSON(map[int]string{1: "犬"}),
			IsActive:   true,
		},
		{
			ID:         "word_bird",
			English:    "bird",
			Japanese:   "とり",
			Kana:       "とり",
			Romaji:     "tori",
			Category:   "animals",
			Difficulty: 1,
			KanjiText:  kanjiJSON(map[int]string{2: "鳥"}),
			IsActive:   true,
		},
		{
			ID:         "word_fish",
			English:    "fish",
			Japanese:   "さかな",
			Kana:       "さかな",
			Romaji:     "sakana",
			Category:   "animals",
			Difficulty: 1,
			KanjiText:  kanjiJSON(map[int]string{2: "魚"}),
			IsActive:   true,
		},
		{
			ID:         "word_apple",
			English:    "apple",
			Japanese:   "りんご",
			Kana:       "りんご",
			Romaji:     "ringo",
			Category:   "food",
			Difficulty: 1,
			IsActive:   true,
		},
		{
			ID:         "word_rice",
			English:    "rice",
			Japanese:   "ごはん",
			Kana:       "ごはん",
			Romaji:     "gohan",
			Category:   "food",
			Difficulty: 1,
			KanjiText:  kanjiJSON(map[int]string{2: "ご飯"}),
			IsActive:   true,
		},
		{
			ID:         "word_water",
			English:    "water",
			Japanese:   "みず",
			Kana:       "みず",
			Romaji:     "mizu",
			Category:   "food",
			Difficulty: 1,
			KanjiText:  kanjiJSON(map[int]string{1: "水"}),
			IsActive:   true,
		},
		{
			ID:         "word_book",
			English:    "book",
			Japanese:   "ほん",
			Kana:       "ほん",
			Romaji:     "hon",
			Category:   "objects",
			Difficulty: 1,
			KanjiText:  kanjiJSON(map[int]string{1: "本"}),
			IsActive:   true,
		},
		{
			ID:         "word_school",
			English:    "school",
			Japanese:   "がっこう",
			Kana:       "がっこう",
			Romaji:     "gakkou",
			Category:   "places",
			Difficulty: 2,
			KanjiText:  kanjiJSON(map[int]string{1: "学校"}),
			IsActive:   true,
		},
		{
			ID:         "word_friend",
			English:    "friend",
			Japanese:   "ともだち",
			Kana:       "ともだち",
			Romaji:     "tomodachi",
			Category:   "people",
			Difficulty: 2,
			KanjiText:  kanjiJSON(map[int]string{2: "友だち", 3: "友達"}),
			IsActive:   true,
		},
		{
			ID:         "word_sun",
			English:    "sun",
			Japanese:   "たいよう",
			Kana:       "たいよう",
			Romaji:     "taiyou",
			Category:   "nature",
			Difficulty: 2,
			KanjiText:  kanjiJSON(map[int]string{3: "太陽"}),
			IsActive:   true,
		},
		{
			ID:         "word_moon",
			English:    "moon",
			Japanese:   "つき",
			Kana:       "つき",
			Romaji:     "tsuki",
			Category:   "nature",
			Difficulty: 1,
			KanjiText:  kanjiJSON(map[int]string{1: "月"}),
			IsActive:   true,
		},
	}
}
