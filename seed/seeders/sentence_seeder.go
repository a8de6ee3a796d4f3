package seeders

import (
	"encoding/json"
	"log"

	"gorm.io/gorm"

	"github.com/kotoba-club/kotoba_api/model"
)

// SentenceSeeder handles seeding the sentence-ordering exercises
type SentenceSeeder struct {
	db *gorm.DB
}

// NewSentenceSeeder creates a new sentence seeder
func NewSentenceSeeder(db *gorm.DB) *SentenceSeeder {
	return &SentenceSeeder{db: db}
}

// SeedSentences seeds the database with starter sentence exercises
func (s *SentenceSeeder) SeedSentences() error {
	sentences := s.getStarterSentences()

	for _, sentence := range sentences {
		var existing model.Sentence
		if err := s.db.Where("id = ?", sentence.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&sentence).Error; err != nil {
					log.Printf("Error creating sentence %s: %v", sentence.English, err)
					return err
				}
				log.Printf("Created sentence: %s", sentence.English)
			} else {
				log.Printf("Error checking sentence %s: %v", sentence.English, err)
				return err
			}
		} else {
			log.Printf("Sentence %s already exists, skipping", sentence.English)
		}
	}

	log.Println("Sentence seeding completed successfully")
	return nil
}

func tokensJSON(tokens []string) json.RawMessage {
	raw, _ := json.Marshal(tokens)
	return raw
}

// getStarterSentences returns short everyday sentences split into
// orderable tokens, in correct order.
func (s *SentenceSeeder) getStarterSentences() []model.Sentence {
	return []model.Sentence{
		{
			ID:         "sentence_cat_cute",
			English:    "The cat is cute",
			Japanese:   "ねこはかわいいです",
			Tokens:     tokensJSON([]string{"ねこ", "は", "かわいい", "です"}),
			KanjiText:  kanjiJSON(map[int]string{2: "猫はかわいいです"}),
			Category:   "animals",
			Difficulty: 1,
			Score:      50,
			IsActive:   true,
		},
		{
			ID:         "sentence_eat_apple",
			English:    "I eat an apple",
			Japanese:   "わたしはりんごをたべます",
			Tokens:     tokensJSON([]string{"わたし", "は", "りんご", "を", "たべます"}),
			KanjiText:  kanjiJSON(map[int]string{2: "私はりんごを食べます"}),
			Category:   "food",
			Difficulty: 1,
			Score:      50,
			IsActive:   true,
		},
		{
			ID:         "sentence_go_school",
			English:    "I go to school",
			Japanese:   "がっこうへいきます",
			Tokens:     tokensJSON([]string{"がっこう", "へ", "いきます"}),
			KanjiText:  kanjiJSON(map[int]string{1: "学校へ行きます"}),
			Category:   "places",
			Difficulty: 1,
			Score:      50,
			IsActive:   true,
		},
		{
			ID:         "sentence_dog_runs",
			English:    "The dog runs fast",
			Japanese:   "いぬははやくはしります",
			Tokens:     tokensJSON([]string{"いぬ", "は", "はやく", "はしります"}),
			KanjiText:  kanjiJSON(map[int]string{2: "犬は速く走ります"}),
			Category:   "animals",
			Difficulty: 2,
			Score:      60,
			IsActive:   true,
		},
		{
			ID:         "sentence_read_book",
			English:    "I read a book with my friend",
			Japanese:   "ともだちとほんをよみます",
			Tokens:     tokensJSON([]string{"ともだち", "と", "ほん", "を", "よみます"}),
			KanjiText:  kanjiJSON(map[int]string{2: "友だちと本を読みます", 3: "友達と本を読みます"}),
			Category:   "daily",
			Difficulty: 2,
			Score:      60,
			IsActive:   true,
		},
		{
			ID:         "sentence_moon_pretty",
			English:    "The moon is pretty tonight",
			Japanese:   "こんばんはつきがきれいです",
			Tokens:     tokensJSON([]string{"こんばん", "は", "つき", "が", "きれい", "です"}),
			KanjiText:  kanjiJSON(map[int]string{1: "こんばんは月がきれいです", 3: "今晩は月がきれいです"}),
			Category:   "nature",
			Difficulty: 3,
			Score:      70,
			IsActive:   true,
		},
	}
}
