package seeders

import (
	"log"

	"gorm.io/gorm"

	"github.com/kotoba-club/kotoba_api/model"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

// NewMainSeeder creates a new main seeder
func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs all seeders in the correct order
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	if err := s.migrate(); err != nil {
		log.Printf("Migration failed: %v", err)
		return err
	}

	wordSeeder := NewWordSeeder(s.db)
	if err := wordSeeder.SeedWords(); err != nil {
		log.Printf("Word seeding failed: %v", err)
		return err
	}

	sentenceSeeder := NewSentenceSeeder(s.db)
	if err := sentenceSeeder.SeedSentences(); err != nil {
		log.Printf("Sentence seeding failed: %v", err)
		return err
	}

	storySeeder := NewStorySeeder(s.db)
	if err := storySeeder.SeedStories(); err != nil {
		log.Printf("Story seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

func (s *MainSeeder) migrate() error {
	return s.db.AutoMigrate(
		&model.Word{},
		&model.Sentence{},
		&model.Story{},
		&model.StoryPage{},
	)
}

// SeedWordsOnly seeds only words
func (s *MainSeeder) SeedWordsOnly() error {
	if err := s.migrate(); err != nil {
		return err
	}
	wordSeeder := NewWordSeeder(s.db)
	return wordSeeder.SeedWords()
}

// SeedSentencesOnly seeds only sentences
func (s *MainSeeder) SeedSentencesOnly() error {
	if err := s.migrate(); err != nil {
		return err
	}
	sentenceSeeder := NewSentenceSeeder(s.db)
	return sentenceSeeder.SeedSentences()
}

// SeedStoriesOnly seeds only stories
func (s *MainSeeder) SeedStoriesOnly() error {
	if err := s.migrate(); err != nil {
		return err
	}
	storySeeder := NewStorySeeder(s.db)
	return storySeeder.SeedStories()
}
