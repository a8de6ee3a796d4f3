package seeders

import (
	"log"

	"gorm.io/gorm"

	"github.com/kotoba-club/kotoba_api/model"
)

// StorySeeder handles seeding the starter stories
type StorySeeder struct {
	db *gorm.DB
}

// NewStorySeeder creates a new story seeder
func NewStorySeeder(db *gorm.DB) *StorySeeder {
	return &StorySeeder{db: db}
}

// SeedStories seeds the database with the starter illustrated stories
func (s *StorySeeder) SeedStories() error {
	stories := s.getStarterStories()

	for _, story := range stories {
		var existing model.Story
		if err := s.db.Where("id = ?", story.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&story).Error; err != nil {
					log.Printf("Error creating story %s: %v", story.Title, err)
					return err
				}
				log.Printf("Created story: %s", story.Title)
			} else {
				log.Printf("Error checking story %s: %v", story.Title, err)
				return err
			}
		} else {
			log.Printf("Story %s already exists, skipping", story.Title)
		}
	}

	log.Println("Story seeding completed successfully")
	return nil
}

// getStarterStories returns the starter stories with per-grade kanji
// variants on every text field.
func (s *StorySeeder) getStarterStories() []model.Story {
	return []model.Story{
		{
			ID:          "story_hungry_cat",
			Title:       "おなかのすいたねこ",
			TitleKanji:  kanjiJSON(map[int]string{2: "おなかのすいた猫"}),
			Description: "A little cat looks for something to eat.",
			Level:       1,
			TotalPages:  3,
			IsActive:    true,
			Pages: []model.StoryPage{
				{
					ID:        "story_hungry_cat_p1",
					StoryID:   "story_hungry_cat",
					Page:      1,
					Text:      "ねこのミケはおなかがすきました。",
					TextKanji: kanjiJSON(map[int]string{2: "猫のミケはおなかがすきました。"}),
				},
				{
					ID:        "story_hungry_cat_p2",
					StoryID:   "story_hungry_cat",
					Page:      2,
					Text:      "ミケはさかなをみつけました。",
					TextKanji: kanjiJSON(map[int]string{2: "ミケは魚を見つけました。", 1: "ミケはさかなを見つけました。"}),
				},
				{
					ID:        "story_hungry_cat_p3",
					StoryID:   "story_hungry_cat",
					Page:      3,
					Text:      "ミケはさかなをたべて、ねむりました。",
					TextKanji: kanjiJSON(map[int]string{2: "ミケは魚を食べて、眠りました。", 1: "ミケはさかなを食べて、ねむりました。"}),
				},
			},
		},
		{
			ID:          "story_moon_rabbit",
			Title:       "つきのうさぎ",
			TitleKanji:  kanjiJSON(map[int]string{1: "月のうさぎ"}),
			Description: "A rabbit who lives on the moon makes rice cakes.",
			Level:       2,
			TotalPages:  3,
			IsActive:    true,
			Pages: []model.StoryPage{
				{
					ID:        "story_moon_rabbit_p1",
					StoryID:   "story_moon_rabbit",
					Page:      1,
					Text:      "つきにうさぎがすんでいます。",
					TextKanji: kanjiJSON(map[int]string{1: "月にうさぎがすんでいます。", 3: "月にうさぎが住んでいます。"}),
				},
				{
					ID:        "story_moon_rabbit_p2",
					StoryID:   "story_moon_rabbit",
					Page:      2,
					Text:      "うさぎはまいばんおもちをつくります。",
					TextKanji: kanjiJSON(map[int]string{2: "うさぎは毎晩おもちを作ります。"}),
				},
				{
					ID:        "story_moon_rabbit_p3",
					StoryID:   "story_moon_rabbit",
					Page:      3,
					Text:      "よるのそらをみあげると、うさぎがみえますよ。",
					TextKanji: kanjiJSON(map[int]string{1: "夜のそらを見上げると、うさぎが見えますよ。", 2: "夜の空を見上げると、うさぎが見えますよ。"}),
				},
			},
		},
	}
}
