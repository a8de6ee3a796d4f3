// services/db.go
package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kotoba-club/kotoba_api/model"
)

type DbService struct {
	context.DefaultService
	db *gorm.DB

	driver   string
	database string
}

const DB_SVC = "db_svc"

// Id returns Service ID
func (ds DbService) Id() string {
	return DB_SVC
}

// Db Access to raw DbService db
func (ds DbService) Db() *gorm.DB {
	return ds.db
}

// Configure the service
func (ds *DbService) Configure(ctx *context.Context) error {
	ds.driver = os.Getenv("DB_DRIVER")
	if ds.driver == "" {
		ds.driver = "sqlite"
	}

	ds.database = os.Getenv("DB_DATABASE")
	if ds.database == "" {
		ds.database = "kotoba.db"
	}

	return ds.DefaultService.Configure(ctx)
}

// Start the service and open connection to the database
// Migrate any tables that have changed since last runtime
func (ds *DbService) Start() (err error) {
	var dialector gorm.Dialector
	switch ds.driver {
	case "postgres":
		dialector = postgres.Open(ds.database)
	case "sqlite":
		dialector = sqlite.Open(ds.database)
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", ds.driver)
	}

	ds.db, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return err
	}

	models := []interface{}{
		&model.KVRecord{},
		&model.Word{},
		&model.Sentence{},
		&model.Story{},
		&model.StoryPage{},
		&model.MediaAsset{},
	}

	err = ds.db.AutoMigrate(models...)
	if err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	log.Println("Database connected and migrated successfully")
	return nil
}

func (ds *DbService) Shutdown() {
}

// ==================== KV SLOT ====================

func (ds *DbService) GetValue(key string) (string, error) {
	var rec model.KVRecord
	if err := ds.db.First(&rec, "key = ?", key).Error; err != nil {
		return "", err
	}
	return rec.Value, nil
}

func (ds *DbService) SetValue(key, value string) error {
	rec := model.KVRecord{Key: key, Value: value}
	return ds.db.Save(&rec).Error
}

func (ds *DbService) DeleteValue(key string) error {
	return ds.db.Delete(&model.KVRecord{}, "key = ?", key).Error
}

func (ds *DbService) DeleteByPrefix(prefix string) error {
	return ds.db.Delete(&model.KVRecord{}, "key LIKE ?", prefix+"%").Error
}

// ==================== CONTENT CATALOG ====================

func (ds *DbService) GetWords(category string) ([]model.Word, error) {
	var words []model.Word
	q := ds.db.Where("is_active = ?", true)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Order("difficulty, english").Find(&words).Error
	return words, ds.HandleError(err)
}

func (ds *DbService) GetWord(id string) (*model.Word, error) {
	var word model.Word
	if err := ds.db.First(&word, "id = ?", id).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &word, nil
}

func (ds *DbService) CreateWord(word *model.Word) (*model.Word, error) {
	if err := ds.db.Create(word).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return word, nil
}

func (ds *DbService) UpdateWord(word *model.Word) error {
	return ds.HandleError(ds.db.Save(word).Error)
}

func (ds *DbService) GetSentences(category string) ([]model.Sentence, error) {
	var sentences []model.Sentence
	q := ds.db.Where("is_active = ?", true)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Order("difficulty").Find(&sentences).Error
	return sentences, ds.HandleError(err)
}

func (ds *DbService) GetSentence(id string) (*model.Sentence, error) {
	var sentence model.Sentence
	if err := ds.db.First(&sentence, "id = ?", id).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &sentence, nil
}

func (ds *DbService) CreateSentence(sentence *model.Sentence) (*model.Sentence, error) {
	if err := ds.db.Create(sentence).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return sentence, nil
}

func (ds *DbService) GetStories() ([]model.Story, error) {
	var stories []model.Story
	err := ds.db.Where("is_active = ?", true).Order("level").Find(&stories).Error
	return stories, ds.HandleError(err)
}

func (ds *DbService) GetStory(id string) (*model.Story, error) {
	var story model.Story
	err := ds.db.Preload("Pages", func(db *gorm.DB) *gorm.DB {
		return db.Order("story_pages.page")
	}).First(&story, "id = ?", id).Error
	if err != nil {
		return nil, ds.HandleError(err)
	}
	return &story, nil
}

func (ds *DbService) CreateStory(story *model.Story) (*model.Story, error) {
	if err := ds.db.Create(story).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return story, nil
}

func (ds *DbService) UpdateStory(story *model.Story) error {
	return ds.HandleError(ds.db.Save(story).Error)
}

func (ds *DbService) UpdateStoryPage(page *model.StoryPage) error {
	return ds.HandleError(ds.db.Save(page).Error)
}

func (ds *DbService) CountCatalog() (words, sentences, stories int64, err error) {
	if err = ds.db.Model(&model.Word{}).Where("is_active = ?", true).Count(&words).Error; err != nil {
		return
	}
	if err = ds.db.Model(&model.Sentence{}).Where("is_active = ?", true).Count(&sentences).Error; err != nil {
		return
	}
	err = ds.db.Model(&model.Story{}).Where("is_active = ?", true).Count(&stories).Error
	return
}

// ==================== MEDIA ASSETS ====================

func (ds *DbService) SaveMediaAsset(asset *model.MediaAsset) error {
	return ds.HandleError(ds.db.Save(asset).Error)
}

func (ds *DbService) GetMediaAsset(id string) (*model.MediaAsset, error) {
	var asset model.MediaAsset
	if err := ds.db.First(&asset, "id = ?", id).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &asset, nil
}

func (ds *DbService) GetMediaAssetsByOwner(ownerType, ownerID string) ([]model.MediaAsset, error) {
	var assets []model.MediaAsset
	err := ds.db.Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).Find(&assets).Error
	return assets, ds.HandleError(err)
}

func (ds *DbService) DeleteMediaAsset(id string) error {
	return ds.HandleError(ds.db.Delete(&model.MediaAsset{}, "id = ?", id).Error)
}

func (ds *DbService) GetMediaStatistics() (map[string]int64, error) {
	stats := map[string]int64{}
	rows, err := ds.db.Model(&model.MediaAsset{}).
		Select("kind, count(*) as cnt").
		Group("kind").Rows()
	if err != nil {
		return nil, ds.HandleError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var cnt int64
		if err := rows.Scan(&kind, &cnt); err != nil {
			return nil, err
		}
		stats[kind] = cnt
	}
	return stats, nil
}

// ==================== ERROR MAPPING ====================

func (ds *DbService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound // 404
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict // 409
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		statusCode = http.StatusBadRequest // 400
		errorType = "FOREIGN_KEY_VIOLATION"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError // 500
		errorType = "TRANSACTION_ERROR"
	default:
		// Check for SQLite-specific errors
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			statusCode = http.StatusConflict // 409
			errorType = "UNIQUE_CONSTRAINT"
		} else if strings.Contains(err.Error(), "no such table") {
			statusCode = http.StatusInternalServerError // 500
			errorType = "SCHEMA_ERROR"
		} else {
			statusCode = http.StatusInternalServerError // 500
			errorType = "INTERNAL_ERROR"
		}
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return fmt.Errorf("%s: %w", errorType, err)
}
