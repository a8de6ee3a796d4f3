package services

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/kotoba-club/kotoba_api/dto"
	"github.com/kotoba-club/kotoba_api/model"
	"github.com/kotoba-club/kotoba_api/shared"
)

// MediaService manages uploaded story illustrations, cover art and
// pronunciation audio: validation, object-store placement and the asset
// records that tie objects back to their owning content.
type MediaService struct {
	context.DefaultService
	sqlSvc   *DbService
	minioSvc *MinIOService

	urlExpiry time.Duration
}

const MEDIA_SVC = "media_svc"

func (svc MediaService) Id() string {
	return MEDIA_SVC
}

func (svc *MediaService) Configure(ctx *context.Context) error {
	svc.urlExpiry = 24 * time.Hour
	return svc.DefaultService.Configure(ctx)
}

func (svc *MediaService) Start() error {
	svc.sqlSvc = svc.Service(DB_SVC).(*DbService)
	svc.minioSvc = svc.Service(MINIO_SVC).(*MinIOService)
	return nil
}

// ==================== MEDIA UPLOAD METHODS ====================

// UploadIllustration stores a page illustration and points the story page at it.
func (svc *MediaService) UploadIllustration(storyID string, page int, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	if !svc.isValidImageFile(file.Filename) {
		return nil, shared.NewBadRequestError(nil, "Invalid image file format. Supported: JPG, PNG, WEBP")
	}

	if file.Size > 5*1024*1024 {
		return nil, shared.NewBadRequestError(nil, "Image file too large. Maximum size: 5MB")
	}

	story, err := svc.sqlSvc.GetStory(storyID)
	if err != nil {
		return nil, shared.NewNotFoundError(err, "Story not found")
	}

	var target *model.StoryPage
	for i := range story.Pages {
		if story.Pages[i].Page == page {
			target = &story.Pages[i]
			break
		}
	}
	if target == nil {
		return nil, shared.NewNotFoundError(nil, fmt.Sprintf("Story has no page %d", page))
	}

	response, err := svc.uploadFile(file, "illustration", "story", storyID)
	if err != nil {
		return nil, err
	}

	target.ImageKey = response.ObjectKey
	if err := svc.sqlSvc.UpdateStoryPage(target); err != nil {
		log.Printf("Failed to link illustration to story page: %v", err)
	}

	return response, nil
}

// UploadCover stores a story cover image.
func (svc *MediaService) UploadCover(storyID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	if !svc.isValidImageFile(file.Filename) {
		return nil, shared.NewBadRequestError(nil, "Invalid image file format. Supported: JPG, PNG, WEBP")
	}

	if file.Size > 2*1024*1024 {
		return nil, shared.NewBadRequestError(nil, "Cover file too large. Maximum size: 2MB")
	}

	story, err := svc.sqlSvc.GetStory(storyID)
	if err != nil {
		return nil, shared.NewNotFoundError(err, "Story not found")
	}

	response, err := svc.uploadFile(file, "cover", "story", storyID)
	if err != nil {
		return nil, err
	}

	story.CoverKey = response.ObjectKey
	if err := svc.sqlSvc.UpdateStory(story); err != nil {
		log.Printf("Failed to link cover to story: %v", err)
	}

	return response, nil
}

// UploadAudio stores pronunciation audio for a word, sentence or story page.
func (svc *MediaService) UploadAudio(ownerType, ownerID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	if !svc.isValidAudioFile(file.Filename) {
		return nil, shared.NewBadRequestError(nil, "Invalid audio file format. Supported: MP3, WAV, AAC")
	}

	if file.Size > 10*1024*1024 {
		return nil, shared.NewBadRequestError(nil, "Audio file too large. Maximum size: 10MB")
	}

	switch ownerType {
	case "word":
		word, err := svc.sqlSvc.GetWord(ownerID)
		if err != nil {
			return nil, shared.NewNotFoundError(err, "Word not found")
		}

		response, err := svc.uploadFile(file, "audio", ownerType, ownerID)
		if err != nil {
			return nil, err
		}

		word.AudioKey = response.ObjectKey
		if err := svc.sqlSvc.UpdateWord(word); err != nil {
			log.Printf("Failed to link audio to word: %v", err)
		}
		return response, nil

	case "story":
		if _, err := svc.sqlSvc.GetStory(ownerID); err != nil {
			return nil, shared.NewNotFoundError(err, "Story not found")
		}
		return svc.uploadFile(file, "audio", ownerType, ownerID)

	default:
		return nil, shared.NewBadRequestError(nil, "Unknown media owner type")
	}
}

func (svc *MediaService) uploadFile(file *multipart.FileHeader, kind, ownerType, ownerID string) (*dto.MediaUploadResponse, error) {
	ext := filepath.Ext(file.Filename)
	fileName := fmt.Sprintf("%s_%s_%d%s", ownerID, kind, time.Now().Unix(), ext)

	var subDir string
	switch kind {
	case "illustration":
		subDir = "illustrations"
	case "cover":
		subDir = "covers"
	case "audio":
		subDir = "audio"
	default:
		subDir = "misc"
	}

	objectName := fmt.Sprintf("%s/%s", subDir, fileName)

	src, err := file.Open()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to open uploaded file")
	}
	defer src.Close()

	uploadInfo, err := svc.minioSvc.UploadFile(objectName, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to upload file to storage")
	}

	id, _ := uuid.NewV7()

	asset := &model.MediaAsset{
		ID:          id.String(),
		ObjectKey:   objectName,
		Kind:        kind,
		OwnerType:   ownerType,
		OwnerID:     ownerID,
		ContentType: file.Header.Get("Content-Type"),
		SizeBytes:   file.Size,
	}

	if err := svc.sqlSvc.SaveMediaAsset(asset); err != nil {
		// Orphaned objects are worse than a failed upload.
		svc.minioSvc.DeleteFile(objectName)
		return nil, err
	}

	log.Printf("Successfully uploaded file %s to MinIO: %s", fileName, uploadInfo.Key)

	return &dto.MediaUploadResponse{
		AssetID:     asset.ID,
		ObjectKey:   asset.ObjectKey,
		URL:         svc.ResolveURL(asset.ObjectKey),
		ContentType: asset.ContentType,
		SizeBytes:   asset.SizeBytes,
		UploadedAt:  time.Now(),
	}, nil
}

// ==================== MEDIA RETRIEVAL METHODS ====================

func (svc *MediaService) GetStoryMedia(storyID string) (*dto.StoryMediaResponse, error) {
	assets, err := svc.sqlSvc.GetMediaAssetsByOwner("story", storyID)
	if err != nil {
		return nil, err
	}

	response := &dto.StoryMediaResponse{
		StoryID: storyID,
		Assets:  make([]dto.MediaUploadResponse, len(assets)),
	}

	for i, asset := range assets {
		response.Assets[i] = dto.MediaUploadResponse{
			AssetID:     asset.ID,
			ObjectKey:   asset.ObjectKey,
			URL:         svc.ResolveURL(asset.ObjectKey),
			ContentType: asset.ContentType,
			SizeBytes:   asset.SizeBytes,
			UploadedAt:  asset.CreatedAt,
		}
	}

	return response, nil
}

// ResolveURL turns a stored object key into a presigned URL. Empty keys and
// signing failures resolve to "" so content payloads degrade instead of erroring.
func (svc *MediaService) ResolveURL(objectKey string) string {
	if objectKey == "" {
		return ""
	}

	url, err := svc.minioSvc.GetFileURL(objectKey, svc.urlExpiry)
	if err != nil {
		log.Printf("Failed to generate presigned URL for %s: %v", objectKey, err)
		return ""
	}
	return url
}

func (svc *MediaService) GetMediaStatistics() (map[string]int64, error) {
	return svc.sqlSvc.GetMediaStatistics()
}

// ==================== FILE VALIDATION METHODS ====================

func (svc *MediaService) isValidAudioFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	validExts := []string{".mp3", ".wav", ".aac", ".m4a", ".ogg"}

	for _, validExt := range validExts {
		if ext == validExt {
			return true
		}
	}
	return false
}

func (svc *MediaService) isValidImageFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	validExts := []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

	for _, validExt := range validExts {
		if ext == validExt {
			return true
		}
	}
	return false
}

// ==================== CLEANUP METHODS ====================

func (svc *MediaService) DeleteAsset(assetID string) error {
	asset, err := svc.sqlSvc.GetMediaAsset(assetID)
	if err != nil {
		return err
	}

	if err := svc.minioSvc.DeleteFile(asset.ObjectKey); err != nil {
		log.Printf("Failed to delete file from MinIO %s: %v", asset.ObjectKey, err)
	}

	return svc.sqlSvc.DeleteMediaAsset(assetID)
}
