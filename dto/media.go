package dto

import "time"

// Media DTOs

type MediaUploadResponse struct {
	AssetID     string    `json:"asset_id"`
	ObjectKey   string    `json:"object_key"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type StoryMediaResponse struct {
	StoryID string                `json:"story_id"`
	Assets  []MediaUploadResponse `json:"assets"`
}
