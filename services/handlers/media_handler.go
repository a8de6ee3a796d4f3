package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/kotoba-club/kotoba_api/shared"
)

type MediaHandler struct {
	mediaSvc MediaServiceInterface
}

func NewMediaHandler(mediaSvc MediaServiceInterface) *MediaHandler {
	return &MediaHandler{
		mediaSvc: mediaSvc,
	}
}

// @Summary Upload page illustration
// @Description Upload an illustration for one story page
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param storyId path string true "Story ID"
// @Param page formData int true "Page number"
// @Param file formData file true "Image file"
// @Success 201 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/admin/stories/{storyId}/illustration [post]
func (h *MediaHandler) UploadIllustration(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.FormValue("page"))
	if err != nil || page < 1 {
		return shared.NewBadRequestError(err, "Valid page number is required")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "File is required")
	}

	upload, err := h.mediaSvc.UploadIllustration(c.Params("storyId"), page, file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", upload)
}

// @Summary Upload story cover
// @Description Upload cover art for a story
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param storyId path string true "Story ID"
// @Param file formData file true "Image file"
// @Success 201 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/admin/stories/{storyId}/cover [post]
func (h *MediaHandler) UploadCover(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "File is required")
	}

	upload, err := h.mediaSvc.UploadCover(c.Params("storyId"), file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", upload)
}

// @Summary Upload audio
// @Description Upload pronunciation audio for a word or story
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param ownerType path string true "Owner type: word or story"
// @Param ownerId path string true "Owner ID"
// @Param file formData file true "Audio file"
// @Success 201 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/admin/media/{ownerType}/{ownerId}/audio [post]
func (h *MediaHandler) UploadAudio(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "File is required")
	}

	upload, err := h.mediaSvc.UploadAudio(c.Params("ownerType"), c.Params("ownerId"), file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", upload)
}

// @Summary Get story media
// @Description List uploaded assets for a story
// @Tags media
// @Accept json
// @Produce json
// @Param storyId path string true "Story ID"
// @Success 200 {object} shared.Response{data=dto.StoryMediaResponse}
// @Router /api/v1/stories/{storyId}/media [get]
func (h *MediaHandler) GetStoryMedia(c *fiber.Ctx) error {
	media, err := h.mediaSvc.GetStoryMedia(c.Params("storyId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", media)
}

// @Summary Delete media asset
// @Description Delete an uploaded asset and its object
// @Tags media
// @Accept json
// @Produce json
// @Param assetId path string true "Asset ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/admin/media/{assetId} [delete]
func (h *MediaHandler) DeleteAsset(c *fiber.Ctx) error {
	if err := h.mediaSvc.DeleteAsset(c.Params("assetId")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", nil)
}

// @Summary Media statistics
// @Description Count stored assets by kind
// @Tags media
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response{data=map[string]int64}
// @Router /api/v1/admin/media/stats [get]
func (h *MediaHandler) GetMediaStatistics(c *fiber.Ctx) error {
	stats, err := h.mediaSvc.GetMediaStatistics()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", stats)
}
