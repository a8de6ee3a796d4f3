package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kotoba-club/kotoba_api/dto"
	"github.com/kotoba-club/kotoba_api/shared"
)

type ProgressHandler struct {
	progressSvc ProgressServiceInterface
}

func NewProgressHandler(progressSvc ProgressServiceInterface) *ProgressHandler {
	return &ProgressHandler{
		progressSvc: progressSvc,
	}
}

// @Summary Get progress stats
// @Description Get the derived progress snapshot for a user
// @Tags progress
// @Accept json
// @Produce json
// @Param userName path string true "User name"
// @Success 200 {object} shared.Response{data=dto.ProgressStatsResponse}
// @Router /api/v1/progress/{userName}/stats [get]
func (h *ProgressHandler) GetProgressStats(c *fiber.Ctx) error {
	userName := c.Params(shared.UserName)
	if userName == "" {
		return shared.NewBadRequestError(nil, "User name is required")
	}

	stats := h.progressSvc.GetProgressStats(userName)
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", stats)
}

// @Summary Get weekly activity
// @Description Get the last 7 days of activity for a user
// @Tags progress
// @Accept json
// @Produce json
// @Param userName path string true "User name"
// @Success 200 {object} shared.Response{data=[]dto.DailyActivityResponse}
// @Router /api/v1/progress/{userName}/weekly [get]
func (h *ProgressHandler) GetWeeklyActivity(c *fiber.Ctx) error {
	userName := c.Params(shared.UserName)
	if userName == "" {
		return shared.NewBadRequestError(nil, "User name is required")
	}

	weekly := h.progressSvc.GetWeeklyActivity(userName)
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", weekly)
}

// @Summary Record sentence attempt
// @Description Record one sentence practice attempt for a user
// @Tags progress
// @Accept json
// @Produce json
// @Param userName path string true "User name"
// @Param attemptRequest body dto.SentenceAttemptRequest true "Attempt"
// @Success 200 {object} shared.Response{data=dto.ProgressStatsResponse}
// @Router /api/v1/progress/{userName}/sentence [post]
func (h *ProgressHandler) RecordSentenceAttempt(c *fiber.Ctx) error {
	userName := c.Params(shared.UserName)
	if userName == "" {
		return shared.NewBadRequestError(nil, "User name is required")
	}

	var req dto.SentenceAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := dto.GetValidator().Struct(req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	h.progressSvc.RecordSentenceAttempt(userName, req.SentenceID, req.IsCorrect, req.Score)

	stats := h.progressSvc.GetProgressStats(userName)
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", stats)
}

// @Summary Record story read
// @Description Record story reading progress for a user
// @Tags progress
// @Accept json
// @Produce json
// @Param userName path string true "User name"
// @Param readRequest body dto.StoryReadRequest true "Read progress"
// @Success 200 {object} shared.Response{data=dto.ProgressStatsResponse}
// @Router /api/v1/progress/{userName}/story [post]
func (h *ProgressHandler) RecordStoryRead(c *fiber.Ctx) error {
	userName := c.Params(shared.UserName)
	if userName == "" {
		return shared.NewBadRequestError(nil, "User name is required")
	}

	var req dto.StoryReadRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := dto.GetValidator().Struct(req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	h.progressSvc.RecordStoryRead(userName, req.StoryID, req.PagesRead, req.TotalPages)

	stats := h.progressSvc.GetProgressStats(userName)
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", stats)
}

// @Summary Set kanji grade
// @Description Set the kanji grade used to render content for a user
// @Tags progress
// @Accept json
// @Produce json
// @Param userName path string true "User name"
// @Param gradeRequest body dto.KanjiGradeRequest true "Kanji grade"
// @Success 200 {object} shared.Response{data=dto.ProgressStatsResponse}
// @Router /api/v1/progress/{userName}/kanji-grade [put]
func (h *ProgressHandler) SetKanjiGrade(c *fiber.Ctx) error {
	userName := c.Params(shared.UserName)
	if userName == "" {
		return shared.NewBadRequestError(nil, "User name is required")
	}

	var req dto.KanjiGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := dto.GetValidator().Struct(req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	h.progressSvc.SetKanjiGrade(userName, req.Grade)

	stats := h.progressSvc.GetProgressStats(userName)
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", stats)
}

// @Summary Clear progress
// @Description Delete one user's progress record
// @Tags progress
// @Accept json
// @Produce json
// @Param userName path string true "User name"
// @Success 200 {object} shared.Response
// @Router /api/v1/progress/{userName} [delete]
func (h *ProgressHandler) ClearProgress(c *fiber.Ctx) error {
	userName := c.Params(shared.UserName)
	if userName == "" {
		return shared.NewBadRequestError(nil, "User name is required")
	}

	h.progressSvc.ClearProgress(userName)
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", nil)
}

// @Summary Clear all progress
// @Description Delete every user's progress record
// @Tags progress
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response
// @Router /api/v1/progress [delete]
func (h *ProgressHandler) ClearAllProgress(c *fiber.Ctx) error {
	h.progressSvc.ClearAllProgress()
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", nil)
}
