package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/kotoba-club/kotoba_api/dto"
	"github.com/kotoba-club/kotoba_api/shared"
)

type ContentHandler struct {
	contentSvc ContentServiceInterface
}

func NewContentHandler(contentSvc ContentServiceInterface) *ContentHandler {
	return &ContentHandler{
		contentSvc: contentSvc,
	}
}

func querySeed(c *fiber.Ctx) int64 {
	seed, err := strconv.ParseInt(c.Query("seed"), 10, 64)
	if err != nil {
		return 0
	}
	return seed
}

func queryGrade(c *fiber.Ctx) int {
	grade, err := strconv.Atoi(c.Query("grade"))
	if err != nil {
		return shared.MinKanjiGrade
	}
	return grade
}

// @Summary List words
// @Description List flashcard words, shuffled by the requested order
// @Tags content
// @Accept json
// @Produce json
// @Param category query string false "Category filter"
// @Param order query string false "Shuffle order: hourly, daily, random, fixed"
// @Param seed query int false "Seed for fixed order"
// @Success 200 {object} shared.Response{data=dto.WordCollectionResponse}
// @Router /api/v1/words [get]
func (h *ContentHandler) GetWords(c *fiber.Ctx) error {
	words, err := h.contentSvc.GetWords(c.Query("category"), c.Query("order"), querySeed(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", words)
}

// @Summary Get spelling round
// @Description Get one spelling round for a word
// @Tags content
// @Accept json
// @Produce json
// @Param wordId path string true "Word ID"
// @Param seed query int false "Round seed"
// @Success 200 {object} shared.Response{data=dto.SpellingResponse}
// @Router /api/v1/words/{wordId}/spelling [get]
func (h *ContentHandler) GetSpelling(c *fiber.Ctx) error {
	spelling, err := h.contentSvc.GetSpelling(c.Params("wordId"), querySeed(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", spelling)
}

// @Summary List sentences
// @Description List sentence-ordering exercises
// @Tags content
// @Accept json
// @Produce json
// @Param category query string false "Category filter"
// @Success 200 {object} shared.Response{data=dto.SentenceCollectionResponse}
// @Router /api/v1/sentences [get]
func (h *ContentHandler) GetSentences(c *fiber.Ctx) error {
	sentences, err := h.contentSvc.GetSentences(c.Query("category"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", sentences)
}

// @Summary Get sentence practice
// @Description Get one sentence-ordering round with shuffled tokens
// @Tags content
// @Accept json
// @Produce json
// @Param sentenceId path string true "Sentence ID"
// @Param order query string false "Shuffle order: hourly, daily, random, fixed"
// @Param seed query int false "Seed for fixed order"
// @Success 200 {object} shared.Response{data=dto.SentencePracticeResponse}
// @Router /api/v1/sentences/{sentenceId}/practice [get]
func (h *ContentHandler) GetSentencePractice(c *fiber.Ctx) error {
	practice, err := h.contentSvc.GetSentencePractice(c.Params("sentenceId"), c.Query("order"), querySeed(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", practice)
}

// @Summary Check sentence answer
// @Description Check a submitted token ordering against the correct one
// @Tags content
// @Accept json
// @Produce json
// @Param sentenceId path string true "Sentence ID"
// @Param answerRequest body dto.SentenceAnswerRequest true "Submitted ordering"
// @Success 200 {object} shared.Response{data=dto.SentenceAnswerResponse}
// @Router /api/v1/sentences/{sentenceId}/check [post]
func (h *ContentHandler) CheckSentenceAnswer(c *fiber.Ctx) error {
	var req dto.SentenceAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := dto.GetValidator().Struct(req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	sentenceID := c.Params("sentenceId")
	correct, score, err := h.contentSvc.CheckSentenceAnswer(sentenceID, req.Tokens)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", &dto.SentenceAnswerResponse{
		SentenceID: sentenceID,
		Correct:    correct,
		Score:      score,
	})
}

// @Summary List stories
// @Description List stories with titles resolved for the requested kanji grade
// @Tags content
// @Accept json
// @Produce json
// @Param grade query int false "Kanji grade (1-6)"
// @Success 200 {object} shared.Response{data=dto.StoryCollectionResponse}
// @Router /api/v1/stories [get]
func (h *ContentHandler) GetStories(c *fiber.Ctx) error {
	stories, err := h.contentSvc.GetStories(queryGrade(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", stories)
}

// @Summary Get story
// @Description Get a full story resolved for the requested kanji grade
// @Tags content
// @Accept json
// @Produce json
// @Param storyId path string true "Story ID"
// @Param grade query int false "Kanji grade (1-6)"
// @Success 200 {object} shared.Response{data=dto.StoryResponse}
// @Router /api/v1/stories/{storyId} [get]
func (h *ContentHandler) GetStory(c *fiber.Ctx) error {
	story, err := h.contentSvc.GetStory(c.Params("storyId"), queryGrade(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", story)
}

// ==================== ADMIN ROUTES ====================

// @Summary Create word
// @Description Create a flashcard word
// @Tags admin
// @Accept json
// @Produce json
// @Param createRequest body dto.CreateWordRequest true "Word"
// @Success 201 {object} shared.Response{data=dto.WordResponse}
// @Router /api/v1/admin/words [post]
func (h *ContentHandler) CreateWord(c *fiber.Ctx) error {
	var req dto.CreateWordRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := dto.GetValidator().Struct(req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	word, err := h.contentSvc.CreateWord(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", word)
}

// @Summary Create sentence
// @Description Create a sentence-ordering exercise
// @Tags admin
// @Accept json
// @Produce json
// @Param createRequest body dto.CreateSentenceRequest true "Sentence"
// @Success 201 {object} shared.Response{data=dto.SentenceResponse}
// @Router /api/v1/admin/sentences [post]
func (h *ContentHandler) CreateSentence(c *fiber.Ctx) error {
	var req dto.CreateSentenceRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := dto.GetValidator().Struct(req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	sentence, err := h.contentSvc.CreateSentence(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", sentence)
}

// @Summary Create story
// @Description Create a story with its pages
// @Tags admin
// @Accept json
// @Produce json
// @Param createRequest body dto.CreateStoryRequest true "Story"
// @Success 201 {object} shared.Response{data=dto.StoryResponse}
// @Router /api/v1/admin/stories [post]
func (h *ContentHandler) CreateStory(c *fiber.Ctx) error {
	var req dto.CreateStoryRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := dto.GetValidator().Struct(req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	story, err := h.contentSvc.CreateStory(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", story)
}
