package services

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberSwagger "github.com/gofiber/swagger"

	"github.com/kotoba-club/kotoba_api/docs"
	"github.com/kotoba-club/kotoba_api/dto"
	"github.com/kotoba-club/kotoba_api/services/handlers"
	"github.com/kotoba-club/kotoba_api/shared"
)

type HttpService struct {
	context.DefaultService

	cacheSvc     *ProgressCacheService
	contentSvc   *ContentService
	mediaSvc     *MediaService
	rateLimitSvc *RateLimitService
	monitorSvc   *MonitoringService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.cacheSvc = svc.Service(PROGRESS_CACHE_SVC).(*ProgressCacheService)
	svc.contentSvc = svc.Service(CONTENT_SVC).(*ContentService)
	svc.mediaSvc = svc.Service(MEDIA_SVC).(*MediaService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.monitorSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	docs.SwaggerInfo.BasePath = ""

	app := fiber.New(fiber.Config{
		ErrorHandler: svc.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(MonitoringMiddleware(svc.monitorSvc))

	app.Get("/ping", svc.ping)
	app.Get("/swagger/*", fiberSwagger.HandlerDefault)

	progressHandler := handlers.NewProgressHandler(svc.cacheSvc)
	contentHandler := handlers.NewContentHandler(svc.contentSvc)
	mediaHandler := handlers.NewMediaHandler(svc.mediaSvc)

	v1 := app.Group("/api/v1", svc.rateLimitSvc.IPRateLimit())
	v1.Get("/ping", svc.ping)

	progress := v1.Group("/progress")
	progress.Get("/:user_name/stats", svc.rateLimitSvc.RateLimit("progress_read"), progressHandler.GetProgressStats)
	progress.Get("/:user_name/weekly", svc.rateLimitSvc.RateLimit("progress_read"), progressHandler.GetWeeklyActivity)
	progress.Post("/:user_name/sentence", svc.rateLimitSvc.RateLimit("progress_write"), progressHandler.RecordSentenceAttempt)
	progress.Post("/:user_name/story", svc.rateLimitSvc.RateLimit("progress_write"), progressHandler.RecordStoryRead)
	progress.Put("/:user_name/kanji-grade", svc.rateLimitSvc.RateLimit("progress_write"), progressHandler.SetKanjiGrade)
	progress.Delete("/:user_name", svc.rateLimitSvc.RateLimit("progress_write"), progressHandler.ClearProgress)
	progress.Delete("/", svc.rateLimitSvc.RateLimit("progress_write"), progressHandler.ClearAllProgress)

	v1.Get("/words", contentHandler.GetWords)
	v1.Get("/words/:wordId/spelling", contentHandler.GetSpelling)
	v1.Get("/sentences", contentHandler.GetSentences)
	v1.Get("/sentences/:sentenceId/practice", contentHandler.GetSentencePractice)
	v1.Post("/sentences/:sentenceId/check", contentHandler.CheckSentenceAnswer)
	v1.Get("/stories", contentHandler.GetStories)
	v1.Get("/stories/:storyId", contentHandler.GetStory)
	v1.Get("/stories/:storyId/media", mediaHandler.GetStoryMedia)

	admin := v1.Group("/admin", svc.rateLimitSvc.RateLimit("admin_content"))
	admin.Post("/words", contentHandler.CreateWord)
	admin.Post("/sentences", contentHandler.CreateSentence)
	admin.Post("/stories", contentHandler.CreateStory)
	admin.Post("/stories/:storyId/illustration", svc.rateLimitSvc.RateLimit("media_upload"), mediaHandler.UploadIllustration)
	admin.Post("/stories/:storyId/cover", svc.rateLimitSvc.RateLimit("media_upload"), mediaHandler.UploadCover)
	admin.Post("/media/:ownerType/:ownerId/audio", svc.rateLimitSvc.RateLimit("media_upload"), mediaHandler.UploadAudio)
	admin.Get("/media/stats", mediaHandler.GetMediaStatistics)
	admin.Delete("/media/:assetId", mediaHandler.DeleteAsset)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseNotFound(c)
	})

	svc.server = app

	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, http.StatusOK, "Success", "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	if appErr, ok := shared.GetAppError(err); ok {
		if inner := appErr.Unwrap(); inner != nil {
			if resp := dto.CreateValidationErrorResponse(inner); len(resp.Errors) > 0 {
				return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, resp)
			}
		}
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	if fiberErr, ok := err.(*fiber.Error); ok {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	return shared.ResponseInternalError(c, err)
}
