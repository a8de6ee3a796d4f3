package main

import (
	"github.com/kotoba-club/kotoba_api/services"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// @title Kotoba API
// @version 1.0
// @description Bilingual English/Japanese learning backend
func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	ctx, err := context.NewCtx(
		&services.DbService{},
		&services.RedisService{},
		&services.MinIOService{},
		&services.MonitoringService{},

		&services.MediaService{},
		&services.ProgressService{},
		&services.ProgressCacheService{},
		&services.ContentService{},
		&services.RateLimitService{},
		&services.SchedulerService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}
