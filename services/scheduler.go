package services

import (
	"time"

	"github.com/alphabatem/common/context"
	"github.com/go-co-op/gocron"
	log "github.com/sirupsen/logrus"
)

// SchedulerService runs the periodic maintenance jobs: sweeping expired
// progress cache entries and refreshing the catalog size gauges.
type SchedulerService struct {
	context.DefaultService

	scheduler *gocron.Scheduler

	sqlSvc   *DbService
	cacheSvc *ProgressCacheService
}

const SCHEDULER_SVC = "scheduler_svc"

func (svc SchedulerService) Id() string {
	return SCHEDULER_SVC
}

func (svc *SchedulerService) Configure(ctx *context.Context) error {
	svc.scheduler = gocron.NewScheduler(time.UTC)
	return svc.DefaultService.Configure(ctx)
}

func (svc *SchedulerService) Start() error {
	svc.sqlSvc = svc.Service(DB_SVC).(*DbService)
	svc.cacheSvc = svc.Service(PROGRESS_CACHE_SVC).(*ProgressCacheService)

	if _, err := svc.scheduler.Every(10).Minutes().Do(svc.sweepProgressCache); err != nil {
		return err
	}

	if _, err := svc.scheduler.Every(1).Hour().Do(svc.refreshCatalogGauges); err != nil {
		return err
	}

	svc.scheduler.StartAsync()

	// Prime the gauges so scrapes before the first tick see real counts.
	svc.refreshCatalogGauges()

	return nil
}

func (svc *SchedulerService) Shutdown() {
	if svc.scheduler != nil {
		svc.scheduler.Stop()
	}
}

func (svc *SchedulerService) sweepProgressCache() {
	svc.cacheSvc.SweepExpired()
}

func (svc *SchedulerService) refreshCatalogGauges() {
	words, sentences, stories, err := svc.sqlSvc.CountCatalog()
	if err != nil {
		log.Printf("Failed to count catalog items: %v", err)
		return
	}

	SetCatalogCounts(words, sentences, stories)
}
