package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/quotevault/internal/repository"
)

const (
	JobRefreshCatalog       = "refresh_catalog"
	JobSyncUserData         = "sync_user_data"
	JobClearQuoteOfDayCache = "clear_quote_of_day_cache"

	defaultRefreshSchedule = "0 */6 * * *"
	defaultSyncSchedule    = "*/30 * * * *"
	clearCacheSchedule     = "0 0 * * *" // Every day at midnight
)

// RunJob triggers a scheduled job outside of its schedule.
func (e *Engine) RunJob(id string) error {
	return e.scheduler.RunJobNow(id)
}

// setupJobs configures all scheduled jobs.
func (e *Engine) setupJobs() error {
	refreshSchedule, syncSchedule := defaultRefreshSchedule, defaultSyncSchedule
	runOnStart := true
	if e.cfg.Sync != nil {
		refreshSchedule = e.cfg.Sync.RefreshSchedule
		syncSchedule = e.cfg.Sync.SyncSchedule
		runOnStart = e.cfg.Sync.RefreshOnStart
	}

	if err := e.scheduler.AddCronJob(
		JobRefreshCatalog,
		"Refresh Catalog",
		"Pulls categories and quotes from the backend",
		refreshSchedule,
		e.Refresh,
		runOnStart,
	); err != nil {
		return fmt.Errorf("failed to add refresh job: %w", err)
	}

	if err := e.scheduler.AddCronJob(
		JobSyncUserData,
		"Sync User Data",
		"Pulls favorites, collections and settings of the signed in user",
		syncSchedule,
		e.runSyncJob,
		runOnStart,
	); err != nil {
		return fmt.Errorf("failed to add sync job: %w", err)
	}

	if err := e.scheduler.AddCronJob(
		JobClearQuoteOfDayCache,
		"Clear Quote of the Day Cache",
		"Drops cached quotes of previous days",
		clearCacheSchedule,
		e.qod.Clear,
		false,
	); err != nil {
		return fmt.Errorf("failed to add clear cache job: %w", err)
	}

	log.Info("Scheduled jobs configured successfully")
	return nil
}

// runSyncJob skips the sync while signed out instead of failing the job.
func (e *Engine) runSyncJob(ctx context.Context) error {
	err := e.Sync(ctx)
	if errors.Is(err, repository.ErrNotLoggedIn) {
		log.Debug("skipping user data sync, not logged in")
		return nil
	}
	return err
}
