package jobs

import (
	"context"
	"time"

	"abchotels/services"
	"abchotels/services/logger"

	"github.com/robfig/cron/v3"
)

const (
	// shortly after midnight in the hotel timezone
	CloseOutSchedule = "5 0 * * *"
	WarmUpSchedule   = "@every 30m"

	jobTimeout = 5 * time.Minute
)

// BookingCloser moves bookings whose dates have passed to their final status
type BookingCloser interface {
	CloseOutPastStays(ctx context.Context) (services.CloseOutResult, error)
}

// SummaryWarmer rebuilds the cached city listing
type SummaryWarmer interface {
	WarmCitySummaries(ctx context.Context) error
}

// InitCronJobs registers the nightly close-out and the cache warm-up, then starts c
func InitCronJobs(c *cron.Cron, closer BookingCloser, warmer SummaryWarmer, log logger.Logger) error {
	if _, err := c.AddFunc(CloseOutSchedule, closeOutJob(closer, log)); err != nil {
		return err
	}
	if _, err := c.AddFunc(WarmUpSchedule, warmUpJob(warmer, log)); err != nil {
		return err
	}

	c.Start()
	log.Info("Cron jobs initialized successfully")
	return nil
}

func closeOutJob(closer BookingCloser, log logger.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		log.Info("Running booking close-out at %v", time.Now())
		res, err := closer.CloseOutPastStays(ctx)
		if err != nil {
			log.Error("booking close-out failed: %v", err)
			return
		}
		log.Info("booking close-out done: %d completed, %d cancelled", res.Completed, res.Cancelled)
	}
}

func warmUpJob(warmer SummaryWarmer, log logger.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if err := warmer.WarmCitySummaries(ctx); err != nil {
			log.Error("city summaries warm-up failed: %v", err)
			return
		}
		log.Debug("city summaries refreshed")
	}
}
