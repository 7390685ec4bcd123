package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/aleamz/salespoint/internal/reports"
)

const defaultWarmupDays = 30

// RevenueWarmupJob pre-populates the revenue report cache so the first
// dashboard load after an invalidation stays fast.
type RevenueWarmupJob struct {
	Reports *reports.Service
	Logger  *slog.Logger
	clock   func() time.Time
}

func NewRevenueWarmupJob(reportsSvc *reports.Service, logger *slog.Logger) *RevenueWarmupJob {
	return &RevenueWarmupJob{
		Reports: reportsSvc,
		Logger:  logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes revenue warmup tasks.
func (j *RevenueWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Reports == nil {
		return errors.New("revenue warmup: handler not configured")
	}
	var payload RevenueWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.DaysBack <= 0 {
		payload.DaysBack = defaultWarmupDays
	}

	now := j.now()
	to := now.AddDate(0, 0, 1).Truncate(24 * time.Hour)
	from := to.AddDate(0, 0, -payload.DaysBack)

	warmCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	if err := j.Reports.Warm(warmCtx, from, to); err != nil {
		j.logger().Error("revenue warmup failed", slog.Any("error", err))
		return err
	}
	return nil
}

func (j *RevenueWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskRevenueWarmup))
	}
	return slog.Default().With(slog.String("job", TaskRevenueWarmup))
}

func (j *RevenueWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
