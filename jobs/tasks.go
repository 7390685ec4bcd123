package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskRevenueWarmup pre-populates the revenue report cache.
	TaskRevenueWarmup = "reports:revenue_warmup"
)

// RevenueWarmupPayload bounds the window to warm, in whole days back from
// now. Zero means the default window.
type RevenueWarmupPayload struct {
	DaysBack int `json:"days_back"`
}

// NewRevenueWarmupTask constructs an Asynq task.
func NewRevenueWarmupTask(payload RevenueWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRevenueWarmup, data), nil
}
