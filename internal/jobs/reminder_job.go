package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fcm-construction/opsdesk-api/internal/service"
)

// ReminderScanJob surfaces overdue reminders. The office has no push
// channel, so the scan logs each overdue reminder where the ops dashboard
// picks it up.
type ReminderScanJob struct {
	reminders *service.ReminderService
	logger    *zap.Logger
}

func NewReminderScanJob(reminders *service.ReminderService, logger *zap.Logger) *ReminderScanJob {
	return &ReminderScanJob{reminders: reminders, logger: logger}
}

// Run scans for open reminders due today or earlier.
func (j *ReminderScanJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	due, err := j.reminders.DueBefore(ctx, time.Now())
	if err != nil {
		j.logger.Error("reminder scan failed", zap.Error(err))
		return
	}

	for _, r := range due {
		j.logger.Warn("reminder overdue",
			zap.String("id", r.ID.String()),
			zap.String("title", r.Title),
			zap.Timep("dueDate", r.DueDate))
	}

	j.logger.Info("reminder scan finished", zap.Int("overdue", len(due)))
}
