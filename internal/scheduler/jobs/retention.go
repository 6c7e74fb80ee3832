// Package jobs holds the scheduled maintenance jobs.
package jobs

import (
	"context"
	"time"

	"github.com/finlab/credscore/internal/contracts"
	"github.com/finlab/credscore/pkg/logger"
)

// HistoryRetentionJob removes assessment records past the retention window.
type HistoryRetentionJob struct {
	repo          contracts.AssessmentRepository
	retentionDays int
	logger        *logger.Logger
}

// NewHistoryRetentionJob creates a new history retention job
func NewHistoryRetentionJob(repo contracts.AssessmentRepository, retentionDays int, log *logger.Logger) *HistoryRetentionJob {
	return &HistoryRetentionJob{
		repo:          repo,
		retentionDays: retentionDays,
		logger:        log,
	}
}

// Name returns the job name
func (j *HistoryRetentionJob) Name() string {
	return "history_retention"
}

// Schedule returns the cron schedule (every day at 3 AM)
func (j *HistoryRetentionJob) Schedule() string {
	return "0 0 3 * * *"
}

// Run deletes assessments older than the retention window
func (j *HistoryRetentionJob) Run(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -j.retentionDays)

	removed, err := j.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}

	if removed > 0 {
		j.logger.WithFields(map[string]interface{}{
			"removed": removed,
			"cutoff":  cutoff.Format("2006-01-02"),
		}).Info("History retention completed")
	}

	return nil
}
