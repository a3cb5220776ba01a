// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	readingstore "github.com/dalemusser/castwatch/internal/app/store/readings"
	thresholdstore "github.com/dalemusser/castwatch/internal/app/store/thresholds"
	trainingstore "github.com/dalemusser/castwatch/internal/app/store/training"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ReadingsRetentionJob drops readings older than the retention window.
// Uploaded raw files stay in file storage; only the queryable rows expire.
func ReadingsRetentionJob(db *mongo.Database, logger *zap.Logger, retention time.Duration) Job {
	store := readingstore.New(db)
	return Job{
		Name:     "readings-retention",
		Interval: 1 * time.Hour,
		Run: func(ctx context.Context) error {
			cutoff := time.Now().UTC().Add(-retention)
			deleted, err := store.DeleteOlderThan(ctx, cutoff)
			if err != nil {
				return err
			}
			if deleted > 0 {
				logger.Info("expired old readings",
					zap.Int64("deleted", deleted),
					zap.Time("cutoff", cutoff))
			}
			return nil
		},
	}
}

// StaleTrainingRunsJob fails training runs that never heard back from the
// trainer, so the dashboard never shows a run in flight forever.
func StaleTrainingRunsJob(db *mongo.Database, logger *zap.Logger, maxAge time.Duration) Job {
	store := trainingstore.New(db)
	return Job{
		Name:     "stale-training-runs",
		Interval: 5 * time.Minute,
		Run: func(ctx context.Context) error {
			cutoff := time.Now().UTC().Add(-maxAge)
			expired, err := store.ExpireStuck(ctx, cutoff)
			if err != nil {
				return err
			}
			if expired > 0 {
				logger.Warn("expired stuck training runs",
					zap.Int64("expired", expired),
					zap.Time("cutoff", cutoff))
			}
			return nil
		},
	}
}

// IdleSessionCleanupJob drops threshold state for operator sessions idle
// longer than maxIdle. The next request from such a session starts back at
// the engineering defaults.
func IdleSessionCleanupJob(store *thresholdstore.Store, logger *zap.Logger, maxIdle time.Duration) Job {
	return Job{
		Name:     "idle-session-cleanup",
		Interval: 15 * time.Minute,
		Run: func(ctx context.Context) error {
			if removed := store.PurgeIdle(maxIdle); removed > 0 {
				logger.Debug("purged idle operator sessions",
					zap.Int("removed", removed))
			}
			return nil
		},
	}
}
