package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultOutboxCleanupSpec = "30 3 * * *"
	DefaultOutboxRetention   = 7 * 24 * time.Hour
)

type OutboxPurger interface {
	DeleteSentBefore(ctx context.Context, before time.Time) (int64, error)
}

// AddOutboxCleanup deletes relayed outbox rows older than retention.
func (s *Scheduler) AddOutboxCleanup(spec string, purger OutboxPurger, retention time.Duration) error {
	if spec == "" {
		spec = DefaultOutboxCleanupSpec
	}
	if retention <= 0 {
		retention = DefaultOutboxRetention
	}
	log := s.logger.Named("outbox_cleanup")
	return s.add("outbox_cleanup", spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		_, _ = RunOutboxCleanup(ctx, purger, time.Now().Add(-retention), log)
	})
}

func RunOutboxCleanup(ctx context.Context, purger OutboxPurger, cutoff time.Time, logger *zap.Logger) (int64, error) {
	n, err := purger.DeleteSentBefore(ctx, cutoff)
	if err != nil {
		logger.Error("outbox cleanup failed", zap.Error(err))
		return 0, err
	}
	logger.Info("outbox cleanup finished", zap.Int64("deleted", n), zap.Time("cutoff", cutoff))
	return n, nil
}
