package consumer

import (
	"context"
	"encoding/json"

	"go-payroll/internal/events"

	"go.uber.org/zap"
)

// ConsumeWorkingDaysSet recalculates a department's drafts after its
// calendar for the month changed.
func ConsumeWorkingDaysSet(
	ctx context.Context,
	reader MessageReader,
	recalculator DraftRecalculator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.working_days_set")
	log.Info("working days consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("working days consumer stopped")
				return
			}
			log.Error("fetch working days message failed", zap.Error(err))
			continue
		}

		var event events.WorkingDaysSetEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode working days event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		mctx := messageContext(ctx, msg)
		var n int
		err = retryInPlace(ctx, log, msg, func() error {
			var rerr error
			n, rerr = recalculator.RecalculateDepartmentDrafts(mctx, event.Department, event.Month, event.Year)
			return rerr
		})
		if err != nil {
			log.Info("working days consumer stopped with message pending",
				zap.String("department", event.Department),
				zap.Int("month", event.Month),
				zap.Int("year", event.Year),
				zap.Int64("offset", msg.Offset),
			)
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit working days message failed", zap.Error(err))
			continue
		}

		log.Info("department drafts recalculated",
			zap.String("department", event.Department),
			zap.Int("month", event.Month),
			zap.Int("year", event.Year),
			zap.Int("recalculated", n),
		)
	}
}
