package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"go-payroll/internal/events"
	"go-payroll/internal/shared/calendar"

	"go.uber.org/zap"
)

type period struct {
	employeeID string
	month      int
	year       int
}

// ConsumeAttendanceMarked recalculates the saved drafts of every employee
// and month touched by an attendance batch.
func ConsumeAttendanceMarked(
	ctx context.Context,
	reader MessageReader,
	recalculator DraftRecalculator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.attendance_marked")
	log.Info("attendance marked consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("attendance marked consumer stopped")
				return
			}
			log.Error("fetch attendance marked message failed", zap.Error(err))
			continue
		}

		var event events.AttendanceMarkedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode attendance marked event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		mctx := messageContext(ctx, msg)
		var recalculated int
		err = retryInPlace(ctx, log, msg, func() error {
			var rerr error
			recalculated, rerr = recalculateEntries(mctx, recalculator, event.Entries)
			return rerr
		})
		if err != nil {
			// belum di-commit, dikirim ulang setelah restart
			log.Info("attendance marked consumer stopped with message pending",
				zap.String("request_id", event.RequestID),
				zap.Int64("offset", msg.Offset),
			)
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit attendance marked message failed", zap.Error(err))
			continue
		}

		log.Info("drafts recalculated after attendance",
			zap.String("request_id", event.RequestID),
			zap.Int("entries", len(event.Entries)),
			zap.Int("recalculated", recalculated),
		)
	}
}

func recalculateEntries(ctx context.Context, recalculator DraftRecalculator, entries []events.AttendanceEntry) (int, error) {
	seen := make(map[period]struct{}, len(entries))
	var (
		count int
		errs  []error
	)
	for _, e := range entries {
		d, err := calendar.Parse(e.Date)
		if err != nil {
			// nothing to recalculate for a date we cannot read
			continue
		}
		p := period{employeeID: e.EmployeeID, month: d.Month, year: d.Year}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}

		done, err := recalculator.RecalculateDraft(ctx, p.employeeID, p.month, p.year)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if done {
			count++
		}
	}
	return count, errors.Join(errs...)
}
