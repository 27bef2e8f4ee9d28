package scheduler

import (
	"context"
	"time"

	"go-payroll/internal/salary"
	"go-payroll/internal/shared/calendar"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultPayrollSpec: 02:00 on the first day of every month.
const DefaultPayrollSpec = "0 2 1 * *"

const payrollTimeout = 30 * time.Minute

type BulkSaver interface {
	SaveBulk(ctx context.Context, req salary.BulkRequest) (salary.BulkSaveResponse, error)
}

// AddMonthlyPayroll saves draft calculations of the previous month for every
// active employee.
func (s *Scheduler) AddMonthlyPayroll(spec string, saver BulkSaver) error {
	if spec == "" {
		spec = DefaultPayrollSpec
	}
	log := s.logger.Named("payroll")
	return s.add("monthly_payroll", spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), payrollTimeout)
		defer cancel()
		_ = RunMonthlyPayroll(ctx, saver, time.Now(), log)
	})
}

func RunMonthlyPayroll(ctx context.Context, saver BulkSaver, now time.Time, logger *zap.Logger) error {
	year, month := calendar.PreviousMonth(now.Year(), int(now.Month()))

	rid := uuid.NewString()
	ctx = contextutil.WithRequestID(ctx, rid)
	log := logger.With(
		zap.String("request_id", rid),
		zap.Int("month", month),
		zap.Int("year", year),
	)

	log.Info("monthly payroll run started")
	res, err := saver.SaveBulk(ctx, salary.BulkRequest{Month: month, Year: year})
	if err != nil {
		log.Error("monthly payroll run failed", zap.Error(err))
		return err
	}

	for _, f := range res.Failures {
		log.Warn("payroll calculation failed",
			zap.String("employee_id", f.EmployeeID),
			zap.String("code", f.Code),
			zap.String("message", f.Message),
		)
	}

	log.Info("monthly payroll run finished",
		zap.Int("saved", len(res.Saved)),
		zap.Int("skipped_finalized", len(res.Skipped)),
		zap.Int("failed", len(res.Failures)),
	)
	return nil
}
