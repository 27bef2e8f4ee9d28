package audit

import (
	"context"
	"time"

	"go-payroll/internal/shared/contextutil"

	"go.uber.org/zap"
)

// StdoutLogger writes entries to the process log only. Used where no
// database is at hand, such as server shutdown.
type StdoutLogger struct {
	logger *zap.Logger
}

func NewStdoutLogger() *StdoutLogger {
	return &StdoutLogger{logger: zap.L().Named("audit")}
}

func (l *StdoutLogger) Log(ctx context.Context, entry Entry) {
	l.logger.Info("audit event",
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("action", entry.Action),
		zap.String("table", entry.Table),
		zap.String("record_id", entry.RecordID),
		zap.Any("new", entry.New),
	)
}

type nopLogger struct{}

func (nopLogger) Log(context.Context, Entry) {}

// Nop returns a Logger that discards entries.
func Nop() Logger { return nopLogger{} }
