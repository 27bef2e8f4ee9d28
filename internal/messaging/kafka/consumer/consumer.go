package consumer

import (
	"context"
	"time"

	"go-payroll/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var (
	retryBaseDelay = time.Second
	retryMaxDelay  = 30 * time.Second
)

// MessageReader is the part of *kafkago.Reader the consumers need.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// DraftRecalculator re-saves draft salary calculations. Finalized ones are
// never touched.
type DraftRecalculator interface {
	RecalculateDraft(ctx context.Context, employeeID string, month, year int) (bool, error)
	RecalculateDepartmentDrafts(ctx context.Context, department string, month, year int) (int, error)
}

// messageContext carries the producer's request id into the handler.
func messageContext(ctx context.Context, msg kafkago.Message) context.Context {
	for _, h := range msg.Headers {
		if h.Key == "request_id" && len(h.Value) > 0 {
			return contextutil.WithRequestID(ctx, string(h.Value))
		}
	}
	return ctx
}

// retryInPlace runs handle until it succeeds or ctx is done, doubling the
// delay between attempts up to retryMaxDelay. The reader's offset has already
// moved past msg, so fetching the next message before this one succeeds
// would let a later commit skip it.
func retryInPlace(ctx context.Context, log *zap.Logger, msg kafkago.Message, handle func() error) error {
	delay := retryBaseDelay
	for attempt := 1; ; attempt++ {
		err := handle()
		if err == nil {
			return nil
		}

		log.Warn("message processing failed, retrying",
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
		if delay > retryMaxDelay {
			delay = retryMaxDelay
		}
	}
}
