package consumer_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka/consumer"
	"go-payroll/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeReader hands out queued messages and cancels the consumer once the
// queue is drained.
type fakeReader struct {
	mu        sync.Mutex
	queue     []kafkago.Message
	committed []kafkago.Message
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queue) == 0 {
		r.cancel()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.queue[0]
	r.queue = r.queue[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

type draftCall struct {
	employeeID string
	month      int
	year       int
	requestID  string
}

// fakeRecalculator fails the first failDrafts / failDepartments calls.
type fakeRecalculator struct {
	drafts          []draftCall
	departments     []string
	failDrafts      int
	failDepartments int
	afterDraft      func(calls int)
}

func (f *fakeRecalculator) RecalculateDraft(ctx context.Context, employeeID string, month, year int) (bool, error) {
	f.drafts = append(f.drafts, draftCall{employeeID, month, year, contextutil.GetRequestID(ctx)})
	if f.afterDraft != nil {
		f.afterDraft(len(f.drafts))
	}
	if len(f.drafts) <= f.failDrafts {
		return false, fmt.Errorf("db down (call %d)", len(f.drafts))
	}
	return true, nil
}

func (f *fakeRecalculator) RecalculateDepartmentDrafts(_ context.Context, department string, month, year int) (int, error) {
	f.departments = append(f.departments, department)
	if len(f.departments) <= f.failDepartments {
		return 0, fmt.Errorf("db down (call %d)", len(f.departments))
	}
	return 2, nil
}

func mustMessage(t *testing.T, v any) kafkago.Message {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return kafkago.Message{
		Value:   body,
		Headers: []kafkago.Header{{Key: "request_id", Value: []byte("req-9")}},
	}
}

func attendanceMessage(t *testing.T, offset int64, employeeID, date string) kafkago.Message {
	msg := mustMessage(t, events.AttendanceMarkedEvent{
		Entries: []events.AttendanceEntry{{EmployeeID: employeeID, Date: date}},
	})
	msg.Offset = offset
	return msg
}

func fastRetries(t *testing.T) {
	t.Cleanup(consumer.SetRetryDelays(time.Millisecond, 5*time.Millisecond))
}

func TestConsumeAttendanceMarked(t *testing.T) {
	t.Run("dedupes employee months and commits", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		reader := &fakeReader{cancel: cancel, queue: []kafkago.Message{
			mustMessage(t, events.AttendanceMarkedEvent{
				EventType: events.AttendanceMarkedEventType,
				Entries: []events.AttendanceEntry{
					{EmployeeID: "emp-1", Date: "2024-03-04"},
					{EmployeeID: "emp-1", Date: "2024-03-05"},
					{EmployeeID: "emp-1", Date: "2024-04-01"},
					{EmployeeID: "emp-2", Date: "2024-03-04"},
				},
			}),
		}}
		rec := &fakeRecalculator{}

		consumer.ConsumeAttendanceMarked(ctx, reader, rec, zap.NewNop())

		require.Len(t, rec.drafts, 3)
		assert.Equal(t, draftCall{"emp-1", 3, 2024, "req-9"}, rec.drafts[0])
		assert.Equal(t, draftCall{"emp-1", 4, 2024, "req-9"}, rec.drafts[1])
		assert.Equal(t, draftCall{"emp-2", 3, 2024, "req-9"}, rec.drafts[2])
		assert.Len(t, reader.committed, 1)
	})

	t.Run("undecodable message is committed and skipped", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		reader := &fakeReader{cancel: cancel, queue: []kafkago.Message{{Value: []byte("{not json")}}}
		rec := &fakeRecalculator{}

		consumer.ConsumeAttendanceMarked(ctx, reader, rec, zap.NewNop())

		assert.Empty(t, rec.drafts)
		assert.Len(t, reader.committed, 1)
	})

	t.Run("failed message is retried before the next one is committed", func(t *testing.T) {
		fastRetries(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		reader := &fakeReader{cancel: cancel, queue: []kafkago.Message{
			attendanceMessage(t, 0, "emp-1", "2024-03-04"),
			attendanceMessage(t, 1, "emp-2", "2024-03-04"),
		}}
		rec := &fakeRecalculator{failDrafts: 1}

		consumer.ConsumeAttendanceMarked(ctx, reader, rec, zap.NewNop())

		require.Len(t, rec.drafts, 3)
		assert.Equal(t, "emp-1", rec.drafts[0].employeeID)
		assert.Equal(t, "emp-1", rec.drafts[1].employeeID)
		assert.Equal(t, "emp-2", rec.drafts[2].employeeID)

		require.Len(t, reader.committed, 2)
		assert.Equal(t, int64(0), reader.committed[0].Offset)
		assert.Equal(t, int64(1), reader.committed[1].Offset)
	})

	t.Run("shutdown during retries leaves message uncommitted", func(t *testing.T) {
		fastRetries(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		reader := &fakeReader{cancel: cancel, queue: []kafkago.Message{
			attendanceMessage(t, 0, "emp-1", "2024-03-04"),
			attendanceMessage(t, 1, "emp-2", "2024-03-04"),
		}}
		rec := &fakeRecalculator{failDrafts: 100, afterDraft: func(calls int) {
			if calls == 3 {
				cancel()
			}
		}}

		consumer.ConsumeAttendanceMarked(ctx, reader, rec, zap.NewNop())

		assert.Len(t, rec.drafts, 3)
		assert.Empty(t, reader.committed)
		// offset 1 was never fetched
		assert.Len(t, reader.queue, 1)
	})
}

func TestConsumeWorkingDaysSet(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{cancel: cancel, queue: []kafkago.Message{
		mustMessage(t, events.WorkingDaysSetEvent{Department: "Mechanic", Month: 3, Year: 2024}),
	}}
	rec := &fakeRecalculator{}

	consumer.ConsumeWorkingDaysSet(ctx, reader, rec, zap.NewNop())

	assert.Equal(t, []string{"Mechanic"}, rec.departments)
	assert.Len(t, reader.committed, 1)
}

func TestConsumeWorkingDaysSet_RetriesInPlace(t *testing.T) {
	fastRetries(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := mustMessage(t, events.WorkingDaysSetEvent{Department: "Mechanic", Month: 3, Year: 2024})
	second := mustMessage(t, events.WorkingDaysSetEvent{Department: "Salesman", Month: 3, Year: 2024})
	second.Offset = 1

	reader := &fakeReader{cancel: cancel, queue: []kafkago.Message{first, second}}
	rec := &fakeRecalculator{failDepartments: 2}

	consumer.ConsumeWorkingDaysSet(ctx, reader, rec, zap.NewNop())

	assert.Equal(t, []string{"Mechanic", "Mechanic", "Mechanic", "Salesman"}, rec.departments)
	require.Len(t, reader.committed, 2)
	assert.Equal(t, int64(0), reader.committed[0].Offset)
	assert.Equal(t, int64(1), reader.committed[1].Offset)
}
