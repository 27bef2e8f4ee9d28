package attendance

import (
	"context"
	"database/sql"
	"strings"
	"time"

	attendanceerrors "go-payroll/internal/attendance/errors"
	"go-payroll/internal/audit"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/shared/calendar"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	MarkBulk(ctx context.Context, req MarkBulkRequest) (MarkBulkResponse, error)
	GetByDate(ctx context.Context, date string) ([]AttendanceResponse, error)
	GetByEmployee(ctx context.Context, employeeID, start, end string) ([]AttendanceResponse, error)
	GetByRange(ctx context.Context, start, end string) ([]AttendanceResponse, error)
	GetAbsentees(ctx context.Context, month, year int) ([]AttendanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	audit  audit.Logger
	logger *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	auditLogger audit.Logger,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if auditLogger == nil {
		auditLogger = audit.Nop()
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		audit:  auditLogger,
		logger: l,
	}
}

type attendanceKey struct {
	employeeID uuid.UUID
	date       calendar.Date
}

// normalize turns a request into a row. Presence clears paid leave and the
// absence reason; the Sunday flag always follows the date.
func normalize(req MarkAttendanceRequest, markedBy string) (Attendance, error) {
	empID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return Attendance{}, attendanceerrors.ErrInvalidEmployeeID
	}
	date, err := calendar.Parse(req.Date)
	if err != nil {
		return Attendance{}, attendanceerrors.ErrInvalidDate
	}

	present := req.IsPresent != nil && *req.IsPresent
	row := Attendance{
		EmployeeID:     empID,
		AttendanceDate: date,
		IsPresent:      present,
		IsSundayWork:   date.IsSunday(),
		MarkedBy:       markedBy,
	}
	if !present {
		row.IsPaidLeave = req.IsPaidLeave
		if reason := strings.TrimSpace(req.AbsenceReason); reason != "" {
			row.AbsenceReason = &reason
		}
	}
	return row, nil
}

func (s *service) MarkBulk(ctx context.Context, req MarkBulkRequest) (MarkBulkResponse, error) {
	meta := contextutil.ExtractMetadata(ctx)
	if len(req.Records) == 0 {
		return MarkBulkResponse{}, attendanceerrors.ErrEmptyBatch
	}

	// last record wins for a repeated (employee, date)
	index := make(map[attendanceKey]int, len(req.Records))
	rows := make([]Attendance, 0, len(req.Records))
	for _, r := range req.Records {
		row, err := normalize(r, meta.UserID)
		if err != nil {
			return MarkBulkResponse{}, err
		}
		key := attendanceKey{employeeID: row.EmployeeID, date: row.AttendanceDate}
		if i, ok := index[key]; ok {
			rows[i] = row
			continue
		}
		index[key] = len(rows)
		rows = append(rows, row)
	}

	s.logger.Debug("mark attendance requested",
		zap.String("request_id", meta.RequestID),
		zap.Int("records", len(rows)),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark attendance begin tx failed", zap.String("request_id", meta.RequestID), zap.Error(err))
		return MarkBulkResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).UpsertMany(ctx, rows); err != nil {
		s.logger.Error("mark attendance persist failed", zap.String("request_id", meta.RequestID), zap.Error(err))
		return MarkBulkResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		entries := make([]events.AttendanceEntry, 0, len(rows))
		for _, r := range rows {
			entries = append(entries, events.AttendanceEntry{
				EmployeeID: r.EmployeeID.String(),
				Date:       r.AttendanceDate.String(),
			})
		}
		event, err := kafka.NewOutboxEvent(
			meta.RequestID,
			"attendance",
			rows[0].AttendanceDate.String(),
			events.AttendanceMarkedEventType,
			events.AttendanceMarkedTopic,
			events.AttendanceMarkedEvent{
				EventType:  events.AttendanceMarkedEventType,
				RequestID:  meta.RequestID,
				MarkedBy:   meta.UserID,
				Entries:    entries,
				OccurredAt: time.Now().UTC(),
			},
		)
		if err != nil {
			return MarkBulkResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("mark attendance outbox persist failed", zap.String("request_id", meta.RequestID), zap.Error(err))
			return MarkBulkResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", meta.RequestID), zap.Error(err))
		return MarkBulkResponse{}, err
	}

	resp := MarkBulkResponse{Marked: len(rows), Records: mapToListResponse(rows)}
	s.audit.Log(ctx, audit.Entry{
		Action:   audit.ActionUpsert,
		Table:    "attendance",
		RecordID: rows[0].AttendanceDate.String(),
		New:      resp.Records,
	})

	s.logger.Info("mark attendance success",
		zap.String("request_id", meta.RequestID),
		zap.Int("marked", resp.Marked),
	)
	return resp, nil
}

func parseRange(start, end string) (calendar.Date, calendar.Date, error) {
	from, err := calendar.Parse(start)
	if err != nil {
		return calendar.Date{}, calendar.Date{}, attendanceerrors.ErrInvalidDate
	}
	to, err := calendar.Parse(end)
	if err != nil {
		return calendar.Date{}, calendar.Date{}, attendanceerrors.ErrInvalidDate
	}
	if from.After(to) {
		return calendar.Date{}, calendar.Date{}, attendanceerrors.ErrInvalidRange
	}
	return from, to, nil
}

func (s *service) GetByDate(ctx context.Context, date string) ([]AttendanceResponse, error) {
	d, err := calendar.Parse(date)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDate
	}

	rows, err := s.repo.FindByDate(ctx, d)
	if err != nil {
		s.logger.Error("get attendance by date failed", zap.String("date", date), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID, start, end string) ([]AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, attendanceerrors.ErrInvalidEmployeeID
	}
	from, to, err := parseRange(start, end)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FindByEmployee(ctx, employeeID, from, to)
	if err != nil {
		s.logger.Error("get attendance by employee failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByRange(ctx context.Context, start, end string) ([]AttendanceResponse, error) {
	from, to, err := parseRange(start, end)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FindByRange(ctx, from, to)
	if err != nil {
		s.logger.Error("get attendance by range failed", zap.String("start", start), zap.String("end", end), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetAbsentees(ctx context.Context, month, year int) ([]AttendanceResponse, error) {
	if err := calendar.ValidateMonth(month, year); err != nil {
		return nil, attendanceerrors.ErrInvalidPeriod
	}
	from, to := calendar.MonthRange(year, month)

	rows, err := s.repo.FindAbsentees(ctx, from, to)
	if err != nil {
		s.logger.Error("get absentees failed", zap.Int("month", month), zap.Int("year", year), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}
