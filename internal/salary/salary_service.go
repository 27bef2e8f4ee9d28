package salary

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"go-payroll/internal/audit"
	"go-payroll/internal/domain"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	salaryerrors "go-payroll/internal/salary/errors"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/calendar"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const DefaultBulkWorkers = 4

type Service interface {
	Calculate(ctx context.Context, employeeID string, month, year int) (BreakdownResponse, error)
	CalculateBulk(ctx context.Context, req BulkRequest) (BulkCalculationResponse, error)
	Save(ctx context.Context, employeeID string, month, year int) (SalaryCalculationResponse, error)
	SaveBulk(ctx context.Context, req BulkRequest) (BulkSaveResponse, error)
	Get(ctx context.Context, employeeID string, month, year int) (SalaryCalculationResponse, error)
	GetByID(ctx context.Context, id string) (SalaryCalculationResponse, error)
	GetMonthly(ctx context.Context, month, year int, department string) ([]SalaryCalculationResponse, error)
	Finalize(ctx context.Context, id, actor string) (SalaryCalculationResponse, error)
	// RecalculateDraft re-saves an existing draft. It reports false when there
	// is no saved calculation or the saved one is finalized.
	RecalculateDraft(ctx context.Context, employeeID string, month, year int) (bool, error)
	RecalculateDepartmentDrafts(ctx context.Context, department string, month, year int) (int, error)
}

type Sources struct {
	Employees   EmployeeSource
	WorkingDays WorkingDaysSource
	Attendance  AttendanceSource
}

type service struct {
	db          *sql.DB
	repo        Repository
	employees   EmployeeSource
	workingDays WorkingDaysSource
	attendance  AttendanceSource
	outbox      kafka.OutboxRepository
	audit       audit.Logger
	workers     int
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	sources Sources,
	outboxRepo kafka.OutboxRepository,
	auditLogger audit.Logger,
	bulkWorkers int,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("salary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.service")
	}
	if auditLogger == nil {
		auditLogger = audit.Nop()
	}
	if bulkWorkers <= 0 {
		bulkWorkers = DefaultBulkWorkers
	}
	return &service{
		db:          db,
		repo:        repo,
		employees:   sources.Employees,
		workingDays: sources.WorkingDays,
		attendance:  sources.Attendance,
		outbox:      outboxRepo,
		audit:       auditLogger,
		workers:     bulkWorkers,
		logger:      l,
	}
}

func (s *service) breakdown(ctx context.Context, employeeID string, month, year int) (Breakdown, *EmployeeSnapshot, error) {
	if err := calendar.ValidateMonth(month, year); err != nil {
		return Breakdown{}, nil, salaryerrors.ErrInvalidPeriod
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return Breakdown{}, nil, salaryerrors.ErrInvalidEmployeeID
	}

	emp, err := s.employees.GetEmployee(ctx, employeeID)
	if err != nil {
		return Breakdown{}, nil, err
	}

	wd, err := s.workingDays.GetWorkingDays(ctx, emp.Department, month, year)
	if err != nil {
		return Breakdown{}, nil, err
	}
	if wd == nil {
		return Breakdown{}, nil, salaryerrors.ErrWorkingDaysNotConfigured
	}

	start, end := calendar.MonthRange(year, month)
	days, err := s.attendance.GetAttendanceForEmployee(ctx, employeeID, start, end)
	if err != nil {
		return Breakdown{}, nil, err
	}

	return Compute(Input{
		EmployeeID:       employeeID,
		Month:            month,
		Year:             year,
		MonthlySalary:    emp.MonthlySalary,
		TotalWorkingDays: wd.TotalWorkingDays,
		WorkingDates:     wd.WorkingDates,
		Attendance:       days,
	}), emp, nil
}

func (s *service) Calculate(ctx context.Context, employeeID string, month, year int) (BreakdownResponse, error) {
	b, _, err := s.breakdown(ctx, employeeID, month, year)
	if err != nil {
		s.logger.Warn("calculate salary failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("employee_id", employeeID),
			zap.Int("month", month),
			zap.Int("year", year),
			zap.Error(err),
		)
		return BreakdownResponse{}, err
	}
	return mapBreakdown(b), nil
}

// resolveTargets returns the employee ids a bulk request applies to.
func (s *service) resolveTargets(ctx context.Context, req BulkRequest) ([]string, error) {
	if err := calendar.ValidateMonth(req.Month, req.Year); err != nil {
		return nil, salaryerrors.ErrInvalidPeriod
	}

	if len(req.EmployeeIDs) > 0 {
		seen := make(map[string]struct{}, len(req.EmployeeIDs))
		ids := make([]string, 0, len(req.EmployeeIDs))
		for _, id := range req.EmployeeIDs {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
		return ids, nil
	}

	department := ""
	if req.Department != "" {
		d, ok := domain.ParseDepartment(req.Department)
		if !ok {
			return nil, salaryerrors.ErrInvalidDepartment
		}
		department = string(d)
	}

	emps, err := s.employees.ListActive(ctx, department)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(emps))
	for _, e := range emps {
		ids = append(ids, e.ID)
	}
	return ids, nil
}

// forEach runs fn for every id with at most s.workers in flight. fn owns its
// own error handling; one failure never stops the others.
func (s *service) forEach(ctx context.Context, ids []string, fn func(ctx context.Context, i int, id string)) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			fn(gctx, i, id)
			return nil
		})
	}
	_ = g.Wait()
}

func failureOf(employeeID string, err error) BulkFailure {
	httpErr := apperror.ToHTTP(err)
	return BulkFailure{EmployeeID: employeeID, Code: httpErr.Code, Message: httpErr.Message}
}

func (s *service) CalculateBulk(ctx context.Context, req BulkRequest) (BulkCalculationResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	ids, err := s.resolveTargets(ctx, req)
	if err != nil {
		return BulkCalculationResponse{}, err
	}

	results := make([]*BreakdownResponse, len(ids))
	failures := make([]*BulkFailure, len(ids))
	s.forEach(ctx, ids, func(ctx context.Context, i int, id string) {
		b, _, err := s.breakdown(ctx, id, req.Month, req.Year)
		if err != nil {
			f := failureOf(id, err)
			failures[i] = &f
			return
		}
		r := mapBreakdown(b)
		results[i] = &r
	})

	resp := BulkCalculationResponse{
		Month:    req.Month,
		Year:     req.Year,
		Results:  make([]BreakdownResponse, 0, len(ids)),
		Failures: make([]BulkFailure, 0),
	}
	for i := range ids {
		if results[i] != nil {
			resp.Results = append(resp.Results, *results[i])
		}
		if failures[i] != nil {
			resp.Failures = append(resp.Failures, *failures[i])
		}
	}

	s.logger.Info("bulk salary calculation done",
		zap.String("request_id", rid),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
		zap.Int("calculated", len(resp.Results)),
		zap.Int("failed", len(resp.Failures)),
	)
	return resp, nil
}

func (s *service) save(ctx context.Context, employeeID string, month, year int) (*SalaryCalculation, error) {
	meta := contextutil.ExtractMetadata(ctx)

	b, emp, err := s.breakdown(ctx, employeeID, month, year)
	if err != nil {
		return nil, err
	}

	actor := meta.UserID
	if actor == "" {
		actor = "system"
	}
	calc := newCalculation(b, uuid.MustParse(employeeID), actor)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("save salary begin tx failed", zap.String("request_id", meta.RequestID), zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Upsert(ctx, calc); err != nil {
		if !errors.Is(err, salaryerrors.ErrCalculationFinalized) {
			s.logger.Error("save salary persist failed",
				zap.String("request_id", meta.RequestID),
				zap.String("employee_id", employeeID),
				zap.Error(err),
			)
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", meta.RequestID), zap.Error(err))
		return nil, err
	}

	calc.Employee = &EmployeeRef{
		ID:           calc.EmployeeID,
		EmployeeCode: emp.EmployeeCode,
		FullName:     emp.FullName,
		Department:   string(emp.Department),
	}

	s.audit.Log(ctx, audit.Entry{
		Action:   audit.ActionUpsert,
		Table:    "salary_calculations",
		RecordID: calc.ID.String(),
		New:      mapBreakdown(b),
	})
	return calc, nil
}

func (s *service) Save(ctx context.Context, employeeID string, month, year int) (SalaryCalculationResponse, error) {
	calc, err := s.save(ctx, employeeID, month, year)
	if err != nil {
		return SalaryCalculationResponse{}, err
	}

	s.logger.Info("salary calculation saved",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("calculation_id", calc.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("payable_salary", calc.PayableSalary.StringFixed(2)),
	)
	return mapToResponse(*calc), nil
}

func (s *service) SaveBulk(ctx context.Context, req BulkRequest) (BulkSaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	ids, err := s.resolveTargets(ctx, req)
	if err != nil {
		return BulkSaveResponse{}, err
	}

	saved := make([]*SalaryCalculationResponse, len(ids))
	skipped := make([]bool, len(ids))
	failures := make([]*BulkFailure, len(ids))
	s.forEach(ctx, ids, func(ctx context.Context, i int, id string) {
		calc, err := s.save(ctx, id, req.Month, req.Year)
		switch {
		case errors.Is(err, salaryerrors.ErrCalculationFinalized):
			skipped[i] = true
		case err != nil:
			f := failureOf(id, err)
			failures[i] = &f
		default:
			r := mapToResponse(*calc)
			saved[i] = &r
		}
	})

	resp := BulkSaveResponse{
		Month:    req.Month,
		Year:     req.Year,
		Saved:    make([]SalaryCalculationResponse, 0, len(ids)),
		Skipped:  make([]string, 0),
		Failures: make([]BulkFailure, 0),
	}
	for i, id := range ids {
		switch {
		case saved[i] != nil:
			resp.Saved = append(resp.Saved, *saved[i])
		case skipped[i]:
			resp.Skipped = append(resp.Skipped, id)
		case failures[i] != nil:
			resp.Failures = append(resp.Failures, *failures[i])
		}
	}

	s.logger.Info("bulk salary save done",
		zap.String("request_id", rid),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
		zap.Int("saved", len(resp.Saved)),
		zap.Int("skipped", len(resp.Skipped)),
		zap.Int("failed", len(resp.Failures)),
	)
	return resp, nil
}

func (s *service) Get(ctx context.Context, employeeID string, month, year int) (SalaryCalculationResponse, error) {
	if err := calendar.ValidateMonth(month, year); err != nil {
		return SalaryCalculationResponse{}, salaryerrors.ErrInvalidPeriod
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return SalaryCalculationResponse{}, salaryerrors.ErrInvalidEmployeeID
	}

	calc, err := s.repo.FindByKey(ctx, employeeID, month, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryCalculationResponse{}, salaryerrors.ErrCalculationNotFound
		}
		return SalaryCalculationResponse{}, err
	}
	return mapToResponse(*calc), nil
}

func (s *service) GetByID(ctx context.Context, id string) (SalaryCalculationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SalaryCalculationResponse{}, salaryerrors.ErrInvalidCalculationID
	}

	calc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryCalculationResponse{}, salaryerrors.ErrCalculationNotFound
		}
		return SalaryCalculationResponse{}, err
	}
	return mapToResponse(*calc), nil
}

func (s *service) GetMonthly(ctx context.Context, month, year int, department string) ([]SalaryCalculationResponse, error) {
	if err := calendar.ValidateMonth(month, year); err != nil {
		return nil, salaryerrors.ErrInvalidPeriod
	}
	if department != "" {
		d, ok := domain.ParseDepartment(department)
		if !ok {
			return nil, salaryerrors.ErrInvalidDepartment
		}
		department = string(d)
	}

	calcs, err := s.repo.FindAllByPeriod(ctx, month, year, department)
	if err != nil {
		s.logger.Error("get monthly salaries failed", zap.Int("month", month), zap.Int("year", year), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(calcs), nil
}

func (s *service) Finalize(ctx context.Context, id, actor string) (SalaryCalculationResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if _, err := uuid.Parse(id); err != nil {
		return SalaryCalculationResponse{}, salaryerrors.ErrInvalidCalculationID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("finalize begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return SalaryCalculationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	calc, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryCalculationResponse{}, salaryerrors.ErrCalculationNotFound
		}
		return SalaryCalculationResponse{}, err
	}
	if calc.IsFinalized {
		return SalaryCalculationResponse{}, salaryerrors.ErrAlreadyFinalized
	}

	now := time.Now().UTC()
	if err := qtx.MarkFinalized(ctx, id, actor, now); err != nil {
		return SalaryCalculationResponse{}, err
	}

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(
			rid,
			"salary_calculation",
			id,
			events.SalaryFinalizedEventType,
			events.SalaryFinalizedTopic,
			events.SalaryFinalizedEvent{
				EventType:     events.SalaryFinalizedEventType,
				RequestID:     rid,
				CalculationID: id,
				EmployeeID:    calc.EmployeeID.String(),
				Month:         calc.Month,
				Year:          calc.Year,
				PayableSalary: calc.PayableSalary.StringFixed(2),
				FinalizedBy:   actor,
				FinalizedAt:   now,
			},
		)
		if err != nil {
			return SalaryCalculationResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("finalize outbox persist failed", zap.String("request_id", rid), zap.Error(err))
			return SalaryCalculationResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return SalaryCalculationResponse{}, err
	}

	old := mapToResponse(*calc)
	calc.IsFinalized = true
	calc.FinalizedAt = &now
	calc.FinalizedBy = &actor
	calc.UpdatedAt = now
	resp := mapToResponse(*calc)

	s.audit.Log(ctx, audit.Entry{
		Action:   audit.ActionFinalize,
		Table:    "salary_calculations",
		RecordID: id,
		Old:      old,
		New:      resp,
	})

	s.logger.Info("salary calculation finalized",
		zap.String("request_id", rid),
		zap.String("calculation_id", id),
		zap.String("finalized_by", actor),
	)
	return resp, nil
}

func (s *service) RecalculateDraft(ctx context.Context, employeeID string, month, year int) (bool, error) {
	existing, err := s.repo.FindByKey(ctx, employeeID, month, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if existing.IsFinalized {
		return false, nil
	}

	if _, err := s.save(ctx, employeeID, month, year); err != nil {
		// finalized between the read and the write
		if errors.Is(err, salaryerrors.ErrCalculationFinalized) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *service) RecalculateDepartmentDrafts(ctx context.Context, department string, month, year int) (int, error) {
	if err := calendar.ValidateMonth(month, year); err != nil {
		return 0, salaryerrors.ErrInvalidPeriod
	}
	d, ok := domain.ParseDepartment(department)
	if !ok {
		return 0, salaryerrors.ErrInvalidDepartment
	}

	drafts, err := s.repo.FindDraftsByPeriod(ctx, month, year, string(d))
	if err != nil {
		return 0, err
	}

	ids := make([]string, 0, len(drafts))
	for _, c := range drafts {
		ids = append(ids, c.EmployeeID.String())
	}

	var (
		mu    sync.Mutex
		count int
		errs  []error
	)
	s.forEach(ctx, ids, func(ctx context.Context, _ int, id string) {
		done, err := s.RecalculateDraft(ctx, id, month, year)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			errs = append(errs, err)
			return
		}
		if done {
			count++
		}
	})

	s.logger.Info("department drafts recalculated",
		zap.String("department", string(d)),
		zap.Int("month", month),
		zap.Int("year", year),
		zap.Int("recalculated", count),
		zap.Int("failed", len(errs)),
	)
	return count, errors.Join(errs...)
}
