package salary_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-payroll/internal/audit"
	"go-payroll/internal/domain"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	kafkaMock "go-payroll/internal/messaging/kafka/mock"
	"go-payroll/internal/salary"
	salaryerrors "go-payroll/internal/salary/errors"
	salaryMock "go-payroll/internal/salary/mock"
	"go-payroll/internal/shared/calendar"
	"go-payroll/internal/shared/contextutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type recordingAudit struct {
	entries []audit.Entry
}

func (a *recordingAudit) Log(_ context.Context, e audit.Entry) {
	a.entries = append(a.entries, e)
}

type serviceDeps struct {
	sqlMock     sqlmock.Sqlmock
	service     salary.Service
	repo        *salaryMock.MockRepository
	employees   *salaryMock.MockEmployeeSource
	workingDays *salaryMock.MockWorkingDaysSource
	attendance  *salaryMock.MockAttendanceSource
	outbox      *kafkaMock.MockOutboxRepository
	audit       *recordingAudit
}

// setupServiceTest runs bulk operations on one worker so transactions hit
// sqlmock in a predictable order.
func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	deps := &serviceDeps{
		sqlMock:     sqlMock,
		repo:        salaryMock.NewMockRepository(ctrl),
		employees:   salaryMock.NewMockEmployeeSource(ctrl),
		workingDays: salaryMock.NewMockWorkingDaysSource(ctrl),
		attendance:  salaryMock.NewMockAttendanceSource(ctrl),
		outbox:      kafkaMock.NewMockOutboxRepository(ctrl),
		audit:       &recordingAudit{},
	}
	deps.service = salary.NewService(db, deps.repo, salary.Sources{
		Employees:   deps.employees,
		WorkingDays: deps.workingDays,
		Attendance:  deps.attendance,
	}, deps.outbox, deps.audit, 1)
	return deps
}

func mechanic(id string) *salary.EmployeeSnapshot {
	return &salary.EmployeeSnapshot{
		ID:            id,
		EmployeeCode:  "EMP-0001",
		FullName:      "Budi Santoso",
		Department:    domain.DepartmentMechanic,
		MonthlySalary: decimal.NewFromInt(30000),
		Status:        domain.StatusActive,
	}
}

func januaryConfig() *salary.WorkingDaysSnapshot {
	return &salary.WorkingDaysSnapshot{TotalWorkingDays: 31, WorkingDates: calendar.DaysOfMonth(2024, 1)}
}

func jan(d int, present bool) salary.AttendanceDay {
	return salary.AttendanceDay{Date: calendar.MustNew(2024, 1, d), IsPresent: present}
}

// expectJanuary wires sources for a January 2024 mechanic with two unpaid
// absences and the given Sundays worked.
func (d *serviceDeps) expectJanuary(empID string, sundaysWorked ...int) {
	records := []salary.AttendanceDay{jan(2, false), jan(3, false)}
	for _, s := range sundaysWorked {
		records = append(records, jan(s, true))
	}
	d.employees.EXPECT().GetEmployee(gomock.Any(), empID).Return(mechanic(empID), nil)
	d.workingDays.EXPECT().GetWorkingDays(gomock.Any(), domain.DepartmentMechanic, 1, 2024).Return(januaryConfig(), nil)
	d.attendance.EXPECT().
		GetAttendanceForEmployee(gomock.Any(), empID, calendar.MustNew(2024, 1, 1), calendar.MustNew(2024, 1, 31)).
		Return(records, nil)
}

func TestSalaryService_Calculate(t *testing.T) {
	ctx := context.Background()
	empID := uuid.NewString()

	t.Run("no sunday work", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.expectJanuary(empID)

		resp, err := deps.service.Calculate(ctx, empID, 1, 2024)
		require.NoError(t, err)
		assert.Equal(t, "967.74", resp.PerDayRate)
		assert.Equal(t, "1935.48", resp.DeductionAmount)
		assert.Equal(t, "28064.52", resp.PayableSalary)
		assert.Equal(t, 31, resp.TotalWorkingDays)
	})

	t.Run("sunday work compensates then pays overtime", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.expectJanuary(empID, 7, 14, 21)

		resp, err := deps.service.Calculate(ctx, empID, 1, 2024)
		require.NoError(t, err)
		assert.Equal(t, 2, resp.SundayCompensationDays)
		assert.Equal(t, 1, resp.SundayOvertimeDays)
		assert.Equal(t, "0.00", resp.DeductionAmount)
		assert.Equal(t, "967.74", resp.OvertimeAmount)
		assert.Equal(t, "30967.74", resp.PayableSalary)
	})

	t.Run("no attendance yields full salary", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.employees.EXPECT().GetEmployee(ctx, empID).Return(mechanic(empID), nil)
		deps.workingDays.EXPECT().GetWorkingDays(ctx, domain.DepartmentMechanic, 1, 2024).Return(januaryConfig(), nil)
		deps.attendance.EXPECT().GetAttendanceForEmployee(ctx, empID, gomock.Any(), gomock.Any()).Return(nil, nil)

		resp, err := deps.service.Calculate(ctx, empID, 1, 2024)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.DaysPresent)
		assert.Equal(t, "30000.00", resp.PayableSalary)
	})

	t.Run("working days not configured", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.employees.EXPECT().GetEmployee(ctx, empID).Return(mechanic(empID), nil)
		deps.workingDays.EXPECT().GetWorkingDays(ctx, domain.DepartmentMechanic, 1, 2024).Return(nil, nil)

		resp, err := deps.service.Calculate(ctx, empID, 1, 2024)
		assert.ErrorIs(t, err, salaryerrors.ErrWorkingDaysNotConfigured)
		assert.Equal(t, salary.BreakdownResponse{}, resp)
	})

	t.Run("employee not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.employees.EXPECT().GetEmployee(ctx, empID).Return(nil, salaryerrors.ErrEmployeeNotFound)

		_, err := deps.service.Calculate(ctx, empID, 1, 2024)
		assert.ErrorIs(t, err, salaryerrors.ErrEmployeeNotFound)
	})

	t.Run("invalid month", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Calculate(ctx, empID, 13, 2024)
		assert.ErrorIs(t, err, salaryerrors.ErrInvalidPeriod)
	})

	t.Run("invalid employee id", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Calculate(ctx, "abc", 1, 2024)
		assert.ErrorIs(t, err, salaryerrors.ErrInvalidEmployeeID)
	})
}

func TestSalaryService_Save(t *testing.T) {
	ctx := contextutil.WithUserID(context.Background(), "admin-1")
	empID := uuid.NewString()

	t.Run("saved breakdown reads back unchanged", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.expectJanuary(empID, 7)

		var stored *salary.SalaryCalculation
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Upsert(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, calc *salary.SalaryCalculation) error {
				calc.ID = uuid.New()
				calc.UpdatedAt = time.Now()
				stored = calc
				return nil
			})

		saved, err := deps.service.Save(ctx, empID, 1, 2024)
		require.NoError(t, err)
		assert.Equal(t, "admin-1", saved.CalculatedBy)
		assert.Equal(t, "Budi Santoso", saved.EmployeeName)
		assert.Equal(t, 1, saved.SundayCompensationDays)
		require.Len(t, deps.audit.entries, 1)
		assert.Equal(t, "salary_calculations", deps.audit.entries[0].Table)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())

		deps.repo.EXPECT().FindByKey(ctx, empID, 1, 2024).Return(stored, nil)
		loaded, err := deps.service.Get(ctx, empID, 1, 2024)
		require.NoError(t, err)
		assert.Equal(t, saved.BreakdownResponse, loaded.BreakdownResponse)
	})

	t.Run("finalized row is not overwritten", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.expectJanuary(empID)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Upsert(ctx, gomock.Any()).Return(salaryerrors.ErrCalculationFinalized)

		_, err := deps.service.Save(ctx, empID, 1, 2024)
		assert.ErrorIs(t, err, salaryerrors.ErrCalculationFinalized)
		assert.Empty(t, deps.audit.entries)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("precondition failure never opens a transaction", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.employees.EXPECT().GetEmployee(ctx, empID).Return(mechanic(empID), nil)
		deps.workingDays.EXPECT().GetWorkingDays(ctx, domain.DepartmentMechanic, 1, 2024).Return(nil, nil)

		_, err := deps.service.Save(ctx, empID, 1, 2024)
		assert.ErrorIs(t, err, salaryerrors.ErrWorkingDaysNotConfigured)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestSalaryService_Bulk(t *testing.T) {
	ctx := context.Background()
	empA, empB, empC := uuid.NewString(), uuid.NewString(), uuid.NewString()

	t.Run("calculate collects per employee failures", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.employees.EXPECT().ListActive(ctx, "Mechanic").Return([]salary.EmployeeSnapshot{
			*mechanic(empA), *mechanic(empB),
		}, nil)
		deps.expectJanuary(empA)
		deps.employees.EXPECT().GetEmployee(gomock.Any(), empB).Return(nil, salaryerrors.ErrEmployeeNotFound)

		resp, err := deps.service.CalculateBulk(ctx, salary.BulkRequest{Month: 1, Year: 2024, Department: "mechanic"})
		require.NoError(t, err)
		require.Len(t, resp.Results, 1)
		assert.Equal(t, empA, resp.Results[0].EmployeeID)
		require.Len(t, resp.Failures, 1)
		assert.Equal(t, empB, resp.Failures[0].EmployeeID)
		assert.Equal(t, "NOT_FOUND", resp.Failures[0].Code)
	})

	t.Run("calculate with explicit ids dedupes", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.expectJanuary(empA)

		resp, err := deps.service.CalculateBulk(ctx, salary.BulkRequest{Month: 1, Year: 2024, EmployeeIDs: []string{empA, empA}})
		require.NoError(t, err)
		assert.Len(t, resp.Results, 1)
	})

	t.Run("unknown department", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.CalculateBulk(ctx, salary.BulkRequest{Month: 1, Year: 2024, Department: "Finance"})
		assert.ErrorIs(t, err, salaryerrors.ErrInvalidDepartment)
	})

	t.Run("save splits saved skipped and failed", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.expectJanuary(empA)
		deps.expectJanuary(empB)
		deps.employees.EXPECT().GetEmployee(gomock.Any(), empC).Return(mechanic(empC), nil)
		deps.workingDays.EXPECT().GetWorkingDays(gomock.Any(), domain.DepartmentMechanic, 1, 2024).Return(nil, nil)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo).Times(2)
		deps.repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, calc *salary.SalaryCalculation) error {
				if calc.EmployeeID.String() == empB {
					return salaryerrors.ErrCalculationFinalized
				}
				calc.ID = uuid.New()
				return nil
			}).Times(2)

		resp, err := deps.service.SaveBulk(ctx, salary.BulkRequest{Month: 1, Year: 2024, EmployeeIDs: []string{empA, empB, empC}})
		require.NoError(t, err)
		require.Len(t, resp.Saved, 1)
		assert.Equal(t, empA, resp.Saved[0].EmployeeID)
		assert.Equal(t, []string{empB}, resp.Skipped)
		require.Len(t, resp.Failures, 1)
		assert.Equal(t, "PRECONDITION_FAILED", resp.Failures[0].Code)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestSalaryService_Finalize(t *testing.T) {
	ctx := contextutil.WithRequestID(context.Background(), "req-1")
	calcID := uuid.New()
	empID := uuid.New()

	draft := func() *salary.SalaryCalculation {
		return &salary.SalaryCalculation{
			ID:            calcID,
			EmployeeID:    empID,
			Month:         1,
			Year:          2024,
			MonthlySalary: decimal.NewFromInt(30000),
			PayableSalary: decimal.RequireFromString("28064.516129032258"),
		}
	}

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, calcID.String()).Return(draft(), nil)
		deps.repo.EXPECT().MarkFinalized(ctx, calcID.String(), "admin-1", gomock.Any()).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, ev kafka.OutboxEvent) error {
				assert.Equal(t, events.SalaryFinalizedTopic, ev.Topic)
				assert.Equal(t, calcID.String(), ev.AggregateID)

				var payload events.SalaryFinalizedEvent
				require.NoError(t, json.Unmarshal(ev.Payload, &payload))
				assert.Equal(t, "28064.52", payload.PayableSalary)
				assert.Equal(t, "req-1", payload.RequestID)
				return nil
			})

		resp, err := deps.service.Finalize(ctx, calcID.String(), "admin-1")
		require.NoError(t, err)
		assert.True(t, resp.IsFinalized)
		require.NotNil(t, resp.FinalizedAt)
		require.NotNil(t, resp.FinalizedBy)
		assert.Equal(t, "admin-1", *resp.FinalizedBy)
		require.Len(t, deps.audit.entries, 1)
		assert.Equal(t, audit.ActionFinalize, deps.audit.entries[0].Action)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("second finalize is rejected", func(t *testing.T) {
		deps := setupServiceTest(t)
		finalized := draft()
		finalized.IsFinalized = true

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, calcID.String()).Return(finalized, nil)

		_, err := deps.service.Finalize(ctx, calcID.String(), "admin-1")
		assert.ErrorIs(t, err, salaryerrors.ErrAlreadyFinalized)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, calcID.String()).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Finalize(ctx, calcID.String(), "admin-1")
		assert.ErrorIs(t, err, salaryerrors.ErrCalculationNotFound)
	})

	t.Run("outbox failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, calcID.String()).Return(draft(), nil)
		deps.repo.EXPECT().MarkFinalized(ctx, calcID.String(), "admin-1", gomock.Any()).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("outbox down"))

		_, err := deps.service.Finalize(ctx, calcID.String(), "admin-1")
		assert.Error(t, err)
		assert.Empty(t, deps.audit.entries)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestSalaryService_RecalculateDraft(t *testing.T) {
	ctx := context.Background()
	empID := uuid.NewString()

	t.Run("no saved calculation", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByKey(ctx, empID, 1, 2024).Return(nil, gorm.ErrRecordNotFound)

		done, err := deps.service.RecalculateDraft(ctx, empID, 1, 2024)
		require.NoError(t, err)
		assert.False(t, done)
	})

	t.Run("finalized is left alone", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByKey(ctx, empID, 1, 2024).Return(&salary.SalaryCalculation{IsFinalized: true}, nil)

		done, err := deps.service.RecalculateDraft(ctx, empID, 1, 2024)
		require.NoError(t, err)
		assert.False(t, done)
	})

	t.Run("draft is re-saved", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByKey(ctx, empID, 1, 2024).Return(&salary.SalaryCalculation{}, nil)
		deps.expectJanuary(empID)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Upsert(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, calc *salary.SalaryCalculation) error {
				assert.Equal(t, "system", calc.CalculatedBy)
				assert.Equal(t, "28064.52", calc.PayableSalary.StringFixed(2))
				return nil
			})

		done, err := deps.service.RecalculateDraft(ctx, empID, 1, 2024)
		require.NoError(t, err)
		assert.True(t, done)
	})

	t.Run("department drafts", func(t *testing.T) {
		deps := setupServiceTest(t)
		empUUID := uuid.MustParse(empID)
		deps.repo.EXPECT().FindDraftsByPeriod(ctx, 1, 2024, "Mechanic").
			Return([]salary.SalaryCalculation{{EmployeeID: empUUID}}, nil)
		deps.repo.EXPECT().FindByKey(gomock.Any(), empID, 1, 2024).Return(nil, gorm.ErrRecordNotFound)

		n, err := deps.service.RecalculateDepartmentDrafts(ctx, "Mechanic", 1, 2024)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})
}

func TestSalaryService_GetMonthly(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes department", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindAllByPeriod(ctx, 1, 2024, "Housekeeping").Return([]salary.SalaryCalculation{
			{ID: uuid.New(), EmployeeID: uuid.New(), Month: 1, Year: 2024, Employee: &salary.EmployeeRef{FullName: "Siti"}},
		}, nil)

		resp, err := deps.service.GetMonthly(ctx, 1, 2024, "housekeeping")
		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "Siti", resp[0].EmployeeName)
	})

	t.Run("invalid department", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetMonthly(ctx, 1, 2024, "Finance")
		assert.ErrorIs(t, err, salaryerrors.ErrInvalidDepartment)
	})
}
