package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-payroll/internal/audit"
	"go-payroll/internal/domain"
	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	employeeMock "go-payroll/internal/employee/mock"
	"go-payroll/internal/shared/counter"
	counterMock "go-payroll/internal/shared/counter/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingAudit struct {
	entries []audit.Entry
}

func (a *recordingAudit) Log(_ context.Context, e audit.Entry) {
	a.entries = append(a.entries, e)
}

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   employee.Service
	repo      *employeeMock.MockRepository
	counter   *counterMock.MockRepository
	redismock redismock.ClientMock
	audit     *recordingAudit
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rdb, redisMock := redismock.NewClientMock()
	repo := employeeMock.NewMockRepository(ctrl)
	counterRepo := counterMock.NewMockRepository(ctrl)
	auditLog := &recordingAudit{}

	svc := employee.NewService(db, repo, counterRepo, rdb, auditLog)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		counter:   counterRepo,
		redismock: redisMock,
		audit:     auditLog,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func activeKeys() []string {
	return []string{
		employee.GetActiveEmployeesKey(""),
		employee.GetActiveEmployeesKey("Salesman"),
		employee.GetActiveEmployeesKey("Mechanic"),
		employee.GetActiveEmployeesKey("Housekeeping"),
		employee.GetActiveEmployeesKey("Management"),
	}
}

func salary(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success - auto generate employee code", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := employee.CreateEmployeeRequest{
			FullName:      "Budi Santoso",
			Department:    "mechanic",
			MonthlySalary: salary("30000"),
			DateOfJoining: "2023-05-02",
		}

		deps.counter.EXPECT().GetNextValue(ctx, counter.EmployeeCode).Return(int64(123), nil)
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				assert.Equal(t, "EMP-000123", e.EmployeeCode)
				assert.Equal(t, domain.DepartmentMechanic, e.Department)
				assert.Equal(t, domain.StatusActive, e.Status)
				assert.True(t, e.MonthlySalary.Equal(decimal.NewFromInt(30000)))
				assert.Equal(t, "2023-05-02", e.DateOfJoining.String())
				return nil
			})
		deps.redismock.ExpectDel(activeKeys()...).SetVal(1)

		resp, err := deps.service.Create(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, "EMP-000123", resp.EmployeeCode)
		assert.Equal(t, "30000.00", resp.MonthlySalary)
		assert.Equal(t, "Mechanic", resp.Department)
		require.Len(t, deps.audit.entries, 1)
		assert.Equal(t, audit.ActionCreate, deps.audit.entries[0].Action)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("invalid department", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			FullName:      "X",
			Department:    "Finance",
			MonthlySalary: salary("100"),
		})
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidDepartment)
	})

	t.Run("negative salary", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			FullName:      "X",
			Department:    "Salesman",
			MonthlySalary: salary("-1"),
		})
		assert.ErrorIs(t, err, employeeerrors.ErrNegativeSalary)
	})

	t.Run("duplicate code maps to conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_code"})

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			EmployeeCode:  "EMP-000001",
			FullName:      "Ani",
			Department:    "Salesman",
			MonthlySalary: salary("25000"),
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeCodeAlreadyExists)
		assert.Empty(t, deps.audit.entries)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_GetActive(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit", func(t *testing.T) {
		deps := setupServiceTest(t)
		cached, _ := json.Marshal([]employee.EmployeeResponse{{ID: "1", FullName: "Cached"}})
		deps.redismock.ExpectGet(employee.GetActiveEmployeesKey("Mechanic")).SetVal(string(cached))

		resp, err := deps.service.GetActive(ctx, "Mechanic")
		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "Cached", resp[0].FullName)
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		deps := setupServiceTest(t)
		key := employee.GetActiveEmployeesKey("")
		id := uuid.New()
		emps := []employee.Employee{{
			ID:            id,
			FullName:      "Sari",
			Department:    domain.DepartmentHousekeeping,
			MonthlySalary: decimal.NewFromInt(20000),
			Status:        domain.StatusActive,
		}}
		expected, _ := json.Marshal([]employee.EmployeeResponse{{
			ID:            id.String(),
			FullName:      "Sari",
			Department:    "Housekeeping",
			MonthlySalary: "20000.00",
			Status:        "Active",
		}})

		deps.redismock.ExpectGet(key).RedisNil()
		deps.repo.EXPECT().FindActive(ctx, "").Return(emps, nil)
		deps.redismock.ExpectSet(key, expected, time.Hour).SetVal("OK")

		resp, err := deps.service.GetActive(ctx, "")
		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "Sari", resp[0].FullName)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("invalid department", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.GetActive(ctx, "Finance")
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidDepartment)
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, sql.ErrNoRows)

		_, err := deps.service.GetByID(ctx, id)
		assert.Error(t, err)
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("partial update keeps other fields", func(t *testing.T) {
		deps := setupServiceTest(t)
		existing := &employee.Employee{
			ID:            id,
			EmployeeCode:  "EMP-000010",
			FullName:      "Rudi",
			Department:    domain.DepartmentSalesman,
			MonthlySalary: decimal.NewFromInt(25000),
			Status:        domain.StatusActive,
		}

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id.String()).Return(existing, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				assert.Equal(t, "Rudi", e.FullName)
				assert.True(t, e.MonthlySalary.Equal(decimal.NewFromInt(27500)))
				return nil
			})
		deps.redismock.ExpectDel(activeKeys()...).SetVal(1)

		resp, err := deps.service.Update(ctx, id.String(), employee.UpdateEmployeeRequest{MonthlySalary: salary("27500")})
		require.NoError(t, err)
		assert.Equal(t, "27500.00", resp.MonthlySalary)

		require.Len(t, deps.audit.entries, 1)
		before := deps.audit.entries[0].Old.(employee.EmployeeResponse)
		assert.Equal(t, "25000.00", before.MonthlySalary)
	})

	t.Run("invalid status", func(t *testing.T) {
		deps := setupServiceTest(t)
		status := "Suspended"
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id.String()).Return(&employee.Employee{ID: id, Status: domain.StatusActive}, nil)

		_, err := deps.service.Update(ctx, id.String(), employee.UpdateEmployeeRequest{Status: &status})
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidStatus)
	})
}

func TestEmployeeService_Deactivate(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id.String()).Return(&employee.Employee{ID: id, Status: domain.StatusActive}, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		deps.redismock.ExpectDel(activeKeys()...).SetVal(1)

		resp, err := deps.service.Deactivate(ctx, id.String())
		require.NoError(t, err)
		assert.Equal(t, "Inactive", resp.Status)
	})

	t.Run("already inactive", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id.String()).Return(&employee.Employee{ID: id, Status: domain.StatusInactive}, nil)

		_, err := deps.service.Deactivate(ctx, id.String())
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyInactive)
	})

	t.Run("repository error", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id.String()).Return(nil, errors.New("db down"))

		_, err := deps.service.Deactivate(ctx, id.String())
		assert.EqualError(t, err, "db down")
	})
}
