package salary_test

import (
	"context"
	"testing"

	"go-payroll/internal/attendance"
	attendanceMock "go-payroll/internal/attendance/mock"
	"go-payroll/internal/domain"
	"go-payroll/internal/employee"
	employeeMock "go-payroll/internal/employee/mock"
	"go-payroll/internal/salary"
	salaryerrors "go-payroll/internal/salary/errors"
	"go-payroll/internal/shared/calendar"
	"go-payroll/internal/workingday"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fakeWorkingDayService struct {
	workingday.Service
	LookupFn func(ctx context.Context, department domain.Department, month, year int) (*workingday.WorkingDays, error)
}

func (f *fakeWorkingDayService) Lookup(ctx context.Context, department domain.Department, month, year int) (*workingday.WorkingDays, error) {
	return f.LookupFn(ctx, department, month, year)
}

func TestEmployeeSource(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := employeeMock.NewMockRepository(ctrl)
	src := salary.NewEmployeeSource(repo)

	t.Run("maps record not found", func(t *testing.T) {
		repo.EXPECT().FindByID(ctx, "missing").Return(nil, gorm.ErrRecordNotFound)

		_, err := src.GetEmployee(ctx, "missing")
		assert.ErrorIs(t, err, salaryerrors.ErrEmployeeNotFound)
	})

	t.Run("snapshot", func(t *testing.T) {
		id := uuid.New()
		repo.EXPECT().FindByID(ctx, id.String()).Return(&employee.Employee{
			ID:            id,
			FullName:      "Andi",
			Department:    domain.DepartmentSalesman,
			MonthlySalary: decimal.NewFromInt(25000),
			Status:        domain.StatusActive,
		}, nil)

		snap, err := src.GetEmployee(ctx, id.String())
		require.NoError(t, err)
		assert.Equal(t, domain.DepartmentSalesman, snap.Department)
		assert.True(t, snap.MonthlySalary.Equal(decimal.NewFromInt(25000)))
	})

	t.Run("list active", func(t *testing.T) {
		repo.EXPECT().FindActive(ctx, "Mechanic").Return([]employee.Employee{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

		list, err := src.ListActive(ctx, "Mechanic")
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})
}

func TestWorkingDaysSource(t *testing.T) {
	ctx := context.Background()

	t.Run("absent config is nil", func(t *testing.T) {
		src := salary.NewWorkingDaysSource(&fakeWorkingDayService{
			LookupFn: func(context.Context, domain.Department, int, int) (*workingday.WorkingDays, error) {
				return nil, nil
			},
		})

		wd, err := src.GetWorkingDays(ctx, domain.DepartmentMechanic, 3, 2024)
		require.NoError(t, err)
		assert.Nil(t, wd)
	})

	t.Run("copies dates", func(t *testing.T) {
		src := salary.NewWorkingDaysSource(&fakeWorkingDayService{
			LookupFn: func(_ context.Context, dept domain.Department, month, year int) (*workingday.WorkingDays, error) {
				return &workingday.WorkingDays{
					Department:       dept,
					Month:            month,
					Year:             year,
					TotalWorkingDays: 2,
					WorkingDates:     datatypes.JSONSlice[calendar.Date]{calendar.MustNew(2024, 3, 1), calendar.MustNew(2024, 3, 3)},
				}, nil
			},
		})

		wd, err := src.GetWorkingDays(ctx, domain.DepartmentMechanic, 3, 2024)
		require.NoError(t, err)
		assert.Equal(t, 2, wd.TotalWorkingDays)
		assert.Len(t, wd.WorkingDates, 2)
	})
}

func TestAttendanceSource(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := attendanceMock.NewMockRepository(ctrl)
	src := salary.NewAttendanceSource(repo)

	start, end := calendar.MonthRange(2024, 3)
	repo.EXPECT().FindByEmployee(ctx, "emp-1", start, end).Return([]attendance.Attendance{
		{AttendanceDate: calendar.MustNew(2024, 3, 3), IsPresent: true, IsSundayWork: true},
		{AttendanceDate: calendar.MustNew(2024, 3, 4), IsPaidLeave: true},
	}, nil)

	days, err := src.GetAttendanceForEmployee(ctx, "emp-1", start, end)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.True(t, days[0].IsPresent)
	assert.True(t, days[1].IsPaidLeave)
}
