package salary

import (
	"context"
	"errors"

	"go-payroll/internal/attendance"
	"go-payroll/internal/domain"
	"go-payroll/internal/employee"
	salaryerrors "go-payroll/internal/salary/errors"
	"go-payroll/internal/shared/calendar"
	"go-payroll/internal/workingday"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type EmployeeSnapshot struct {
	ID            string
	EmployeeCode  string
	FullName      string
	Department    domain.Department
	MonthlySalary decimal.Decimal
	Status        domain.EmployeeStatus
}

type WorkingDaysSnapshot struct {
	TotalWorkingDays int
	WorkingDates     []calendar.Date
}

//go:generate mockgen -source=salary_sources.go -destination=mock/salary_sources_mock.go -package=mock
type EmployeeSource interface {
	// GetEmployee fails with ErrEmployeeNotFound.
	GetEmployee(ctx context.Context, id string) (*EmployeeSnapshot, error)
	ListActive(ctx context.Context, department string) ([]EmployeeSnapshot, error)
}

type WorkingDaysSource interface {
	// GetWorkingDays returns nil, nil when the month is not configured.
	GetWorkingDays(ctx context.Context, department domain.Department, month, year int) (*WorkingDaysSnapshot, error)
}

type AttendanceSource interface {
	GetAttendanceForEmployee(ctx context.Context, employeeID string, start, end calendar.Date) ([]AttendanceDay, error)
}

type employeeSource struct {
	repo employee.Repository
}

func NewEmployeeSource(repo employee.Repository) EmployeeSource {
	return &employeeSource{repo: repo}
}

func snapshotOf(e employee.Employee) EmployeeSnapshot {
	return EmployeeSnapshot{
		ID:            e.ID.String(),
		EmployeeCode:  e.EmployeeCode,
		FullName:      e.FullName,
		Department:    e.Department,
		MonthlySalary: e.MonthlySalary,
		Status:        e.Status,
	}
}

func (s *employeeSource) GetEmployee(ctx context.Context, id string) (*EmployeeSnapshot, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, salaryerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	snap := snapshotOf(*e)
	return &snap, nil
}

func (s *employeeSource) ListActive(ctx context.Context, department string) ([]EmployeeSnapshot, error) {
	emps, err := s.repo.FindActive(ctx, department)
	if err != nil {
		return nil, err
	}
	out := make([]EmployeeSnapshot, 0, len(emps))
	for _, e := range emps {
		out = append(out, snapshotOf(e))
	}
	return out, nil
}

type workingDaysSource struct {
	svc workingday.Service
}

// NewWorkingDaysSource reads through the working-day service so lookups share
// its cache.
func NewWorkingDaysSource(svc workingday.Service) WorkingDaysSource {
	return &workingDaysSource{svc: svc}
}

func (s *workingDaysSource) GetWorkingDays(ctx context.Context, department domain.Department, month, year int) (*WorkingDaysSnapshot, error) {
	wd, err := s.svc.Lookup(ctx, department, month, year)
	if err != nil || wd == nil {
		return nil, err
	}
	return &WorkingDaysSnapshot{
		TotalWorkingDays: wd.TotalWorkingDays,
		WorkingDates:     []calendar.Date(wd.WorkingDates),
	}, nil
}

type attendanceSource struct {
	repo attendance.Repository
}

func NewAttendanceSource(repo attendance.Repository) AttendanceSource {
	return &attendanceSource{repo: repo}
}

func (s *attendanceSource) GetAttendanceForEmployee(ctx context.Context, employeeID string, start, end calendar.Date) ([]AttendanceDay, error) {
	rows, err := s.repo.FindByEmployee(ctx, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]AttendanceDay, 0, len(rows))
	for _, r := range rows {
		out = append(out, AttendanceDay{
			Date:        r.AttendanceDate,
			IsPresent:   r.IsPresent,
			IsPaidLeave: r.IsPaidLeave,
		})
	}
	return out, nil
}
