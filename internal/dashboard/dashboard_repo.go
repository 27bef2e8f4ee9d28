package dashboard

import (
	"context"

	"go-payroll/internal/domain"
	"go-payroll/internal/shared/calendar"

	"gorm.io/gorm"
)

//go:generate mockgen -source=dashboard_repo.go -destination=mock/dashboard_repo_mock.go -package=mock
type Repository interface {
	CountEmployees(ctx context.Context) (EmployeeCounts, error)
	CountAttendance(ctx context.Context, date calendar.Date) (AttendanceCounts, error)
	ListUnpaidAbsences(ctx context.Context, start, end calendar.Date) ([]AbsenceRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountEmployees(ctx context.Context) (EmployeeCounts, error) {
	var out EmployeeCounts
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("COUNT(*) AS total, COUNT(*) FILTER (WHERE status = ?) AS active", domain.StatusActive).
		Scan(&out).Error
	return out, err
}

func (r *repository) CountAttendance(ctx context.Context, date calendar.Date) (AttendanceCounts, error) {
	var out AttendanceCounts
	err := r.db.WithContext(ctx).
		Table("attendance").
		Select("COUNT(*) FILTER (WHERE is_present) AS present, COUNT(*) FILTER (WHERE NOT is_present) AS absent").
		Where("attendance_date = ?", date).
		Scan(&out).Error
	return out, err
}

func (r *repository) ListUnpaidAbsences(ctx context.Context, start, end calendar.Date) ([]AbsenceRow, error) {
	var rows []AbsenceRow
	err := r.db.WithContext(ctx).
		Table("attendance AS a").
		Select("a.employee_id, e.employee_code, e.full_name, e.department, a.attendance_date").
		Joins("JOIN employees AS e ON e.id = a.employee_id").
		Where("a.is_present = ? AND a.is_paid_leave = ?", false, false).
		Where("e.status = ?", domain.StatusActive).
		Where("a.attendance_date BETWEEN ? AND ?", start, end).
		Order("a.attendance_date ASC").
		Scan(&rows).Error
	return rows, err
}
