package attendance

import (
	"context"
	"database/sql"

	"go-payroll/internal/shared/calendar"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	UpsertMany(ctx context.Context, rows []Attendance) error
	FindByDate(ctx context.Context, date calendar.Date) ([]Attendance, error)
	FindByEmployee(ctx context.Context, employeeID string, start, end calendar.Date) ([]Attendance, error)
	FindByRange(ctx context.Context, start, end calendar.Date) ([]Attendance, error)
	FindAbsentees(ctx context.Context, start, end calendar.Date) ([]Attendance, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

// UpsertMany overwrites by (employee_id, attendance_date). Callers must not
// pass the same key twice in one batch.
func (r *repository) UpsertMany(ctx context.Context, rows []Attendance) error {
	if len(rows) == 0 {
		return nil
	}
	return r.conn(ctx).
		Omit("Employee").
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "employee_id"}, {Name: "attendance_date"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"is_present", "is_paid_leave", "absence_reason", "is_sunday_work", "marked_by", "updated_at",
				}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "id"}}},
		).
		CreateInBatches(rows, 100).Error
}

func (r *repository) FindByDate(ctx context.Context, date calendar.Date) ([]Attendance, error) {
	var rows []Attendance
	err := r.conn(ctx).
		Preload("Employee").
		Where("attendance_date = ?", date).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string, start, end calendar.Date) ([]Attendance, error) {
	var rows []Attendance
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Where("attendance_date BETWEEN ? AND ?", start, end).
		Order("attendance_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByRange(ctx context.Context, start, end calendar.Date) ([]Attendance, error) {
	var rows []Attendance
	err := r.conn(ctx).
		Preload("Employee").
		Where("attendance_date BETWEEN ? AND ?", start, end).
		Order("attendance_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAbsentees(ctx context.Context, start, end calendar.Date) ([]Attendance, error) {
	var rows []Attendance
	err := r.conn(ctx).
		Preload("Employee").
		Where("is_present = ?", false).
		Where("attendance_date BETWEEN ? AND ?", start, end).
		Order("attendance_date ASC").
		Find(&rows).Error
	return rows, err
}
