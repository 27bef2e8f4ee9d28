package salary

import (
	"context"
	"database/sql"
	"time"

	salaryerrors "go-payroll/internal/salary/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=salary_repo.go -destination=mock/salary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, calc *SalaryCalculation) error
	FindByKey(ctx context.Context, employeeID string, month, year int) (*SalaryCalculation, error)
	FindByID(ctx context.Context, id string) (*SalaryCalculation, error)
	FindByIDForUpdate(ctx context.Context, id string) (*SalaryCalculation, error)
	FindAllByPeriod(ctx context.Context, month, year int, department string) ([]SalaryCalculation, error)
	FindDraftsByPeriod(ctx context.Context, month, year int, department string) ([]SalaryCalculation, error)
	MarkFinalized(ctx context.Context, id string, by string, at time.Time) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

// Upsert overwrites the row for (employee, month, year) unless it is
// finalized, in which case nothing is written and ErrCalculationFinalized is
// returned.
func (r *repository) Upsert(ctx context.Context, calc *SalaryCalculation) error {
	res := r.conn(ctx).
		Omit("Employee").
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "employee_id"}, {Name: "month"}, {Name: "year"}},
				Where: clause.Where{Exprs: []clause.Expression{
					clause.Eq{Column: clause.Column{Table: "salary_calculations", Name: "is_finalized"}, Value: false},
				}},
				DoUpdates: clause.AssignmentColumns([]string{
					"monthly_salary", "total_working_days", "days_present", "days_absent_unpaid",
					"days_absent_paid", "sundays_in_month", "sundays_worked", "sundays_absent",
					"sunday_compensation_days", "sunday_overtime_days", "actual_unpaid_absences",
					"per_day_rate", "deduction_amount", "overtime_amount", "payable_salary",
					"calculated_by", "updated_at",
				}),
			},
			clause.Returning{},
		).
		Create(calc)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return salaryerrors.ErrCalculationFinalized
	}
	return nil
}

func (r *repository) FindByKey(ctx context.Context, employeeID string, month, year int) (*SalaryCalculation, error) {
	var calc SalaryCalculation
	err := r.conn(ctx).
		Preload("Employee").
		Where("employee_id = ? AND month = ? AND year = ?", employeeID, month, year).
		First(&calc).Error
	if err != nil {
		return nil, err
	}
	return &calc, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*SalaryCalculation, error) {
	var calc SalaryCalculation
	if err := r.conn(ctx).Preload("Employee").First(&calc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &calc, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*SalaryCalculation, error) {
	var calc SalaryCalculation
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&calc, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &calc, nil
}

func (r *repository) periodQuery(ctx context.Context, month, year int, department string) *gorm.DB {
	q := r.conn(ctx).
		Joins("Employee").
		Where("salary_calculations.month = ? AND salary_calculations.year = ?", month, year)
	if department != "" {
		q = q.Where(`"Employee"."department" = ?`, department)
	}
	return q
}

func (r *repository) FindAllByPeriod(ctx context.Context, month, year int, department string) ([]SalaryCalculation, error) {
	var calcs []SalaryCalculation
	err := r.periodQuery(ctx, month, year, department).
		Order(`"Employee"."full_name" ASC`).
		Find(&calcs).Error
	return calcs, err
}

func (r *repository) FindDraftsByPeriod(ctx context.Context, month, year int, department string) ([]SalaryCalculation, error) {
	var calcs []SalaryCalculation
	err := r.periodQuery(ctx, month, year, department).
		Where("salary_calculations.is_finalized = ?", false).
		Find(&calcs).Error
	return calcs, err
}

func (r *repository) MarkFinalized(ctx context.Context, id string, by string, at time.Time) error {
	res := r.conn(ctx).
		Model(&SalaryCalculation{}).
		Where("id = ? AND is_finalized = ?", id, false).
		Updates(map[string]any{
			"is_finalized": true,
			"finalized_at": at,
			"finalized_by": by,
			"updated_at":   at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return salaryerrors.ErrAlreadyFinalized
	}
	return nil
}
