package workingday

import (
	"context"
	"database/sql"

	"go-payroll/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=workingday_repo.go -destination=mock/workingday_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, wd *WorkingDays) error
	FindByKey(ctx context.Context, department domain.Department, month, year int) (*WorkingDays, error)
	FindAllForMonth(ctx context.Context, month, year int) ([]WorkingDays, error)
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

// Upsert replaces the calendar for (department, month, year). RETURNING fills
// wd with the stored row, so an existing id survives the overwrite.
func (r *repository) Upsert(ctx context.Context, wd *WorkingDays) error {
	return r.conn(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "department"}, {Name: "month"}, {Name: "year"}},
				DoUpdates: clause.AssignmentColumns([]string{"total_working_days", "working_dates", "updated_at"}),
			},
			clause.Returning{},
		).
		Create(wd).Error
}

func (r *repository) FindByKey(ctx context.Context, department domain.Department, month, year int) (*WorkingDays, error) {
	var wd WorkingDays
	err := r.conn(ctx).
		Where("department = ? AND month = ? AND year = ?", department, month, year).
		First(&wd).Error
	if err != nil {
		return nil, err
	}
	return &wd, nil
}

func (r *repository) FindAllForMonth(ctx context.Context, month, year int) ([]WorkingDays, error) {
	var rows []WorkingDays
	err := r.conn(ctx).
		Where("month = ? AND year = ?", month, year).
		Order("department ASC").
		Find(&rows).Error
	return rows, err
}
