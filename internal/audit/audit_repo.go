package audit

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, log *AuditLog) error
	List(ctx context.Context, filter ListFilter) ([]AuditLog, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, log *AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]AuditLog, error) {
	q := r.db.WithContext(ctx).Model(&AuditLog{})
	if filter.Actor != "" {
		q = q.Where("actor = ?", filter.Actor)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if filter.Table != "" {
		q = q.Where("table_name = ?", filter.Table)
	}

	var logs []AuditLog
	err := q.Order("created_at DESC").Limit(filter.Limit).Find(&logs).Error
	return logs, err
}
