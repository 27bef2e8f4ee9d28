package audit

import (
	"context"
	"encoding/json"
	"time"

	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	ActionCreate   = "CREATE"
	ActionUpdate   = "UPDATE"
	ActionUpsert   = "UPSERT"
	ActionFinalize = "FINALIZE"

	DefaultListLimit = 100
)

// Logger records an audit trail entry. Implementations must not fail the
// caller: problems are logged and swallowed.
type Logger interface {
	Log(ctx context.Context, entry Entry)
}

type Service interface {
	Logger
	List(ctx context.Context, filter ListFilter) ([]AuditLogResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Log(ctx context.Context, entry Entry) {
	meta := contextutil.ExtractMetadata(ctx)
	actor := meta.UserID
	if actor == "" {
		actor = "system"
	}

	row := &AuditLog{
		ID:          uuid.New(),
		Actor:       actor,
		Action:      entry.Action,
		EntityTable: entry.Table,
		RecordID:    entry.RecordID,
		OldValues:   s.toJSON(entry.Old),
		NewValues:   s.toJSON(entry.New),
		RequestID:   meta.RequestID,
		CreatedAt:   time.Now().UTC(),
	}

	// audit tidak boleh menggagalkan operasi utama
	if err := s.repo.Create(context.WithoutCancel(ctx), row); err != nil {
		s.logger.Warn("audit log write failed",
			zap.String("request_id", meta.RequestID),
			zap.String("action", entry.Action),
			zap.String("table", entry.Table),
			zap.String("record_id", entry.RecordID),
			zap.Error(err),
		)
	}
}

func (s *service) toJSON(v any) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("audit value marshal failed", zap.Error(err))
		return nil
	}
	return datatypes.JSON(b)
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]AuditLogResponse, error) {
	if filter.Limit <= 0 || filter.Limit > DefaultListLimit {
		filter.Limit = DefaultListLimit
	}

	logs, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("list audit logs failed", zap.Error(err))
		return nil, err
	}

	resp := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		resp = append(resp, mapToResponse(l))
	}
	return resp, nil
}
