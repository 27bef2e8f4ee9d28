package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditLog struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Actor       string    `gorm:"index"`
	Action      string    `gorm:"index"`
	EntityTable string    `gorm:"column:table_name;index"`
	RecordID    string
	OldValues   datatypes.JSON `gorm:"type:jsonb"`
	NewValues   datatypes.JSON `gorm:"type:jsonb"`
	RequestID   string
	CreatedAt   time.Time `gorm:"index"`
}

func (AuditLog) TableName() string { return "audit_logs" }
