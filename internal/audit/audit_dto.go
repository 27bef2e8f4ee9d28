package audit

import (
	"encoding/json"
	"time"
)

// Entry is what services hand to Logger. Old and New are marshalled as JSON.
type Entry struct {
	Action   string
	Table    string
	RecordID string
	Old      any
	New      any
}

type ListFilter struct {
	Actor  string `form:"actor"`
	Action string `form:"action"`
	Table  string `form:"table"`
	Limit  int    `form:"limit"`
}

type AuditLogResponse struct {
	ID        string          `json:"id"`
	Actor     string          `json:"actor"`
	Action    string          `json:"action"`
	Table     string          `json:"table_name"`
	RecordID  string          `json:"record_id"`
	OldValues json.RawMessage `json:"old_values,omitempty"`
	NewValues json.RawMessage `json:"new_values,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func mapToResponse(l AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:        l.ID.String(),
		Actor:     l.Actor,
		Action:    l.Action,
		Table:     l.EntityTable,
		RecordID:  l.RecordID,
		OldValues: json.RawMessage(l.OldValues),
		NewValues: json.RawMessage(l.NewValues),
		RequestID: l.RequestID,
		CreatedAt: l.CreatedAt,
	}
}
