package events

import "time"

const WorkingDaysSetTopic = "payroll.working_days.set.v1"

const WorkingDaysSetEventType = "working_days.set"

type WorkingDaysSetEvent struct {
	EventType        string    `json:"event_type"`
	RequestID        string    `json:"request_id,omitempty"`
	Department       string    `json:"department"`
	Month            int       `json:"month"`
	Year             int       `json:"year"`
	TotalWorkingDays int       `json:"total_working_days"`
	OccurredAt       time.Time `json:"occurred_at"`
}
