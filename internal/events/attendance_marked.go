package events

import "time"

const AttendanceMarkedTopic = "payroll.attendance.marked.v1"

const AttendanceMarkedEventType = "attendance.marked"

// AttendanceEntry identifies one (employee, date) pair touched by a bulk mark.
type AttendanceEntry struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
}

type AttendanceMarkedEvent struct {
	EventType  string            `json:"event_type"`
	RequestID  string            `json:"request_id,omitempty"`
	MarkedBy   string            `json:"marked_by,omitempty"`
	Entries    []AttendanceEntry `json:"entries"`
	OccurredAt time.Time         `json:"occurred_at"`
}
