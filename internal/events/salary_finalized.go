package events

import "time"

const SalaryFinalizedTopic = "payroll.salary.finalized.v1"

const SalaryFinalizedEventType = "salary.finalized"

type SalaryFinalizedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	CalculationID string    `json:"calculation_id"`
	EmployeeID    string    `json:"employee_id"`
	Month         int       `json:"month"`
	Year          int       `json:"year"`
	PayableSalary string    `json:"payable_salary"`
	FinalizedBy   string    `json:"finalized_by,omitempty"`
	FinalizedAt   time.Time `json:"finalized_at"`
}
