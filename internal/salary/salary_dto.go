package salary

import (
	"time"

	"github.com/google/uuid"
)

type PeriodQuery struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=1900,max=9999"`
}

type SaveRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Month      int    `json:"month" binding:"required,min=1,max=12"`
	Year       int    `json:"year" binding:"required,min=1900,max=9999"`
}

// BulkRequest selects employees by explicit ids, or every active employee
// (optionally of one department) when the list is empty.
type BulkRequest struct {
	Month       int      `json:"month" binding:"required,min=1,max=12"`
	Year        int      `json:"year" binding:"required,min=1900,max=9999"`
	Department  string   `json:"department"`
	EmployeeIDs []string `json:"employee_ids" binding:"omitempty,max=1000,dive,uuid"`
}

type BreakdownResponse struct {
	EmployeeID             string `json:"employee_id"`
	Month                  int    `json:"month"`
	Year                   int    `json:"year"`
	MonthlySalary          string `json:"monthly_salary"`
	TotalWorkingDays       int    `json:"total_working_days"`
	DaysPresent            int    `json:"days_present"`
	DaysAbsentUnpaid       int    `json:"days_absent_unpaid"`
	DaysAbsentPaid         int    `json:"days_absent_paid"`
	SundaysInMonth         int    `json:"sundays_in_month"`
	SundaysWorked          int    `json:"sundays_worked"`
	SundaysAbsent          int    `json:"sundays_absent"`
	SundayCompensationDays int    `json:"sunday_compensation_days"`
	SundayOvertimeDays     int    `json:"sunday_overtime_days"`
	ActualUnpaidAbsences   int    `json:"actual_unpaid_absences"`
	PerDayRate             string `json:"per_day_rate"`
	DeductionAmount        string `json:"deduction_amount"`
	OvertimeAmount         string `json:"overtime_amount"`
	PayableSalary          string `json:"payable_salary"`
}

type SalaryCalculationResponse struct {
	ID string `json:"id"`
	BreakdownResponse
	EmployeeCode string  `json:"employee_code,omitempty"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Department   string  `json:"department,omitempty"`
	IsFinalized  bool    `json:"is_finalized"`
	FinalizedAt  *string `json:"finalized_at,omitempty"`
	FinalizedBy  *string `json:"finalized_by,omitempty"`
	CalculatedBy string  `json:"calculated_by,omitempty"`
	UpdatedAt    string  `json:"updated_at"`
}

type BulkFailure struct {
	EmployeeID string `json:"employee_id"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

type BulkCalculationResponse struct {
	Month    int                 `json:"month"`
	Year     int                 `json:"year"`
	Results  []BreakdownResponse `json:"results"`
	Failures []BulkFailure       `json:"failures"`
}

type BulkSaveResponse struct {
	Month    int                         `json:"month"`
	Year     int                         `json:"year"`
	Saved    []SalaryCalculationResponse `json:"saved"`
	Skipped  []string                    `json:"skipped_finalized"`
	Failures []BulkFailure               `json:"failures"`
}

func mapBreakdown(b Breakdown) BreakdownResponse {
	return BreakdownResponse{
		EmployeeID:             b.EmployeeID,
		Month:                  b.Month,
		Year:                   b.Year,
		MonthlySalary:          b.MonthlySalary.StringFixed(2),
		TotalWorkingDays:       b.TotalWorkingDays,
		DaysPresent:            b.DaysPresent,
		DaysAbsentUnpaid:       b.DaysAbsentUnpaid,
		DaysAbsentPaid:         b.DaysAbsentPaid,
		SundaysInMonth:         b.SundaysInMonth,
		SundaysWorked:          b.SundaysWorked,
		SundaysAbsent:          b.SundaysAbsent,
		SundayCompensationDays: b.SundayCompensationDays,
		SundayOvertimeDays:     b.SundayOvertimeDays,
		ActualUnpaidAbsences:   b.ActualUnpaidAbsences,
		PerDayRate:             b.PerDayRate.StringFixed(2),
		DeductionAmount:        b.DeductionAmount.StringFixed(2),
		OvertimeAmount:         b.OvertimeAmount.StringFixed(2),
		PayableSalary:          b.PayableSalary.StringFixed(2),
	}
}

func mapToResponse(c SalaryCalculation) SalaryCalculationResponse {
	resp := SalaryCalculationResponse{
		BreakdownResponse: mapBreakdown(c.Breakdown()),
		IsFinalized:       c.IsFinalized,
		FinalizedBy:       c.FinalizedBy,
		CalculatedBy:      c.CalculatedBy,
		UpdatedAt:         c.UpdatedAt.Format(time.RFC3339),
	}
	if c.ID != uuid.Nil {
		resp.ID = c.ID.String()
	}
	if c.FinalizedAt != nil {
		v := c.FinalizedAt.Format(time.RFC3339)
		resp.FinalizedAt = &v
	}
	if c.Employee != nil {
		resp.EmployeeCode = c.Employee.EmployeeCode
		resp.EmployeeName = c.Employee.FullName
		resp.Department = c.Employee.Department
	}
	return resp
}

func mapToListResponse(calcs []SalaryCalculation) []SalaryCalculationResponse {
	resp := make([]SalaryCalculationResponse, len(calcs))
	for i, c := range calcs {
		resp[i] = mapToResponse(c)
	}
	return resp
}
