package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeCode  string           `json:"employee_code"`
	FullName      string           `json:"full_name" binding:"required"`
	Phone         string           `json:"phone"`
	Department    string           `json:"department" binding:"required"`
	MonthlySalary *decimal.Decimal `json:"monthly_salary" binding:"required"`
	DateOfJoining string           `json:"date_of_joining" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateEmployeeRequest is a partial update; nil fields are left unchanged.
type UpdateEmployeeRequest struct {
	FullName      *string          `json:"full_name" binding:"omitempty,min=1"`
	Phone         *string          `json:"phone"`
	Department    *string          `json:"department"`
	MonthlySalary *decimal.Decimal `json:"monthly_salary"`
	Status        *string          `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

type ListFilter struct {
	Department string
	Status     string
}

type EmployeeResponse struct {
	ID            string    `json:"id"`
	EmployeeCode  string    `json:"employee_code"`
	FullName      string    `json:"full_name"`
	Phone         string    `json:"phone,omitempty"`
	Department    string    `json:"department"`
	MonthlySalary string    `json:"monthly_salary"`
	Status        string    `json:"status"`
	DateOfJoining string    `json:"date_of_joining,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:            e.ID.String(),
		EmployeeCode:  e.EmployeeCode,
		FullName:      e.FullName,
		Phone:         e.Phone,
		Department:    string(e.Department),
		MonthlySalary: e.MonthlySalary.StringFixed(2),
		Status:        string(e.Status),
		CreatedAt:     e.CreatedAt,
	}
	if !e.DateOfJoining.IsZero() {
		resp.DateOfJoining = e.DateOfJoining.String()
	}
	return resp
}

func mapToListResponse(emps []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, 0, len(emps))
	for _, e := range emps {
		resp = append(resp, mapToResponse(e))
	}
	return resp
}
