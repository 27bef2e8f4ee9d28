package attendance

import "github.com/google/uuid"

type MarkAttendanceRequest struct {
	EmployeeID    string `json:"employee_id" binding:"required,uuid"`
	Date          string `json:"date" binding:"required,datetime=2006-01-02"`
	IsPresent     *bool  `json:"is_present" binding:"required"`
	IsPaidLeave   bool   `json:"is_paid_leave"`
	AbsenceReason string `json:"absence_reason" binding:"max=255"`
}

type MarkBulkRequest struct {
	Records []MarkAttendanceRequest `json:"records" binding:"required,min=1,max=500,dive"`
}

type MarkBulkResponse struct {
	Marked  int                  `json:"marked"`
	Records []AttendanceResponse `json:"records"`
}

type AttendanceResponse struct {
	ID            string `json:"id,omitempty"`
	EmployeeID    string `json:"employee_id"`
	EmployeeCode  string `json:"employee_code,omitempty"`
	EmployeeName  string `json:"employee_name,omitempty"`
	Department    string `json:"department,omitempty"`
	Date          string `json:"date"`
	IsPresent     bool   `json:"is_present"`
	IsPaidLeave   bool   `json:"is_paid_leave"`
	AbsenceReason string `json:"absence_reason,omitempty"`
	IsSundayWork  bool   `json:"is_sunday_work"`
	MarkedBy      string `json:"marked_by,omitempty"`
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		EmployeeID:   a.EmployeeID.String(),
		Date:         a.AttendanceDate.String(),
		IsPresent:    a.IsPresent,
		IsPaidLeave:  a.IsPaidLeave,
		IsSundayWork: a.IsSundayWork,
		MarkedBy:     a.MarkedBy,
	}
	if a.ID != uuid.Nil {
		resp.ID = a.ID.String()
	}
	if a.AbsenceReason != nil {
		resp.AbsenceReason = *a.AbsenceReason
	}
	if a.Employee != nil {
		resp.EmployeeCode = a.Employee.EmployeeCode
		resp.EmployeeName = a.Employee.FullName
		resp.Department = a.Employee.Department
	}
	return resp
}

func mapToListResponse(rows []Attendance) []AttendanceResponse {
	resp := make([]AttendanceResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, mapToResponse(r))
	}
	return resp
}
