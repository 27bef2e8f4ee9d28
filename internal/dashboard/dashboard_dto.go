package dashboard

import "go-payroll/internal/shared/calendar"

const TopAbsenteesLimit = 10

type EmployeeCounts struct {
	Total  int64
	Active int64
}

type AttendanceCounts struct {
	Present int64
	Absent  int64
}

// AbsenceRow is one unpaid absence of an active employee.
type AbsenceRow struct {
	EmployeeID     string
	EmployeeCode   string
	FullName       string
	Department     string
	AttendanceDate calendar.Date
}

type AbsenteeResponse struct {
	EmployeeID   string   `json:"employee_id"`
	EmployeeCode string   `json:"employee_code"`
	FullName     string   `json:"full_name"`
	Department   string   `json:"department"`
	AbsentDays   int      `json:"absent_days"`
	Dates        []string `json:"dates"`
}

type StatsResponse struct {
	Date             string             `json:"date"`
	TotalEmployees   int64              `json:"total_employees"`
	ActiveEmployees  int64              `json:"active_employees"`
	TodayPresent     int64              `json:"today_present"`
	TodayAbsent      int64              `json:"today_absent"`
	MonthlyAbsentees []AbsenteeResponse `json:"monthly_absentees"`
}
