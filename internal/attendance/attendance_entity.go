package attendance

import (
	"time"

	"go-payroll/internal/shared/calendar"

	"github.com/google/uuid"
)

type Attendance struct {
	ID             uuid.UUID     `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID     uuid.UUID     `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_date"`
	AttendanceDate calendar.Date `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_employee_date;index"`
	IsPresent      bool          `gorm:"column:is_present;not null"`
	IsPaidLeave    bool          `gorm:"column:is_paid_leave;not null;default:false"`
	AbsenceReason  *string       `gorm:"column:absence_reason;type:text"`
	IsSundayWork   bool          `gorm:"column:is_sunday_work;not null;default:false"`
	MarkedBy       string        `gorm:"column:marked_by;type:varchar(64)"`
	CreatedAt      time.Time     `gorm:"column:created_at"`
	UpdatedAt      time.Time     `gorm:"column:updated_at"`
	Employee       *EmployeeRef  `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendance"
}

type EmployeeRef struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeCode string    `gorm:"column:employee_code"`
	FullName     string    `gorm:"column:full_name"`
	Department   string    `gorm:"column:department"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

// IsUnpaidAbsence is an absence that is not covered by paid leave.
func (a Attendance) IsUnpaidAbsence() bool {
	return !a.IsPresent && !a.IsPaidLeave
}
