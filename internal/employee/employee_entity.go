package employee

import (
	"time"

	"go-payroll/internal/domain"
	"go-payroll/internal/shared/calendar"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeCode  string    `gorm:"uniqueIndex:uq_employee_code"`
	FullName      string    `gorm:"not null"`
	Phone         string
	Department    domain.Department     `gorm:"type:varchar(32);index;not null"`
	MonthlySalary decimal.Decimal       `gorm:"type:numeric(14,2);not null"`
	Status        domain.EmployeeStatus `gorm:"type:varchar(16);index;not null"`
	DateOfJoining calendar.Date         `gorm:"type:date"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (e Employee) IsActive() bool {
	return e.Status == domain.StatusActive
}
