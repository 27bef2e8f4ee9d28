package salary

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalaryCalculation is a saved Breakdown. Amounts are stored unrounded.
type SalaryCalculation struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_salary_calculation_key"`
	Employee   *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
	Month      int          `gorm:"not null;uniqueIndex:uq_salary_calculation_key;index:idx_salary_period"`
	Year       int          `gorm:"not null;uniqueIndex:uq_salary_calculation_key;index:idx_salary_period"`

	MonthlySalary          decimal.Decimal `gorm:"type:numeric;not null"`
	TotalWorkingDays       int             `gorm:"not null"`
	DaysPresent            int             `gorm:"not null"`
	DaysAbsentUnpaid       int             `gorm:"not null"`
	DaysAbsentPaid         int             `gorm:"not null"`
	SundaysInMonth         int             `gorm:"not null"`
	SundaysWorked          int             `gorm:"not null"`
	SundaysAbsent          int             `gorm:"not null"`
	SundayCompensationDays int             `gorm:"not null"`
	SundayOvertimeDays     int             `gorm:"not null"`
	ActualUnpaidAbsences   int             `gorm:"not null"`
	PerDayRate             decimal.Decimal `gorm:"type:numeric;not null"`
	DeductionAmount        decimal.Decimal `gorm:"type:numeric;not null"`
	OvertimeAmount         decimal.Decimal `gorm:"type:numeric;not null"`
	PayableSalary          decimal.Decimal `gorm:"type:numeric;not null"`

	// Sekali final, baris tidak boleh ditimpa lagi
	IsFinalized  bool `gorm:"not null;default:false;index"`
	FinalizedAt  *time.Time
	FinalizedBy  *string `gorm:"type:varchar(64)"`
	CalculatedBy string  `gorm:"type:varchar(64)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (SalaryCalculation) TableName() string { return "salary_calculations" }

type EmployeeRef struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeCode string    `gorm:"column:employee_code"`
	FullName     string    `gorm:"column:full_name"`
	Department   string    `gorm:"column:department"`
}

func (EmployeeRef) TableName() string { return "employees" }

func newCalculation(b Breakdown, employeeID uuid.UUID, calculatedBy string) *SalaryCalculation {
	return &SalaryCalculation{
		EmployeeID:             employeeID,
		Month:                  b.Month,
		Year:                   b.Year,
		MonthlySalary:          b.MonthlySalary,
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
		PerDayRate:             b.PerDayRate,
		DeductionAmount:        b.DeductionAmount,
		OvertimeAmount:         b.OvertimeAmount,
		PayableSalary:          b.PayableSalary,
		CalculatedBy:           calculatedBy,
	}
}

// Breakdown reads the stored figures back.
func (c SalaryCalculation) Breakdown() Breakdown {
	return Breakdown{
		EmployeeID:             c.EmployeeID.String(),
		Month:                  c.Month,
		Year:                   c.Year,
		MonthlySalary:          c.MonthlySalary,
		TotalWorkingDays:       c.TotalWorkingDays,
		DaysPresent:            c.DaysPresent,
		DaysAbsentUnpaid:       c.DaysAbsentUnpaid,
		DaysAbsentPaid:         c.DaysAbsentPaid,
		SundaysInMonth:         c.SundaysInMonth,
		SundaysWorked:          c.SundaysWorked,
		SundaysAbsent:          c.SundaysAbsent,
		SundayCompensationDays: c.SundayCompensationDays,
		SundayOvertimeDays:     c.SundayOvertimeDays,
		ActualUnpaidAbsences:   c.ActualUnpaidAbsences,
		PerDayRate:             c.PerDayRate,
		DeductionAmount:        c.DeductionAmount,
		OvertimeAmount:         c.OvertimeAmount,
		PayableSalary:          c.PayableSalary,
	}
}
