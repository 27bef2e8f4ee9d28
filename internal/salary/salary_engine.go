package salary

import (
	"go-payroll/internal/shared/calendar"

	"github.com/shopspring/decimal"
)

// AttendanceDay is the engine's view of one attendance record.
type AttendanceDay struct {
	Date        calendar.Date
	IsPresent   bool
	IsPaidLeave bool
}

type Input struct {
	EmployeeID       string
	Month            int
	Year             int
	MonthlySalary    decimal.Decimal
	TotalWorkingDays int
	WorkingDates     []calendar.Date
	Attendance       []AttendanceDay
}

// Breakdown holds unrounded amounts. Rounding happens in the response DTOs.
type Breakdown struct {
	EmployeeID             string
	Month                  int
	Year                   int
	MonthlySalary          decimal.Decimal
	TotalWorkingDays       int
	DaysPresent            int
	DaysAbsentUnpaid       int
	DaysAbsentPaid         int
	SundaysInMonth         int
	SundaysWorked          int
	SundaysAbsent          int
	SundayCompensationDays int
	SundayOvertimeDays     int
	ActualUnpaidAbsences   int
	PerDayRate             decimal.Decimal
	DeductionAmount        decimal.Decimal
	OvertimeAmount         decimal.Decimal
	PayableSalary          decimal.Decimal
}

// Compute turns one month of attendance into a payable salary.
//
// Each Sunday worked offsets one unpaid absence on a regular day; Sunday work
// left over after that is paid as overtime at the same per-day rate. Sunday
// absences are never deducted. The per-day rate divides by the calendar days
// of the month, not by the configured working days.
//
// Records outside the month are ignored and a repeated date counts once (the
// last record wins). Days without a record are neither present nor absent.
func Compute(in Input) Breakdown {
	days := make(map[calendar.Date]AttendanceDay, len(in.Attendance))
	for _, a := range in.Attendance {
		if !a.Date.InMonth(in.Year, in.Month) {
			continue
		}
		days[a.Date] = a
	}

	var (
		sundaysWorked  int
		regularPresent int
		regularUnpaid  int
		regularPaid    int
	)
	for date, a := range days {
		if date.IsSunday() {
			if a.IsPresent {
				sundaysWorked++
			}
			continue
		}
		switch {
		case a.IsPresent:
			regularPresent++
		case a.IsPaidLeave:
			regularPaid++
		default:
			regularUnpaid++
		}
	}

	sundaysInMonth := 0
	seen := make(map[calendar.Date]struct{}, len(in.WorkingDates))
	for _, d := range in.WorkingDates {
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		if d.IsSunday() {
			sundaysInMonth++
		}
	}

	// a Sunday can be worked without being a configured working date
	sundaysAbsent := sundaysInMonth - sundaysWorked
	if sundaysAbsent < 0 {
		sundaysAbsent = 0
	}

	compensation := min(sundaysWorked, regularUnpaid)
	overtimeDays := sundaysWorked - compensation
	actualUnpaid := regularUnpaid - compensation

	perDay := PerDayRate(in.MonthlySalary, in.Year, in.Month)
	deduction := perDay.Mul(decimal.NewFromInt(int64(actualUnpaid)))
	overtime := perDay.Mul(decimal.NewFromInt(int64(overtimeDays)))

	return Breakdown{
		EmployeeID:             in.EmployeeID,
		Month:                  in.Month,
		Year:                   in.Year,
		MonthlySalary:          in.MonthlySalary,
		TotalWorkingDays:       in.TotalWorkingDays,
		DaysPresent:            regularPresent,
		DaysAbsentUnpaid:       regularUnpaid,
		DaysAbsentPaid:         regularPaid,
		SundaysInMonth:         sundaysInMonth,
		SundaysWorked:          sundaysWorked,
		SundaysAbsent:          sundaysAbsent,
		SundayCompensationDays: compensation,
		SundayOvertimeDays:     overtimeDays,
		ActualUnpaidAbsences:   actualUnpaid,
		PerDayRate:             perDay,
		DeductionAmount:        deduction,
		OvertimeAmount:         overtime,
		PayableSalary:          in.MonthlySalary.Sub(deduction).Add(overtime),
	}
}

// PerDayRate is the monthly salary divided by the calendar days of the month.
func PerDayRate(monthly decimal.Decimal, year, month int) decimal.Decimal {
	return monthly.Div(decimal.NewFromInt(int64(calendar.DaysInMonth(year, month))))
}
