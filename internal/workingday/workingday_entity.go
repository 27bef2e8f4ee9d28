package workingday

import (
	"time"

	"go-payroll/internal/domain"
	"go-payroll/internal/shared/calendar"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type WorkingDays struct {
	ID               uuid.UUID                          `gorm:"type:uuid;primaryKey"`
	Department       domain.Department                  `gorm:"type:varchar(32);uniqueIndex:uq_working_days_key;not null"`
	Month            int                                `gorm:"uniqueIndex:uq_working_days_key;not null"`
	Year             int                                `gorm:"uniqueIndex:uq_working_days_key;not null"`
	TotalWorkingDays int                                `gorm:"not null"`
	WorkingDates     datatypes.JSONSlice[calendar.Date] `gorm:"type:jsonb;not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (WorkingDays) TableName() string { return "working_days" }

// SundayCount counts configured working dates that fall on a Sunday.
func (w WorkingDays) SundayCount() int {
	n := 0
	for _, d := range w.WorkingDates {
		if d.IsSunday() {
			n++
		}
	}
	return n
}
