package workingday

import "time"

const (
	PresetAllDays  = "ALL_DAYS"
	PresetWeekdays = "WEEKDAYS"
)

// SetWorkingDaysRequest carries either an explicit date list or a preset.
// WEEKDAYS means Monday to Saturday.
type SetWorkingDaysRequest struct {
	Department   string   `json:"department" binding:"required"`
	Month        int      `json:"month" binding:"required"`
	Year         int      `json:"year" binding:"required"`
	WorkingDates []string `json:"working_dates"`
	Preset       string   `json:"preset" binding:"omitempty,oneof=ALL_DAYS WEEKDAYS"`
}

type WorkingDaysResponse struct {
	ID               string    `json:"id"`
	Department       string    `json:"department"`
	Month            int       `json:"month"`
	Year             int       `json:"year"`
	TotalWorkingDays int       `json:"total_working_days"`
	WorkingDates     []string  `json:"working_dates"`
	SundaysInMonth   int       `json:"sundays_in_month"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func mapToResponse(w WorkingDays) WorkingDaysResponse {
	dates := make([]string, 0, len(w.WorkingDates))
	for _, d := range w.WorkingDates {
		dates = append(dates, d.String())
	}
	return WorkingDaysResponse{
		ID:               w.ID.String(),
		Department:       string(w.Department),
		Month:            w.Month,
		Year:             w.Year,
		TotalWorkingDays: w.TotalWorkingDays,
		WorkingDates:     dates,
		SundaysInMonth:   w.SundayCount(),
		UpdatedAt:        w.UpdatedAt,
	}
}
