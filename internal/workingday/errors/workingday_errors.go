package workingdayerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrWorkingDaysNotFound = apperror.New(
		apperror.CodeNotFound,
		"Working days not configured for this department and month",
		http.StatusNotFound,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeValidation,
		"Month must be 1-12 and year 1900-9999",
		http.StatusBadRequest,
	)
	ErrInvalidDepartment = apperror.New(
		apperror.CodeValidation,
		"Department must be one of Salesman, Mechanic, Housekeeping, Management",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeValidation,
		"Working dates must use YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrDateOutsideMonth = apperror.New(
		apperror.CodeValidation,
		"Every working date must fall inside the selected month",
		http.StatusBadRequest,
	)
	ErrNoWorkingDates = apperror.New(
		apperror.CodeValidation,
		"At least one working date is required",
		http.StatusBadRequest,
	)
	ErrInvalidPreset = apperror.New(
		apperror.CodeValidation,
		"Preset must be ALL_DAYS or WEEKDAYS",
		http.StatusBadRequest,
	)
)
