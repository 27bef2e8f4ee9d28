package salaryerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidCalculationID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid salary calculation ID",
		http.StatusBadRequest,
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
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrWorkingDaysNotConfigured = apperror.New(
		apperror.CodePreconditionFailed,
		"Working days not configured for this department and month",
		http.StatusPreconditionFailed,
	)
	ErrCalculationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary calculation not found",
		http.StatusNotFound,
	)
	ErrCalculationFinalized = apperror.New(
		apperror.CodeInvalidState,
		"Salary calculation is finalized and cannot be overwritten",
		http.StatusConflict,
	)
	ErrAlreadyFinalized = apperror.New(
		apperror.CodeInvalidState,
		"Salary calculation is already finalized",
		http.StatusConflict,
	)
)
