package dashboarderrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var ErrInvalidDate = apperror.New(
	apperror.CodeValidation,
	"Date must use YYYY-MM-DD",
	http.StatusBadRequest,
)
