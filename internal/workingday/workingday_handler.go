package workingday

import (
	"net/http"
	"strconv"

	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"
	workingdayerrors "go-payroll/internal/workingday/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("workingday.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("workingday.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("working days request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func parsePeriod(monthRaw, yearRaw string) (int, int, error) {
	month, err := strconv.Atoi(monthRaw)
	if err != nil {
		return 0, 0, workingdayerrors.ErrInvalidPeriod
	}
	year, err := strconv.Atoi(yearRaw)
	if err != nil {
		return 0, 0, workingdayerrors.ErrInvalidPeriod
	}
	return month, year, nil
}

func (h *Handler) Set(c *gin.Context) {
	var req SetWorkingDaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperror.MapValidationError(err).(*apperror.AppError)
		response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, err.Error())
		return
	}

	resp, err := h.service.Set(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// Get handles GET /working-days/:department/:year/:month.
func (h *Handler) Get(c *gin.Context) {
	month, year, err := parsePeriod(c.Param("month"), c.Param("year"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Get(c.Request.Context(), c.Param("department"), month, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// GetAllForMonth handles GET /working-days?month=3&year=2024.
func (h *Handler) GetAllForMonth(c *gin.Context) {
	month, year, err := parsePeriod(c.Query("month"), c.Query("year"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetAllForMonth(c.Request.Context(), month, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
