package workingday

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	logger *zap.Logger,
) {
	wd := r.Group("/working-days")
	wd.Use(middleware.AuthMiddleware())
	wd.Use(middleware.ContextLogger(logger))
	{
		wd.PUT("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, "working_days", "update"),
			handler.Set,
		)

		wd.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "working_days", "read"),
			handler.GetAllForMonth,
		)

		wd.GET("/:department/:year/:month",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "working_days", "read"),
			handler.Get,
		)
	}
}
