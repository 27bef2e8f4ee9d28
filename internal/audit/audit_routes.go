package audit

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, logger *zap.Logger) {
	logs := r.Group("/audit-logs")
	logs.Use(middleware.AuthMiddleware())
	logs.Use(middleware.ContextLogger(logger))
	{
		logs.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "audit", "read"),
			handler.List,
		)
	}
}
