package dashboard

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
	dash := r.Group("/dashboard")
	dash.Use(middleware.AuthMiddleware())
	dash.Use(middleware.ContextLogger(logger))
	{
		dash.GET("/stats",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "dashboard", "read"),
			handler.Stats,
		)
	}
}
