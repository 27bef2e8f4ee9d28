package salary

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	sal := r.Group("/salary")
	sal.Use(middleware.AuthMiddleware())
	sal.Use(middleware.ContextLogger(logger))
	{
		sal.GET("/calculate/:employee_id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "salary", "calculate"),
			handler.Calculate,
		)

		// bulk jalan paralel, batasi lebih ketat
		sal.POST("/calculate/bulk",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, "salary", "calculate"),
			handler.CalculateBulk,
		)

		sal.POST("/save",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "salary", "save"),
			handler.Save,
		)

		sal.POST("/save/bulk",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, "salary", "save"),
			middleware.Idempotency(rdb),
			handler.SaveBulk,
		)

		sal.GET("/employee/:employee_id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "salary", "read"),
			handler.Get,
		)

		sal.GET("/calculations",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "salary", "read"),
			handler.GetMonthly,
		)

		sal.GET("/calculations/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "salary", "read"),
			handler.GetByID,
		)

		sal.POST("/calculations/:id/finalize",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "salary", "finalize"),
			middleware.Idempotency(rdb),
			handler.Finalize,
		)
	}
}
