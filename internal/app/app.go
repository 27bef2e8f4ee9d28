package app

import (
	"time"

	"go-payroll/internal/middleware"
	"go-payroll/internal/shared/connection"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildApp(router *gin.Engine, cfg Config) error {
	logger := zap.L().Named("app")

	// 1. Setup Infrastructure
	gormDB, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	// 2. Global middleware
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	router.Use(middleware.RequestID())

	// 3. Register Modules & Routes
	return registerModules(router, sqlDB, gormDB, redisClient, cfg, zap.L())
}

func openDatabase(cfg Config) (*gorm.DB, error) {
	return connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		connectRetries,
	)
}

// corsConfig allows every origin when none are configured (local development).
func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AddAllowHeaders("Authorization", "Idempotency-Key", "X-Request-ID")
	c.AddExposeHeaders("X-Request-ID")
	c.MaxAge = 12 * time.Hour
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
