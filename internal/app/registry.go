package app

import (
	"database/sql"

	"go-payroll/internal/attendance"
	"go-payroll/internal/audit"
	"go-payroll/internal/dashboard"
	"go-payroll/internal/employee"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/rbac"
	"go-payroll/internal/rbac/infra"
	"go-payroll/internal/salary"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/workingday"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	cfg Config,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	auditRepo := audit.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	dashboardRepo := dashboard.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	salaryRepo := salary.NewRepository(gormDB)
	workingDayRepo := workingday.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, rbac.DefaultPolicies, rbac.DefaultInheritance)
	if err != nil {
		return err
	}

	// --- Services ---
	auditService := audit.NewService(auditRepo, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, outboxRepo, auditService, logger)
	dashboardService := dashboard.NewService(dashboardRepo, rdb, logger)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, rdb, auditService, logger)
	workingDayService := workingday.NewService(db, workingDayRepo, outboxRepo, rdb, auditService, logger)
	salaryService := newSalaryService(db, salaryRepo, employeeRepo, attendanceRepo, workingDayService, outboxRepo, auditService, cfg.BulkWorkers, logger)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	auditHandler := audit.NewHandler(auditService)
	dashboardHandler := dashboard.NewHandler(dashboardService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	rbacHandler := rbac.NewHandler(rbacService)
	salaryHandler := salary.NewHandler(salaryService, logger)
	workingDayHandler := workingday.NewHandler(workingDayService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, rdb, logger)
		audit.RegisterRoutes(api, auditHandler, rbacService, logger)
		dashboard.RegisterRoutes(api, dashboardHandler, rbacService, logger)
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		rbac.RegisterRoutes(api, rbacHandler)
		salary.RegisterRoutes(api, salaryHandler, rbacService, rdb, logger)
		workingday.RegisterRoutes(api, workingDayHandler, rbacService, logger)
	}

	return nil
}

// newSalaryService wires the engine to its read-side sources. Shared by the
// API, the scheduler and the recalculation consumer.
func newSalaryService(
	db *sql.DB,
	repo salary.Repository,
	employees employee.Repository,
	attendanceRepo attendance.Repository,
	workingDays workingday.Service,
	outboxRepo kafka.OutboxRepository,
	auditLogger audit.Logger,
	bulkWorkers int,
	logger *zap.Logger,
) salary.Service {
	sources := salary.Sources{
		Employees:   salary.NewEmployeeSource(employees),
		WorkingDays: salary.NewWorkingDaysSource(workingDays),
		Attendance:  salary.NewAttendanceSource(attendanceRepo),
	}
	return salary.NewService(db, repo, sources, outboxRepo, auditLogger, bulkWorkers, logger)
}

// buildSalaryService is the salary stack for processes without HTTP routes.
func buildSalaryService(db *sql.DB, gormDB *gorm.DB, rdb *redis.Client, cfg Config, logger *zap.Logger) salary.Service {
	outboxRepo := kafka.NewOutboxRepository(db)
	auditService := audit.NewService(audit.NewRepository(gormDB), logger)
	workingDayService := workingday.NewService(db, workingday.NewRepository(gormDB), outboxRepo, rdb, auditService, logger)
	return newSalaryService(
		db,
		salary.NewRepository(gormDB),
		employee.NewRepository(gormDB),
		attendance.NewRepository(gormDB),
		workingDayService,
		outboxRepo,
		auditService,
		cfg.BulkWorkers,
		logger,
	)
}
