package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go-payroll/internal/audit"
	"go-payroll/internal/domain"
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/shared/calendar"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	ActiveEmployeesKeyPrefix = "employees:active:"
	activeEmployeesTTL       = time.Hour
)

// GetActiveEmployeesKey returns the cache key for a department, or for all
// departments when department is empty.
func GetActiveEmployeesKey(department string) string {
	if department == "" {
		return ActiveEmployeesKeyPrefix + "all"
	}
	return ActiveEmployeesKeyPrefix + department
}

func activeEmployeesKeys() []string {
	keys := []string{GetActiveEmployeesKey("")}
	for _, d := range domain.Departments {
		keys = append(keys, GetActiveEmployeesKey(string(d)))
	}
	return keys
}

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]EmployeeResponse, error)
	GetActive(ctx context.Context, department string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Deactivate(ctx context.Context, id string) (EmployeeResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	rdb     *redis.Client
	audit   audit.Logger
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	rdb *redis.Client,
	auditLogger audit.Logger,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	if auditLogger == nil {
		auditLogger = audit.Nop()
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		rdb:     rdb,
		audit:   auditLogger,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func parseDepartment(v string) (domain.Department, error) {
	d, ok := domain.ParseDepartment(v)
	if !ok {
		return "", employeeerrors.ErrInvalidDepartment
	}
	return d, nil
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("department", req.Department),
	)

	dept, err := parseDepartment(req.Department)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if req.MonthlySalary == nil || req.MonthlySalary.IsNegative() {
		return EmployeeResponse{}, employeeerrors.ErrNegativeSalary
	}

	var joined calendar.Date
	if req.DateOfJoining != "" {
		joined, err = calendar.Parse(req.DateOfJoining)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidDateOfJoining
		}
	}

	if strings.TrimSpace(req.EmployeeCode) == "" {
		nextVal, err := s.counter.GetNextValue(ctx, counter.EmployeeCode)
		if err != nil {
			s.logger.Error("create employee generate code failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}
		req.EmployeeCode = fmt.Sprintf("EMP-%06d", nextVal)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	empl := &Employee{
		ID:            uuid.New(),
		EmployeeCode:  strings.TrimSpace(req.EmployeeCode),
		FullName:      strings.TrimSpace(req.FullName),
		Phone:         req.Phone,
		Department:    dept,
		MonthlySalary: *req.MonthlySalary,
		Status:        domain.StatusActive,
		DateOfJoining: joined,
	}

	if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateActiveCache(ctx)
	resp := mapToResponse(*empl)
	s.audit.Log(ctx, audit.Entry{
		Action:   audit.ActionCreate,
		Table:    "employees",
		RecordID: resp.ID,
		New:      resp,
	})

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", resp.ID),
		zap.String("employee_code", resp.EmployeeCode),
	)
	return resp, nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]EmployeeResponse, error) {
	if filter.Department != "" {
		dept, err := parseDepartment(filter.Department)
		if err != nil {
			return nil, err
		}
		filter.Department = string(dept)
	}
	if filter.Status != "" && !domain.EmployeeStatus(filter.Status).Valid() {
		return nil, employeeerrors.ErrInvalidStatus
	}

	emps, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(emps), nil
}

// GetActive serves the active roster of a department (or all departments)
// from redis, falling back to the database through singleflight.
func (s *service) GetActive(ctx context.Context, department string) ([]EmployeeResponse, error) {
	if department != "" {
		dept, err := parseDepartment(department)
		if err != nil {
			return nil, err
		}
		department = string(dept)
	}
	cacheKey := GetActiveEmployeesKey(department)

	// 1. Cek Redis
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// 2. Singleflight, banyak layar absensi dibuka bersamaan di pagi hari
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		emps, err := s.repo.FindActive(ctx, department)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(emps)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, activeEmployeesTTL).Err(); err != nil {
					s.logger.Warn("cache active employees failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("get active employees failed", zap.String("department", department), zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("get employee by id failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	before := mapToResponse(*empl)

	if req.FullName != nil {
		empl.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		empl.Phone = *req.Phone
	}
	if req.Department != nil {
		dept, err := parseDepartment(*req.Department)
		if err != nil {
			return EmployeeResponse{}, err
		}
		empl.Department = dept
	}
	if req.MonthlySalary != nil {
		if req.MonthlySalary.IsNegative() {
			return EmployeeResponse{}, employeeerrors.ErrNegativeSalary
		}
		empl.MonthlySalary = *req.MonthlySalary
	}
	if req.Status != nil {
		status := domain.EmployeeStatus(*req.Status)
		if !status.Valid() {
			return EmployeeResponse{}, employeeerrors.ErrInvalidStatus
		}
		empl.Status = status
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateActiveCache(ctx)
	after := mapToResponse(*empl)
	s.audit.Log(ctx, audit.Entry{
		Action:   audit.ActionUpdate,
		Table:    "employees",
		RecordID: after.ID,
		Old:      before,
		New:      after,
	})

	s.logger.Info("update employee success", zap.String("request_id", rid), zap.String("employee_id", id))
	return after, nil
}

// Deactivate keeps the row, attendance and salary history; the employee just
// drops out of active rosters and bulk payroll runs.
func (s *service) Deactivate(ctx context.Context, id string) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("deactivate employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if !empl.IsActive() {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyInactive
	}

	empl.Status = domain.StatusInactive
	if err := qtx.Update(ctx, empl); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateActiveCache(ctx)
	resp := mapToResponse(*empl)
	s.audit.Log(ctx, audit.Entry{
		Action:   audit.ActionUpdate,
		Table:    "employees",
		RecordID: resp.ID,
		Old:      map[string]string{"status": string(domain.StatusActive)},
		New:      map[string]string{"status": string(domain.StatusInactive)},
	})

	s.logger.Info("deactivate employee success", zap.String("request_id", rid), zap.String("employee_id", id))
	return resp, nil
}

func (s *service) invalidateActiveCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	keys := activeEmployeesKeys()
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.logger.Error("failed to invalidate active employees cache",
			zap.Strings("keys", keys),
			zap.Error(err),
		)
	}
}
