package workingday

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"go-payroll/internal/audit"
	"go-payroll/internal/domain"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/shared/calendar"
	"go-payroll/internal/shared/contextutil"
	workingdayerrors "go-payroll/internal/workingday/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const workingDaysCacheTTL = 15 * time.Minute

// GetWorkingDaysKey builds the cache key, e.g. working_days:Mechanic:2024-03.
func GetWorkingDaysKey(department domain.Department, month, year int) string {
	return fmt.Sprintf("working_days:%s:%04d-%02d", department, year, month)
}

// GetWorkingDaysGenKey holds a counter bumped by every Set of the key.
func GetWorkingDaysGenKey(department domain.Department, month, year int) string {
	return GetWorkingDaysKey(department, month, year) + ":gen"
}

// CachedWorkingDays is the cache value. Gen is the counter read before the
// row was loaded; an entry behind the current counter is ignored, so a
// refill that raced a Set cannot serve the old calendar.
type CachedWorkingDays struct {
	Gen  int64        `json:"gen"`
	Data *WorkingDays `json:"data"`
}

type Service interface {
	Set(ctx context.Context, req SetWorkingDaysRequest) (WorkingDaysResponse, error)
	Get(ctx context.Context, department string, month, year int) (WorkingDaysResponse, error)
	GetAllForMonth(ctx context.Context, month, year int) ([]WorkingDaysResponse, error)
	// Lookup returns nil, nil when the calendar is not configured.
	Lookup(ctx context.Context, department domain.Department, month, year int) (*WorkingDays, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	audit  audit.Logger
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	auditLogger audit.Logger,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("workingday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("workingday.service")
	}
	if auditLogger == nil {
		auditLogger = audit.Nop()
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		audit:  auditLogger,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// ResolveDates expands a preset or validates an explicit list. The result is
// deduplicated and sorted ascending.
func ResolveDates(month, year int, preset string, raw []string) ([]calendar.Date, error) {
	var dates []calendar.Date

	switch preset {
	case PresetAllDays:
		dates = calendar.DaysOfMonth(year, month)
	case PresetWeekdays:
		for _, d := range calendar.DaysOfMonth(year, month) {
			if !d.IsSunday() {
				dates = append(dates, d)
			}
		}
	case "":
		seen := make(map[calendar.Date]struct{}, len(raw))
		for _, v := range raw {
			d, err := calendar.Parse(v)
			if err != nil {
				return nil, workingdayerrors.ErrInvalidDate
			}
			if !d.InMonth(year, month) {
				return nil, workingdayerrors.ErrDateOutsideMonth
			}
			if _, dup := seen[d]; dup {
				continue
			}
			seen[d] = struct{}{}
			dates = append(dates, d)
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	default:
		return nil, workingdayerrors.ErrInvalidPreset
	}

	if len(dates) == 0 {
		return nil, workingdayerrors.ErrNoWorkingDates
	}
	return dates, nil
}

func (s *service) Set(ctx context.Context, req SetWorkingDaysRequest) (WorkingDaysResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	dept, ok := domain.ParseDepartment(req.Department)
	if !ok {
		return WorkingDaysResponse{}, workingdayerrors.ErrInvalidDepartment
	}
	if err := calendar.ValidateMonth(req.Month, req.Year); err != nil {
		return WorkingDaysResponse{}, workingdayerrors.ErrInvalidPeriod
	}

	dates, err := ResolveDates(req.Month, req.Year, req.Preset, req.WorkingDates)
	if err != nil {
		return WorkingDaysResponse{}, err
	}

	s.logger.Debug("set working days requested",
		zap.String("request_id", rid),
		zap.String("department", string(dept)),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
		zap.Int("total", len(dates)),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("set working days begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return WorkingDaysResponse{}, err
	}
	defer tx.Rollback()

	wd := &WorkingDays{
		ID:               uuid.New(),
		Department:       dept,
		Month:            req.Month,
		Year:             req.Year,
		TotalWorkingDays: len(dates),
		WorkingDates:     dates,
	}
	if err := s.repo.WithTx(tx).Upsert(ctx, wd); err != nil {
		s.logger.Error("set working days persist failed", zap.String("request_id", rid), zap.Error(err))
		return WorkingDaysResponse{}, err
	}

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(
			rid,
			"working_days",
			fmt.Sprintf("%s:%04d-%02d", dept, req.Year, req.Month),
			events.WorkingDaysSetEventType,
			events.WorkingDaysSetTopic,
			events.WorkingDaysSetEvent{
				EventType:        events.WorkingDaysSetEventType,
				RequestID:        rid,
				Department:       string(dept),
				Month:            req.Month,
				Year:             req.Year,
				TotalWorkingDays: len(dates),
				OccurredAt:       time.Now().UTC(),
			},
		)
		if err != nil {
			return WorkingDaysResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("set working days outbox persist failed", zap.String("request_id", rid), zap.Error(err))
			return WorkingDaysResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return WorkingDaysResponse{}, err
	}

	if s.rdb != nil {
		s.invalidate(ctx, dept, req.Month, req.Year)
	}

	resp := mapToResponse(*wd)
	s.audit.Log(ctx, audit.Entry{
		Action:   audit.ActionUpsert,
		Table:    "working_days",
		RecordID: resp.ID,
		New:      resp,
	})

	s.logger.Info("set working days success",
		zap.String("request_id", rid),
		zap.String("department", string(dept)),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
		zap.Int("total_working_days", resp.TotalWorkingDays),
	)
	return resp, nil
}

func (s *service) Get(ctx context.Context, department string, month, year int) (WorkingDaysResponse, error) {
	dept, ok := domain.ParseDepartment(department)
	if !ok {
		return WorkingDaysResponse{}, workingdayerrors.ErrInvalidDepartment
	}
	if err := calendar.ValidateMonth(month, year); err != nil {
		return WorkingDaysResponse{}, workingdayerrors.ErrInvalidPeriod
	}

	wd, err := s.Lookup(ctx, dept, month, year)
	if err != nil {
		return WorkingDaysResponse{}, err
	}
	if wd == nil {
		return WorkingDaysResponse{}, workingdayerrors.ErrWorkingDaysNotFound
	}
	return mapToResponse(*wd), nil
}

func (s *service) GetAllForMonth(ctx context.Context, month, year int) ([]WorkingDaysResponse, error) {
	if err := calendar.ValidateMonth(month, year); err != nil {
		return nil, workingdayerrors.ErrInvalidPeriod
	}

	rows, err := s.repo.FindAllForMonth(ctx, month, year)
	if err != nil {
		s.logger.Error("get working days for month failed", zap.Int("month", month), zap.Int("year", year), zap.Error(err))
		return nil, err
	}

	resp := make([]WorkingDaysResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, mapToResponse(r))
	}
	return resp, nil
}

func (s *service) invalidate(ctx context.Context, dept domain.Department, month, year int) {
	genKey := GetWorkingDaysGenKey(dept, month, year)
	if err := s.rdb.Incr(ctx, genKey).Err(); err != nil {
		s.logger.Error("failed to bump working days cache generation", zap.String("key", genKey), zap.Error(err))
	}
	cacheKey := GetWorkingDaysKey(dept, month, year)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate working days cache", zap.String("key", cacheKey), zap.Error(err))
	}
}

// cachedLookup returns the cached row when its generation is current.
func (s *service) cachedLookup(ctx context.Context, cacheKey, genKey string) (*WorkingDays, bool) {
	vals, err := s.rdb.MGet(ctx, cacheKey, genKey).Result()
	if err != nil || len(vals) != 2 {
		return nil, false
	}
	raw, ok := vals[0].(string)
	if !ok {
		return nil, false
	}
	var entry CachedWorkingDays
	if json.Unmarshal([]byte(raw), &entry) != nil || entry.Data == nil {
		return nil, false
	}
	current, ok := parseGen(vals[1])
	if !ok || entry.Gen != current {
		return nil, false
	}
	return entry.Data, true
}

func parseGen(v interface{}) (int64, bool) {
	switch g := v.(type) {
	case nil:
		return 0, true
	case string:
		n, err := strconv.ParseInt(g, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func (s *service) Lookup(ctx context.Context, department domain.Department, month, year int) (*WorkingDays, error) {
	cacheKey := GetWorkingDaysKey(department, month, year)
	genKey := GetWorkingDaysGenKey(department, month, year)

	if s.rdb != nil {
		if wd, ok := s.cachedLookup(ctx, cacheKey, genKey); ok {
			return wd, nil
		}
	}

	// bulk payroll untuk satu departemen memanggil ini puluhan kali sekaligus
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		// generation dibaca sebelum query DB
		gen, genOK := int64(0), false
		if s.rdb != nil {
			raw, err := s.rdb.Get(ctx, genKey).Result()
			switch {
			case errors.Is(err, redis.Nil):
				genOK = true
			case err == nil:
				gen, genOK = parseGen(raw)
			}
		}

		wd, err := s.repo.FindByKey(ctx, department, month, year)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return (*WorkingDays)(nil), nil
		}
		if err != nil {
			return nil, err
		}

		if genOK {
			if data, err := json.Marshal(CachedWorkingDays{Gen: gen, Data: wd}); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, data, workingDaysCacheTTL).Err(); err != nil {
					s.logger.Warn("cache working days failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return wd, nil
	})
	if err != nil {
		s.logger.Error("lookup working days failed", zap.String("key", cacheKey), zap.Error(err))
		return nil, err
	}

	return v.(*WorkingDays), nil
}
