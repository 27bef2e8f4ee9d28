package dashboard

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	dashboarderrors "go-payroll/internal/dashboard/errors"
	"go-payroll/internal/shared/calendar"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const statsCacheTTL = 2 * time.Minute

func GetStatsKey(date calendar.Date) string {
	return "dashboard:stats:" + date.String()
}

type Service interface {
	// Stats summarises the given day; an empty date means today.
	Stats(ctx context.Context, date string) (StatsResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		now:    time.Now,
		logger: l,
	}
}

func (s *service) Stats(ctx context.Context, date string) (StatsResponse, error) {
	day := calendar.FromTime(s.now())
	if date != "" {
		d, err := calendar.Parse(date)
		if err != nil {
			return StatsResponse{}, dashboarderrors.ErrInvalidDate
		}
		day = d
	}
	cacheKey := GetStatsKey(day)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp StatsResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		resp, err := s.buildStats(ctx, day)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, statsCacheTTL).Err(); err != nil {
					s.logger.Warn("cache dashboard stats failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("dashboard stats failed", zap.String("date", day.String()), zap.Error(err))
		return StatsResponse{}, err
	}
	return v.(StatsResponse), nil
}

func (s *service) buildStats(ctx context.Context, day calendar.Date) (StatsResponse, error) {
	emps, err := s.repo.CountEmployees(ctx)
	if err != nil {
		return StatsResponse{}, err
	}

	att, err := s.repo.CountAttendance(ctx, day)
	if err != nil {
		return StatsResponse{}, err
	}

	start, end := calendar.MonthRange(day.Year, day.Month)
	rows, err := s.repo.ListUnpaidAbsences(ctx, start, end)
	if err != nil {
		return StatsResponse{}, err
	}

	return StatsResponse{
		Date:             day.String(),
		TotalEmployees:   emps.Total,
		ActiveEmployees:  emps.Active,
		TodayPresent:     att.Present,
		TodayAbsent:      att.Absent,
		MonthlyAbsentees: topAbsentees(rows, TopAbsenteesLimit),
	}, nil
}

// topAbsentees groups absences per employee, most absent days first.
func topAbsentees(rows []AbsenceRow, limit int) []AbsenteeResponse {
	index := make(map[string]int)
	out := make([]AbsenteeResponse, 0)
	for _, r := range rows {
		i, ok := index[r.EmployeeID]
		if !ok {
			i = len(out)
			index[r.EmployeeID] = i
			out = append(out, AbsenteeResponse{
				EmployeeID:   r.EmployeeID,
				EmployeeCode: r.EmployeeCode,
				FullName:     r.FullName,
				Department:   r.Department,
				Dates:        []string{},
			})
		}
		out[i].AbsentDays++
		out[i].Dates = append(out[i].Dates, r.AttendanceDate.String())
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AbsentDays != out[j].AbsentDays {
			return out[i].AbsentDays > out[j].AbsentDays
		}
		return out[i].FullName < out[j].FullName
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
