package dashboard_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"go-payroll/internal/dashboard"
	dashboarderrors "go-payroll/internal/dashboard/errors"
	dashboardMock "go-payroll/internal/dashboard/mock"
	"go-payroll/internal/shared/calendar"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func absence(emp, name string, day int) dashboard.AbsenceRow {
	return dashboard.AbsenceRow{
		EmployeeID:     emp,
		FullName:       name,
		Department:     "Mechanic",
		AttendanceDate: calendar.MustNew(2024, 3, day),
	}
}

func TestDashboardService_Stats(t *testing.T) {
	ctx := context.Background()
	day := calendar.MustNew(2024, 3, 15)
	key := dashboard.GetStatsKey(day)

	t.Run("cache miss builds and stores stats", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := dashboardMock.NewMockRepository(ctrl)
		rdb, redisMock := redismock.NewClientMock()
		svc := dashboard.NewService(repo, rdb)

		repo.EXPECT().CountEmployees(ctx).Return(dashboard.EmployeeCounts{Total: 12, Active: 10}, nil)
		repo.EXPECT().CountAttendance(ctx, day).Return(dashboard.AttendanceCounts{Present: 8, Absent: 2}, nil)
		repo.EXPECT().ListUnpaidAbsences(ctx, calendar.MustNew(2024, 3, 1), calendar.MustNew(2024, 3, 31)).
			Return([]dashboard.AbsenceRow{
				absence("a", "Andi", 4),
				absence("b", "Budi", 5),
				absence("b", "Budi", 6),
				absence("c", "Citra", 7),
			}, nil)

		redisMock.ExpectGet(key).RedisNil()
		redisMock.Regexp().ExpectSet(key, `.*`, 2*time.Minute).SetVal("OK")

		resp, err := svc.Stats(ctx, "2024-03-15")
		require.NoError(t, err)
		assert.Equal(t, int64(12), resp.TotalEmployees)
		assert.Equal(t, int64(10), resp.ActiveEmployees)
		assert.Equal(t, int64(8), resp.TodayPresent)
		assert.Equal(t, int64(2), resp.TodayAbsent)
		require.Len(t, resp.MonthlyAbsentees, 3)
		assert.Equal(t, "Budi", resp.MonthlyAbsentees[0].FullName)
		assert.Equal(t, []string{"2024-03-05", "2024-03-06"}, resp.MonthlyAbsentees[0].Dates)
		assert.Equal(t, "Andi", resp.MonthlyAbsentees[1].FullName)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := dashboardMock.NewMockRepository(ctrl)
		rdb, redisMock := redismock.NewClientMock()
		svc := dashboard.NewService(repo, rdb)

		cached, _ := json.Marshal(dashboard.StatsResponse{Date: "2024-03-15", TotalEmployees: 3})
		redisMock.ExpectGet(key).SetVal(string(cached))

		resp, err := svc.Stats(ctx, "2024-03-15")
		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.TotalEmployees)
	})

	t.Run("top ten only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := dashboardMock.NewMockRepository(ctrl)
		svc := dashboard.NewService(repo, nil)

		var rows []dashboard.AbsenceRow
		for i := 0; i < 12; i++ {
			rows = append(rows, absence(fmt.Sprintf("e%02d", i), fmt.Sprintf("Emp %02d", i), 1+i))
		}
		repo.EXPECT().CountEmployees(ctx).Return(dashboard.EmployeeCounts{}, nil)
		repo.EXPECT().CountAttendance(ctx, day).Return(dashboard.AttendanceCounts{}, nil)
		repo.EXPECT().ListUnpaidAbsences(ctx, gomock.Any(), gomock.Any()).Return(rows, nil)

		resp, err := svc.Stats(ctx, "2024-03-15")
		require.NoError(t, err)
		assert.Len(t, resp.MonthlyAbsentees, dashboard.TopAbsenteesLimit)
	})

	t.Run("repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := dashboardMock.NewMockRepository(ctrl)
		svc := dashboard.NewService(repo, nil)

		repo.EXPECT().CountEmployees(ctx).Return(dashboard.EmployeeCounts{}, errors.New("db down"))

		_, err := svc.Stats(ctx, "2024-03-15")
		assert.EqualError(t, err, "db down")
	})

	t.Run("invalid date", func(t *testing.T) {
		svc := dashboard.NewService(dashboardMock.NewMockRepository(gomock.NewController(t)), nil)

		_, err := svc.Stats(ctx, "15-03-2024")
		assert.ErrorIs(t, err, dashboarderrors.ErrInvalidDate)
	})
}
