package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Moti-Eli/edu-plus/internal/models"
	appErrors "github.com/Moti-Eli/edu-plus/pkg/errors"
)

const statsCachePrefix = "stats:"

type statsAttendanceSource interface {
	ListAll(ctx context.Context) ([]models.AttendanceRecord, error)
}

type statsAdminSource interface {
	ListAll(ctx context.Context) ([]models.AdminAttendanceRecord, error)
}

type statsScheduleSource interface {
	ListAll(ctx context.Context) ([]models.ScheduleEntry, error)
}

type statsUserSource interface {
	ListActive(ctx context.Context) ([]models.UserProfile, error)
}

// StatisticsService loads the attendance snapshot, runs the reconciliation
// rollup and caches the result per requested period. Attendance writes
// invalidate the whole prefix.
type StatisticsService struct {
	attendance statsAttendanceSource
	admin      statsAdminSource
	schedules  statsScheduleSource
	users      statsUserSource
	cache      *CacheService
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewStatisticsService constructs the statistics service.
func NewStatisticsService(attendance statsAttendanceSource, admin statsAdminSource, schedules statsScheduleSource, users statsUserSource, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *StatisticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &StatisticsService{
		attendance: attendance,
		admin:      admin,
		schedules:  schedules,
		users:      users,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// Get returns reconciled statistics for the requested period. An empty
// period resolves to the most recent month with instructor reports, and
// "all" disables period filtering.
func (s *StatisticsService) Get(ctx context.Context, requested string) (*StatisticsResult, error) {
	key := cacheKeyForPeriod(requested)
	if s.cache != nil {
		var cached StatisticsResult
		if hit, _ := s.cache.Get(ctx, key, &cached); hit {
			return &cached, nil
		}
	}

	result, err := s.compute(ctx, requested)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache statistics", zap.String("key", key), zap.Error(err))
		}
	}
	return result, nil
}

// Snapshot loads the four statistics sources without running the rollup.
// The export and assistant services reuse it.
func (s *StatisticsService) Snapshot(ctx context.Context) (*StatisticsInput, error) {
	instructorRecords, err := s.attendance.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance reports")
	}
	adminRecords, err := s.admin.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load admin attendance records")
	}
	schedules, err := s.schedules.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	users, err := s.users.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user roster")
	}
	return &StatisticsInput{
		InstructorRecords: instructorRecords,
		AdminRecords:      adminRecords,
		Schedules:         schedules,
		ActiveUsers:       users,
	}, nil
}

// InvalidateStatistics drops every cached statistics payload. Invalidation
// failures are logged and swallowed so writes never fail on cache trouble.
func (s *StatisticsService) InvalidateStatistics(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, statsCachePrefix+"*"); err != nil {
		s.logger.Warn("failed to invalidate statistics cache", zap.Error(err))
	}
}

func (s *StatisticsService) compute(ctx context.Context, requested string) (*StatisticsResult, error) {
	input, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	periods := AvailablePeriods(input.InstructorRecords)
	input.Period = EffectivePeriod(periods, requested)
	result := ComputeStatistics(*input)
	return &result, nil
}

func cacheKeyForPeriod(requested string) string {
	if requested == "" {
		requested = "latest"
	}
	return fmt.Sprintf("%speriod:%s", statsCachePrefix, requested)
}
