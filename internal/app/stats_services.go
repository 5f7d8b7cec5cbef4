package app

import (
	"context"
	"fmt"
	"time"

	"github.com/hpusset/ELRI-sub001/internal/domain/resources"
	"github.com/hpusset/ELRI-sub001/internal/domain/stats"
	"github.com/hpusset/ELRI-sub001/internal/pkg/logger"
)

const (
	defaultTopLimit   = 10
	maxStatsLimit     = 1000
	defaultDailyRange = 30 * 24 * time.Hour
	sessionDayLayout  = "2006-01-02"
)

// statsService implements the StatsService interface on top of the statistics tables
type statsService struct {
	statsRepo    stats.StatsRepository
	resourceRepo resources.ResourceRepository
	usageCounter stats.UsageCounter
	logger       logger.Logger
	now          func() time.Time
}

// NewStatsService creates a new instance of StatsService
func NewStatsService(statsRepo stats.StatsRepository, resourceRepo resources.ResourceRepository, usageCounter stats.UsageCounter, logger logger.Logger) (stats.StatsService, error) {
	return &statsService{
		statsRepo:    statsRepo,
		resourceRepo: resourceRepo,
		usageCounter: usageCounter,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}, nil
}

// Record counts an action. Without a session the action is grouped per user and day.
func (s *statsService) Record(ctx context.Context, userID, resourceID, sessionID string, action stats.Action) {
	if resourceID == "" || userID == "" {
		return
	}
	now := s.now()
	if sessionID == "" {
		sessionID = now.Format(sessionDayLayout)
	}

	err := s.statsRepo.Increment(ctx, &stats.LRStat{
		UserID:     userID,
		ResourceID: resourceID,
		SessionID:  sessionID,
		Action:     action,
		LastTime:   now,
	})
	if err != nil {
		s.logger.Warn("failed to record statistics", "action", action.Label(), "resource_id", resourceID, "error", err.Error())
	}
}

func (s *statsService) RecordQuery(ctx context.Context, query *stats.QueryStat) error {
	if query == nil {
		return fmt.Errorf("query statistics are required")
	}
	if query.LastTime.IsZero() {
		query.LastTime = s.now()
	}
	return s.statsRepo.CreateQuery(ctx, query)
}

func (s *statsService) Top(ctx context.Context, action stats.Action, limit int) ([]*stats.TopEntry, error) {
	return s.statsRepo.Top(ctx, action, clampLimit(limit, defaultTopLimit))
}

func (s *statsService) UserStats(ctx context.Context, userID string) ([]*stats.LRStat, error) {
	return s.statsRepo.ListByUser(ctx, userID)
}

func (s *statsService) Usage(ctx context.Context, limit int) ([]*stats.UsageStat, error) {
	return s.statsRepo.Usage(ctx, clampLimit(limit, maxStatsLimit))
}

// Daily defaults to the last 30 days when since is zero
func (s *statsService) Daily(ctx context.Context, action stats.Action, since time.Time) ([]*stats.DayCount, error) {
	if since.IsZero() {
		since = s.now().Add(-defaultDailyRange)
	}
	return s.statsRepo.Daily(ctx, action, since)
}

// Days counts calendar days from the first recorded activity to today, both included
func (s *statsService) Days(ctx context.Context) (int, error) {
	first, ok, err := s.statsRepo.FirstActivity(ctx)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}

	start := truncateDay(first)
	today := truncateDay(s.now())
	return int(today.Sub(start).Hours()/24) + 1, nil
}

func (s *statsService) Summary(ctx context.Context, from, to time.Time) (*stats.Summary, error) {
	if to.IsZero() {
		to = s.now()
	}
	if from.IsZero() {
		from = to.Add(-defaultDailyRange)
	}
	if !from.Before(to) {
		return nil, fmt.Errorf("invalid window: %s is not before %s", from.Format(time.RFC3339), to.Format(time.RFC3339))
	}

	actions, err := s.statsRepo.CountActions(ctx, from, to)
	if err != nil {
		return nil, err
	}
	users, err := s.statsRepo.CountUsers(ctx, from, to)
	if err != nil {
		return nil, err
	}
	queries, avg, err := s.statsRepo.QueryTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}
	statusCounts, err := s.resourceRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	summary := &stats.Summary{
		From:         from,
		To:           to,
		Users:        users,
		ActionCounts: actions,
		Queries:      queries,
		AvgQueryTime: avg,
		StatusCounts: make(map[string]int64, len(statusCounts)),
	}
	for status, n := range statusCounts {
		summary.Resources += n
		summary.StatusCounts[status.Label()] = n
	}
	summary.Published = statusCounts[resources.StatusPublished]
	return summary, nil
}

func (s *statsService) ResourceStats(ctx context.Context, resourceID string) ([]*stats.LRStat, error) {
	return s.statsRepo.ListByResource(ctx, resourceID)
}

func (s *statsService) RefreshUsage(ctx context.Context, resourceID string, metadataXML []byte) error {
	usage, err := s.usageCounter.ElementUsage(metadataXML)
	if err != nil {
		return fmt.Errorf("failed to count elements of %s: %w", resourceID, err)
	}
	return s.statsRepo.ReplaceUsage(ctx, resourceID, usage)
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > maxStatsLimit {
		return maxStatsLimit
	}
	return limit
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
