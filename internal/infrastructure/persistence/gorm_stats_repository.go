package persistence

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/hpusset/ELRI-sub001/internal/domain/stats"
	"github.com/hpusset/ELRI-sub001/internal/infrastructure/persistence/models"
	"github.com/hpusset/ELRI-sub001/internal/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const dayLayout = "2006-01-02"

type gormStatsRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormStatsRepository creates a new GORM-based StatsRepository implementation
func NewGormStatsRepository(db *gorm.DB, logger logger.Logger) (stats.StatsRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	return &gormStatsRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Increment upserts on the (user, resource, session, action) key
func (r *gormStatsRepository) Increment(ctx context.Context, stat *stats.LRStat) error {
	if stat.ID == "" {
		stat.ID = uuid.NewString()
	}
	if stat.Count == 0 {
		stat.Count = 1
	}
	if stat.LastTime.IsZero() {
		stat.LastTime = time.Now().UTC()
	}

	model := &models.LRStatModel{}
	model.FromDomain(stat)

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "resource_id"}, {Name: "session_id"}, {Name: "action"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"count":     gorm.Expr("lr_stats.count + ?", stat.Count),
			"last_time": stat.LastTime,
		}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to record %s statistics: %w", stat.Action.Label(), err)
	}
	return nil
}

func (r *gormStatsRepository) CreateQuery(ctx context.Context, query *stats.QueryStat) error {
	if query.ID == "" {
		query.ID = uuid.NewString()
	}
	if query.LastTime.IsZero() {
		query.LastTime = time.Now().UTC()
	}

	model := &models.QueryStatModel{}
	model.FromDomain(query)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to record query statistics: %w", err)
	}
	return nil
}

func (r *gormStatsRepository) Top(ctx context.Context, action stats.Action, limit int) ([]*stats.TopEntry, error) {
	var rows []struct {
		ResourceID   string
		ResourceName string
		Total        int64
	}
	dbQuery := r.db.WithContext(ctx).Table("lr_stats").
		Select("lr_stats.resource_id AS resource_id, resources.resource_name AS resource_name, SUM(lr_stats.count) AS total").
		Joins("JOIN resources ON resources.id = lr_stats.resource_id").
		Where("lr_stats.action = ? AND lr_stats.ignored = ?", string(action), false).
		Group("lr_stats.resource_id, resources.resource_name").
		Order("total DESC, resource_name ASC")
	if limit > 0 {
		dbQuery = dbQuery.Limit(limit)
	}
	if err := dbQuery.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch top resources: %w", err)
	}

	entries := make([]*stats.TopEntry, len(rows))
	for i, row := range rows {
		entries[i] = &stats.TopEntry{ResourceID: row.ResourceID, ResourceName: row.ResourceName, Count: row.Total}
	}
	return entries, nil
}

func (r *gormStatsRepository) ListByUser(ctx context.Context, userID string) ([]*stats.LRStat, error) {
	return r.list(ctx, "user_id = ?", userID)
}

func (r *gormStatsRepository) ListByResource(ctx context.Context, resourceID string) ([]*stats.LRStat, error) {
	return r.list(ctx, "resource_id = ?", resourceID)
}

func (r *gormStatsRepository) list(ctx context.Context, where string, arg string) ([]*stats.LRStat, error) {
	var modelList []*models.LRStatModel
	if err := r.db.WithContext(ctx).Where(where, arg).Order("last_time DESC").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch statistics: %w", err)
	}

	statList := make([]*stats.LRStat, len(modelList))
	for i, model := range modelList {
		statList[i] = model.ToDomain()
	}
	return statList, nil
}

func (r *gormStatsRepository) Usage(ctx context.Context, limit int) ([]*stats.UsageStat, error) {
	var rows []struct {
		Element string
		Parent  string
		Total   int64
	}
	dbQuery := r.db.WithContext(ctx).Model(&models.UsageStatModel{}).
		Select("element, parent, SUM(count) AS total").
		Group("element, parent").
		Order("total DESC, element ASC")
	if limit > 0 {
		dbQuery = dbQuery.Limit(limit)
	}
	if err := dbQuery.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch usage statistics: %w", err)
	}

	usage := make([]*stats.UsageStat, len(rows))
	for i, row := range rows {
		usage[i] = &stats.UsageStat{Element: row.Element, Parent: row.Parent, Count: row.Total}
	}
	return usage, nil
}

func (r *gormStatsRepository) ReplaceUsage(ctx context.Context, resourceID string, usage []*stats.UsageStat) error {
	modelList := make([]models.UsageStatModel, len(usage))
	for i, u := range usage {
		modelList[i].FromDomain(resourceID, u)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("resource_id = ?", resourceID).Delete(&models.UsageStatModel{}).Error; err != nil {
			return err
		}
		if len(modelList) == 0 {
			return nil
		}
		return tx.Create(&modelList).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace usage statistics of %s: %w", resourceID, err)
	}

	r.logger.Debug("Replaced usage statistics of resource ", resourceID)
	return nil
}

// Daily buckets rows by the day of their last activity
func (r *gormStatsRepository) Daily(ctx context.Context, action stats.Action, since time.Time) ([]*stats.DayCount, error) {
	var modelList []*models.LRStatModel
	err := r.db.WithContext(ctx).
		Where("action = ? AND last_time >= ? AND ignored = ?", string(action), since, false).
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch daily statistics: %w", err)
	}

	perDay := make(map[string]int64)
	for _, model := range modelList {
		perDay[model.LastTime.UTC().Format(dayLayout)] += model.Count
	}

	days := make([]*stats.DayCount, 0, len(perDay))
	for day, count := range perDay {
		days = append(days, &stats.DayCount{Day: day, Count: count})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })
	return days, nil
}

func (r *gormStatsRepository) FirstActivity(ctx context.Context) (time.Time, bool, error) {
	var model models.LRStatModel
	err := r.db.WithContext(ctx).Order("last_time ASC").First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("failed to fetch first activity: %w", err)
	}
	return model.LastTime, true, nil
}

func (r *gormStatsRepository) CountActions(ctx context.Context, from, to time.Time) (map[stats.Action]int64, error) {
	var rows []struct {
		Action string
		Total  int64
	}
	err := r.db.WithContext(ctx).Model(&models.LRStatModel{}).
		Select("action, SUM(count) AS total").
		Where("last_time >= ? AND last_time < ? AND ignored = ?", from, to, false).
		Group("action").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count actions: %w", err)
	}

	counts := make(map[stats.Action]int64, len(rows))
	for _, row := range rows {
		counts[stats.Action(row.Action)] = row.Total
	}
	return counts, nil
}

func (r *gormStatsRepository) CountUsers(ctx context.Context, from, to time.Time) (int64, error) {
	var users int64
	err := r.db.WithContext(ctx).Model(&models.LRStatModel{}).
		Where("last_time >= ? AND last_time < ? AND ignored = ?", from, to, false).
		Distinct("user_id").
		Count(&users).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return users, nil
}

func (r *gormStatsRepository) QueryTotals(ctx context.Context, from, to time.Time) (int64, float64, error) {
	var row struct {
		Total   int64
		AvgExec float64
	}
	err := r.db.WithContext(ctx).Model(&models.QueryStatModel{}).
		Select("COUNT(*) AS total, COALESCE(AVG(exec_time_ms), 0) AS avg_exec").
		Where("last_time >= ? AND last_time < ?", from, to).
		Scan(&row).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate queries: %w", err)
	}
	return row.Total, row.AvgExec, nil
}
