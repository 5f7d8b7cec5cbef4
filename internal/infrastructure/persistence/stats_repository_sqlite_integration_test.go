//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/hpusset/ELRI-sub001/internal/domain/stats"
	"github.com/hpusset/ELRI-sub001/internal/infrastructure/persistence/models"
	"github.com/hpusset/ELRI-sub001/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordStat(t *testing.T, ctx *TestContext, userID, resourceID, session string, action stats.Action, at time.Time) {
	t.Helper()
	require.NoError(t, ctx.StatsRepo.Increment(context.Background(), &stats.LRStat{
		UserID:     userID,
		ResourceID: resourceID,
		SessionID:  session,
		Action:     action,
		LastTime:   at,
	}))
}

func TestStatsRepository_Increment_Upserts(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	resource := CreateTestResource(t, "")
	require.NoError(t, ctx.ResourceRepo.Create(context.Background(), resource))

	first := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	recordStat(t, ctx, TestUserID, resource.ID, "s1", stats.ActionView, first)
	recordStat(t, ctx, TestUserID, resource.ID, "s1", stats.ActionView, first.Add(time.Hour))
	recordStat(t, ctx, TestUserID, resource.ID, "s2", stats.ActionView, first.Add(2*time.Hour))

	var rows []models.LRStatModel
	require.NoError(t, ctx.DB.Order("session_id").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(2), rows[0].Count)
	assert.True(t, rows[0].LastTime.Equal(first.Add(time.Hour)))
	assert.Equal(t, int64(1), rows[1].Count)

	list, err := ctx.StatsRepo.ListByUser(context.Background(), TestUserID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = ctx.StatsRepo.ListByResource(context.Background(), resource.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestStatsRepository_Top(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	popular := CreateTestResource(t, "popular")
	quiet := CreateTestResource(t, "quiet")
	require.NoError(t, ctx.ResourceRepo.Create(context.Background(), popular))
	require.NoError(t, ctx.ResourceRepo.Create(context.Background(), quiet))

	now := time.Now().UTC()
	recordStat(t, ctx, "a", popular.ID, "s1", stats.ActionView, now)
	recordStat(t, ctx, "b", popular.ID, "s2", stats.ActionView, now)
	recordStat(t, ctx, "a", quiet.ID, "s1", stats.ActionView, now)
	recordStat(t, ctx, "a", quiet.ID, "s1", stats.ActionRetrieve, now)

	top, err := ctx.StatsRepo.Top(context.Background(), stats.ActionView, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "popular", top[0].ResourceName)
	assert.Equal(t, int64(2), top[0].Count)
	assert.Equal(t, "quiet", top[1].ResourceName)

	top, err = ctx.StatsRepo.Top(context.Background(), stats.ActionRetrieve, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, quiet.ID, top[0].ResourceID)
}

func TestStatsRepository_DailyAndWindow(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	resource := CreateTestResource(t, "")
	require.NoError(t, ctx.ResourceRepo.Create(context.Background(), resource))

	day1 := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)
	recordStat(t, ctx, "a", resource.ID, "s1", stats.ActionView, day1)
	recordStat(t, ctx, "b", resource.ID, "s2", stats.ActionView, day2)
	recordStat(t, ctx, "c", resource.ID, "s3", stats.ActionView, day2.Add(time.Hour))
	recordStat(t, ctx, "c", resource.ID, "s3", stats.ActionRetrieve, day2.Add(time.Hour))

	days, err := ctx.StatsRepo.Daily(context.Background(), stats.ActionView, day1.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []*stats.DayCount{{Day: "2024-05-01", Count: 1}, {Day: "2024-05-02", Count: 2}}, days)

	first, ok, err := ctx.StatsRepo.FirstActivity(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, first.Equal(day1))

	from, to := day2.Add(-time.Hour), day2.Add(24*time.Hour)
	actions, err := ctx.StatsRepo.CountActions(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, map[stats.Action]int64{stats.ActionView: 2, stats.ActionRetrieve: 1}, actions)

	users, err := ctx.StatsRepo.CountUsers(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(2), users)
}

func TestStatsRepository_FirstActivity_Empty(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	_, ok, err := ctx.StatsRepo.FirstActivity(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStatsRepository_Queries(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, ctx.StatsRepo.CreateQuery(context.Background(), &stats.QueryStat{Query: "corpus", Found: 3, ExecTimeMs: 10, LastTime: at}))
	require.NoError(t, ctx.StatsRepo.CreateQuery(context.Background(), &stats.QueryStat{Query: "lexicon", Found: 0, ExecTimeMs: 30, LastTime: at}))

	count, avg, err := ctx.StatsRepo.QueryTotals(context.Background(), at.Add(-time.Hour), at.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.InDelta(t, 20.0, avg, 0.001)

	count, avg, err = ctx.StatsRepo.QueryTotals(context.Background(), at.Add(time.Hour), at.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, avg)
}

func TestStatsRepository_Usage(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	first := CreateTestResource(t, "")
	second := CreateTestResource(t, "")
	require.NoError(t, ctx.ResourceRepo.Create(context.Background(), first))
	require.NoError(t, ctx.ResourceRepo.Create(context.Background(), second))

	require.NoError(t, ctx.StatsRepo.ReplaceUsage(context.Background(), first.ID, []*stats.UsageStat{
		{Element: "resourceName", Parent: "identificationInfo", Count: 1},
		{Element: "languageId", Parent: "languageInfo", Count: 2},
	}))
	require.NoError(t, ctx.StatsRepo.ReplaceUsage(context.Background(), second.ID, []*stats.UsageStat{
		{Element: "languageId", Parent: "languageInfo", Count: 3},
	}))

	usage, err := ctx.StatsRepo.Usage(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, usage, 2)
	assert.Equal(t, "languageId", usage[0].Element)
	assert.Equal(t, int64(5), usage[0].Count)

	require.NoError(t, ctx.StatsRepo.ReplaceUsage(context.Background(), second.ID, nil))
	usage, err = ctx.StatsRepo.Usage(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, usage, 1)
	assert.Equal(t, int64(2), usage[0].Count)
}
