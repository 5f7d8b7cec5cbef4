package stats

import (
	"context"
	"time"
)

// Recorder records resource actions. Failures are logged by the implementation
// and never surface to the caller.
type Recorder interface {
	Record(ctx context.Context, userID, resourceID, sessionID string, action Action)
}

// StatsService defines the reporting operations behind the statistics endpoints.
type StatsService interface {
	Recorder

	// RecordQuery stores a search request and its outcome.
	RecordQuery(ctx context.Context, query *QueryStat) error

	// Top returns the resources with the highest count for an action.
	Top(ctx context.Context, action Action, limit int) ([]*TopEntry, error)

	// UserStats returns the per-resource statistics of a user.
	UserStats(ctx context.Context, userID string) ([]*LRStat, error)

	// Usage returns metadata element usage counts, most used first.
	Usage(ctx context.Context, limit int) ([]*UsageStat, error)

	// Daily returns the number of actions of a kind per day since a given date.
	Daily(ctx context.Context, action Action, since time.Time) ([]*DayCount, error)

	// Days returns the number of days statistics have been collected for.
	Days(ctx context.Context) (int, error)

	// Summary aggregates statistics for the window [from, to).
	Summary(ctx context.Context, from, to time.Time) (*Summary, error)

	// ResourceStats returns every statistics row of a resource.
	ResourceStats(ctx context.Context, resourceID string) ([]*LRStat, error)

	// RefreshUsage recomputes the element usage of a resource from its metadata.
	RefreshUsage(ctx context.Context, resourceID string, metadataXML []byte) error
}

// UsageCounter extracts element usage from a metadata document
type UsageCounter interface {
	ElementUsage(xmlDoc []byte) ([]*UsageStat, error)
}

// StatsRepository defines the persistence operations of the statistics tables
type StatsRepository interface {
	// Increment adds one to the matching (user, resource, session, action) row, creating it when absent.
	Increment(ctx context.Context, stat *LRStat) error
	CreateQuery(ctx context.Context, query *QueryStat) error
	Top(ctx context.Context, action Action, limit int) ([]*TopEntry, error)
	ListByUser(ctx context.Context, userID string) ([]*LRStat, error)
	ListByResource(ctx context.Context, resourceID string) ([]*LRStat, error)
	Usage(ctx context.Context, limit int) ([]*UsageStat, error)
	ReplaceUsage(ctx context.Context, resourceID string, usage []*UsageStat) error
	Daily(ctx context.Context, action Action, since time.Time) ([]*DayCount, error)
	FirstActivity(ctx context.Context) (time.Time, bool, error)
	CountActions(ctx context.Context, from, to time.Time) (map[Action]int64, error)
	CountUsers(ctx context.Context, from, to time.Time) (int64, error)
	QueryTotals(ctx context.Context, from, to time.Time) (count int64, avgExecMs float64, err error)
}
