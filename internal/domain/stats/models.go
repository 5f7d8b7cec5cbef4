package stats

import (
	"fmt"
	"time"
)

// Action is the kind of interaction recorded for a resource
type Action string

// Recorded actions
const (
	ActionView     Action = "v"
	ActionRetrieve Action = "r"
	ActionUpdate   Action = "u"
	ActionPublish  Action = "p"
	ActionIngest   Action = "i"
	ActionDelete   Action = "d"
)

var actionLabels = map[Action]string{
	ActionView:     "view",
	ActionRetrieve: "download",
	ActionUpdate:   "update",
	ActionPublish:  "publish",
	ActionIngest:   "ingest",
	ActionDelete:   "delete",
}

// ParseAction accepts either the single-character code or the label
func ParseAction(s string) (Action, error) {
	if _, ok := actionLabels[Action(s)]; ok {
		return Action(s), nil
	}
	for code, label := range actionLabels {
		if label == s {
			return code, nil
		}
	}
	return "", fmt.Errorf("unknown statistics action %q", s)
}

// Label returns the human readable name of the action
func (a Action) Label() string {
	if label, ok := actionLabels[a]; ok {
		return label
	}
	return "unknown"
}

// LRStat counts one kind of action of one user on one resource
type LRStat struct {
	ID         string
	UserID     string
	ResourceID string
	SessionID  string
	Action     Action
	Count      int64
	LastTime   time.Time
	Ignored    bool
}

// QueryStat records a repository search
type QueryStat struct {
	ID         string
	Query      string
	Facets     string
	Found      int64
	ExecTimeMs int64
	LastTime   time.Time
}

// UsageStat counts how often a metadata element is used across records
type UsageStat struct {
	ResourceID string
	Element    string
	Parent     string
	Count      int64
}

// TopEntry is one line of a "most viewed / downloaded" ranking
type TopEntry struct {
	ResourceID   string
	ResourceName string
	Count        int64
}

// DayCount is the number of actions of a kind on a given day
type DayCount struct {
	Day   string
	Count int64
}

// Summary aggregates repository statistics for a time window
type Summary struct {
	From         time.Time
	To           time.Time
	Users        int64
	Resources    int64
	Published    int64
	ActionCounts map[Action]int64
	Queries      int64
	AvgQueryTime float64
	StatusCounts map[string]int64
}
