package models

import (
	"time"

	"github.com/hpusset/ELRI-sub001/internal/domain/stats"
)

// LRStatModel counts one action of one user on one resource within a session
type LRStatModel struct {
	ID         string    `gorm:"primaryKey;type:uuid"`
	UserID     string    `gorm:"not null;type:varchar(255);uniqueIndex:idx_lr_stats_key"`
	ResourceID string    `gorm:"not null;type:uuid;index;uniqueIndex:idx_lr_stats_key"`
	SessionID  string    `gorm:"not null;type:varchar(64);uniqueIndex:idx_lr_stats_key"`
	Action     string    `gorm:"not null;type:char(1);uniqueIndex:idx_lr_stats_key"`
	Count      int64     `gorm:"not null;default:1"`
	LastTime   time.Time `gorm:"not null;index"`
	Ignored    bool      `gorm:"not null;default:false"`
}

// TableName specifies the table name for GORM
func (LRStatModel) TableName() string {
	return "lr_stats"
}

// ToDomain converts GORM model to domain entity
func (m *LRStatModel) ToDomain() *stats.LRStat {
	return &stats.LRStat{
		ID:         m.ID,
		UserID:     m.UserID,
		ResourceID: m.ResourceID,
		SessionID:  m.SessionID,
		Action:     stats.Action(m.Action),
		Count:      m.Count,
		LastTime:   m.LastTime,
		Ignored:    m.Ignored,
	}
}

// FromDomain converts domain entity to GORM model
func (m *LRStatModel) FromDomain(s *stats.LRStat) {
	m.ID = s.ID
	m.UserID = s.UserID
	m.ResourceID = s.ResourceID
	m.SessionID = s.SessionID
	m.Action = string(s.Action)
	m.Count = s.Count
	m.LastTime = s.LastTime
	m.Ignored = s.Ignored
}

// QueryStatModel stores one repository search
type QueryStatModel struct {
	ID         string    `gorm:"primaryKey;type:uuid"`
	Query      string    `gorm:"type:varchar(1000)"`
	Facets     string    `gorm:"type:text"`
	Found      int64     `gorm:"not null;default:0"`
	ExecTimeMs int64     `gorm:"not null;default:0"`
	LastTime   time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (QueryStatModel) TableName() string {
	return "query_stats"
}

// FromDomain converts domain entity to GORM model
func (m *QueryStatModel) FromDomain(q *stats.QueryStat) {
	m.ID = q.ID
	m.Query = q.Query
	m.Facets = q.Facets
	m.Found = q.Found
	m.ExecTimeMs = q.ExecTimeMs
	m.LastTime = q.LastTime
}

// UsageStatModel stores how often an element occurs in a resource's metadata
type UsageStatModel struct {
	ResourceID string `gorm:"primaryKey;type:uuid"`
	Element    string `gorm:"primaryKey;type:varchar(255)"`
	Parent     string `gorm:"primaryKey;type:varchar(255)"`
	Count      int64  `gorm:"not null;default:0"`
}

// TableName specifies the table name for GORM
func (UsageStatModel) TableName() string {
	return "usage_stats"
}

// FromDomain converts domain entity to GORM model
func (m *UsageStatModel) FromDomain(resourceID string, u *stats.UsageStat) {
	m.ResourceID = resourceID
	m.Element = u.Element
	m.Parent = u.Parent
	m.Count = u.Count
}
