package models

import (
	"time"

	"github.com/hpusset/ELRI-sub001/internal/domain/processing"
)

// JobModel is the GORM database model for processing jobs
type JobModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	ServiceName     string    `gorm:"not null;type:varchar(100)"`
	UserID          string    `gorm:"not null;index;type:varchar(255)"`
	ResourceID      *string   `gorm:"type:uuid;index"`
	InputName       string    `gorm:"type:varchar(255)"`
	InputPath       string    `gorm:"type:varchar(1000)"`
	OutputPath      string    `gorm:"type:varchar(1000)"`
	Status          string    `gorm:"not null;type:varchar(20);index"`
	Message         string    `gorm:"type:text"`
	DateTimeCreated time.Time `gorm:"not null"`
	DateTimeUpdated time.Time
}

// TableName specifies the table name for GORM
func (JobModel) TableName() string {
	return "processing_jobs"
}

// ToDomain converts GORM model to domain entity
func (m *JobModel) ToDomain() *processing.Job {
	j := &processing.Job{
		ID:              m.ID,
		ServiceName:     m.ServiceName,
		UserID:          m.UserID,
		InputName:       m.InputName,
		InputPath:       m.InputPath,
		OutputPath:      m.OutputPath,
		Status:          processing.JobStatus(m.Status),
		Message:         m.Message,
		DateTimeCreated: m.DateTimeCreated,
		DateTimeUpdated: m.DateTimeUpdated,
	}
	if m.ResourceID != nil {
		j.ResourceID = *m.ResourceID
	}
	return j
}

// FromDomain converts domain entity to GORM model
func (m *JobModel) FromDomain(j *processing.Job) {
	m.ID = j.ID
	m.ServiceName = j.ServiceName
	m.UserID = j.UserID
	m.ResourceID = nullable(j.ResourceID)
	m.InputName = j.InputName
	m.InputPath = j.InputPath
	m.OutputPath = j.OutputPath
	m.Status = string(j.Status)
	m.Message = j.Message
	m.DateTimeCreated = j.DateTimeCreated
	m.DateTimeUpdated = j.DateTimeUpdated
}
