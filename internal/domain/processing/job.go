package processing

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// JobStatus is the lifecycle state of a processing job
type JobStatus string

// Job states
const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// Done reports whether the job reached a final state
func (s JobStatus) Done() bool {
	return s == JobSucceeded || s == JobFailed
}

// Job is one run of a processing service
type Job struct {
	ID              string    `validate:"required,uuid4"`
	ServiceName     string    `validate:"required,max=100"`
	UserID          string    `validate:"required,max=255"`
	ResourceID      string    `validate:"omitempty,uuid4"`
	InputName       string    `validate:"max=255"`
	InputPath       string    `validate:"max=1000"`
	OutputPath      string    `validate:"max=1000"`
	Status          JobStatus `validate:"required,oneof=pending running succeeded failed"`
	Message         string
	DateTimeCreated time.Time `validate:"required"`
	DateTimeUpdated time.Time
}

// Validate for validating Job struct
func (j *Job) Validate() error {
	validate := validator.New()

	err := validate.Struct(j)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

// ServiceInfo describes a processing service offered to users
type ServiceInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	// AcceptsResource is true when the service can run on a stored resource
	AcceptsResource bool `json:"accepts_resource"`
	// AcceptsUpload is true when the service can run on an uploaded file
	AcceptsUpload bool `json:"accepts_upload"`
}
