package v1

import (
	"fmt"
	"time"

	"github.com/hpusset/ELRI-sub001/internal/domain/processing"
	"github.com/hpusset/ELRI-sub001/internal/domain/resources"
	"github.com/hpusset/ELRI-sub001/internal/domain/stats"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of every failed API call
type ErrorResponse struct {
	Message string `json:"message"`
}

// InfoResponse carries a plain informational message
type InfoResponse struct {
	Message string `json:"message"`
}

// ContactResponse is a contact person of a resource record
type ContactResponse struct {
	ID        string `json:"id"`
	GivenName string `json:"given_name,omitempty"`
	Surname   string `json:"surname"`
	Email     string `json:"email,omitempty"`
	Position  string `json:"position,omitempty"`
	Homepage  string `json:"homepage,omitempty"`
}

// ResourceResponse is a resource record without its metadata document
type ResourceResponse struct {
	ID                string            `json:"id"`
	ResourceName      string            `json:"resource_name"`
	Description       string            `json:"description,omitempty"`
	PublicationStatus string            `json:"publication_status"`
	StatusLabel       string            `json:"status_label"`
	OwnerID           string            `json:"owner_id"`
	Source            string            `json:"source"`
	DateTimeCreated   time.Time         `json:"date_time_created"`
	DateTimeUpdated   time.Time         `json:"date_time_updated"`
	Contacts          []ContactResponse `json:"contacts"`
}

// UpdateStatusRequest moves a resource to another publication status.
// Status accepts the single-character code or its label.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,max=20"`
}

// Validate for validating UpdateStatusRequest struct
func (r *UpdateStatusRequest) Validate() error {
	return validateRequest(r)
}

// ProcessRequest names the processing service to run on a stored resource
type ProcessRequest struct {
	Service string `json:"service" form:"service" validate:"required,max=100"`
}

// Validate for validating ProcessRequest struct
func (r *ProcessRequest) Validate() error {
	return validateRequest(r)
}

// JobResponse is the state of a processing job
type JobResponse struct {
	ID              string    `json:"id"`
	ServiceName     string    `json:"service"`
	ResourceID      string    `json:"resource_id,omitempty"`
	InputName       string    `json:"input_name"`
	Status          string    `json:"status"`
	Message         string    `json:"message,omitempty"`
	DateTimeCreated time.Time `json:"date_time_created"`
	DateTimeUpdated time.Time `json:"date_time_updated"`
}

// TopEntryResponse is one row of a ranking
type TopEntryResponse struct {
	ResourceID   string `json:"resource_id"`
	ResourceName string `json:"resource_name"`
	Count        int64  `json:"count"`
}

// LRStatResponse is one statistics row of a user on a resource
type LRStatResponse struct {
	ResourceID string    `json:"resource_id"`
	UserID     string    `json:"user_id"`
	Action     string    `json:"action"`
	Count      int64     `json:"count"`
	LastTime   time.Time `json:"last_time"`
}

// UsageResponse is the use count of a metadata element
type UsageResponse struct {
	Element string `json:"element"`
	Parent  string `json:"parent"`
	Count   int64  `json:"count"`
}

// DayCountResponse is the number of actions on one day
type DayCountResponse struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// ChartResponse holds the daily counts of one action
type ChartResponse struct {
	Action string             `json:"action"`
	Days   []DayCountResponse `json:"days"`
}

// DaysResponse is the number of days statistics cover
type DaysResponse struct {
	Days int `json:"days"`
}

// SummaryResponse aggregates statistics over a time window
type SummaryResponse struct {
	From         time.Time        `json:"from"`
	To           time.Time        `json:"to"`
	Users        int64            `json:"users"`
	Resources    int64            `json:"resources"`
	Published    int64            `json:"published"`
	Actions      map[string]int64 `json:"actions"`
	Queries      int64            `json:"queries"`
	AvgQueryTime float64          `json:"avg_query_time_ms"`
	Statuses     map[string]int64 `json:"statuses"`
}

func validateRequest(request interface{}) error {
	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
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

func newResourceResponse(resource *resources.ResourceMeta) ResourceResponse {
	response := ResourceResponse{
		ID:                resource.ID,
		ResourceName:      resource.ResourceName,
		Description:       resource.Description,
		PublicationStatus: string(resource.PublicationStatus),
		StatusLabel:       resource.PublicationStatus.Label(),
		OwnerID:           resource.OwnerID,
		Source:            resource.Source,
		DateTimeCreated:   resource.DateTimeCreated,
		DateTimeUpdated:   resource.DateTimeUpdated,
		Contacts:          []ContactResponse{},
	}
	for _, c := range resource.Contacts {
		response.Contacts = append(response.Contacts, ContactResponse{
			ID:        c.ID,
			GivenName: c.GivenName,
			Surname:   c.Surname,
			Email:     c.Email,
			Position:  c.Position,
			Homepage:  c.Homepage,
		})
	}
	return response
}

func newJobResponse(job *processing.Job) JobResponse {
	return JobResponse{
		ID:              job.ID,
		ServiceName:     job.ServiceName,
		ResourceID:      job.ResourceID,
		InputName:       job.InputName,
		Status:          string(job.Status),
		Message:         job.Message,
		DateTimeCreated: job.DateTimeCreated,
		DateTimeUpdated: job.DateTimeUpdated,
	}
}

func newLRStatResponses(rows []*stats.LRStat) []LRStatResponse {
	response := []LRStatResponse{}
	for _, row := range rows {
		response = append(response, LRStatResponse{
			ResourceID: row.ResourceID,
			UserID:     row.UserID,
			Action:     row.Action.Label(),
			Count:      row.Count,
			LastTime:   row.LastTime,
		})
	}
	return response
}
