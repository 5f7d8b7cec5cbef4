package resources

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ResourceQuery filters and pages resource listings
type ResourceQuery struct {
	ResourceName      string            `validate:"omitempty,max=500"`
	PublicationStatus PublicationStatus `validate:"omitempty,oneof=i g r e p"`
	OwnerID           string            `validate:"omitempty,max=255"`
	Source            string            `validate:"omitempty,oneof=upload edelivery import"`

	Limit     int    `validate:"omitempty,gte=0,lte=1000"`
	Offset    int    `validate:"omitempty,gte=0"`
	SortBy    string `validate:"omitempty,oneof=resource_name date_time_created date_time_updated publication_status"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// NewResourceQuery returns a query with default paging
func NewResourceQuery() *ResourceQuery {
	return &ResourceQuery{
		Limit:     50,
		SortBy:    "date_time_created",
		SortOrder: "desc",
	}
}

// Validate for validating ResourceQuery struct
func (q *ResourceQuery) Validate() error {
	validate := validator.New()

	err := validate.Struct(q)
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
