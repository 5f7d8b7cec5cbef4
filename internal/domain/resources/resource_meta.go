package resources

import (
	"errors"
	"fmt"
	"time"

	"github.com/hpusset/ELRI-sub001/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// Resource sources
const (
	SourceUpload    = "upload"
	SourceEDelivery = "edelivery"
	SourceImport    = "import"
)

// ContactPerson is a contact attached to a resource record
type ContactPerson struct {
	ID        string `validate:"required,uuid4"`
	GivenName string `validate:"max=100"`
	Surname   string `validate:"required,min=1,max=100"`
	Email     string `validate:"omitempty,email"`
	Position  string `validate:"max=50"`
	Homepage  string `validate:"omitempty,max=1000,homepage"`
}

// ResourceMeta entity
type ResourceMeta struct {
	ID                string            `validate:"required,uuid4"`
	ResourceName      string            `validate:"required,min=1,max=500"`
	Description       string            `validate:"max=10000"`
	MetadataXML       string            `validate:"required"`
	PublicationStatus PublicationStatus `validate:"required,publicationStatus"`
	OwnerID           string            `validate:"required,min=1,max=255"`
	Source            string            `validate:"required,oneof=upload edelivery import"`
	DateTimeCreated   time.Time         `validate:"required"`
	DateTimeUpdated   time.Time
	Contacts          []ContactPerson `validate:"dive"`
}

// Validate for validating ResourceMeta struct
func (r *ResourceMeta) Validate() error {
	validate := validator.New()

	if err := validators.Register(validate); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	err := validate.Struct(r)
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

// IsPublished reports whether the record is visible on the public pages
func (r *ResourceMeta) IsPublished() bool {
	return r.PublicationStatus == StatusPublished
}
