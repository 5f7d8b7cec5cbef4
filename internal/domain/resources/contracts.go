package resources

import (
	"context"
)

// SubmissionRequest carries a new resource record
type SubmissionRequest struct {
	ResourceName string
	Description  string
	MetadataXML  []byte
	OwnerID      string
	Source       string
	Status       PublicationStatus
	Contacts     []ContactPerson
}

// ResourceSubmissionService defines methods for adding resources to the repository.
type ResourceSubmissionService interface {
	// Submit validates the metadata document and stores a new record.
	// The record starts in the requested status or DefaultPublicationStatus.
	Submit(ctx context.Context, req *SubmissionRequest) (*ResourceMeta, error)
}

// ResourceMetadataService defines methods for reading and managing stored records.
type ResourceMetadataService interface {
	// List retrieves resource records considering a query filter when set.
	List(ctx context.Context, query *ResourceQuery) ([]*ResourceMeta, error)

	// GetByID retrieves a resource record by ID. Reads on behalf of a user are counted as views.
	GetByID(ctx context.Context, resourceID, userID string) (*ResourceMeta, error)

	// UpdateStatus moves the record to a new publication status.
	UpdateStatus(ctx context.Context, resourceID, userID string, status PublicationStatus) (*ResourceMeta, error)

	// DeleteByID deletes a resource record by ID.
	DeleteByID(ctx context.Context, resourceID, userID string) error
}

// ResourceExportService defines methods for moving metadata in and out of the repository.
type ResourceExportService interface {
	// ExportXML returns the metadata record serialized as XML.
	ExportXML(ctx context.Context, resourceID, userID string) ([]byte, error)

	// ExportJSON returns the metadata record converted to JSON.
	ExportJSON(ctx context.Context, resourceID, userID string) ([]byte, error)

	// ImportJSON converts a JSON metadata document to XML and submits it.
	ImportJSON(ctx context.Context, resourceName, ownerID string, document []byte) (*ResourceMeta, error)
}

// ResourceRepository defines the interface for ResourceMeta persistence
type ResourceRepository interface {
	// Create adds a new ResourceMeta to the database
	Create(ctx context.Context, resource *ResourceMeta) error
	// List lists ResourceMeta in the database with optional filter
	List(ctx context.Context, query *ResourceQuery) ([]*ResourceMeta, error)
	// GetByID retrieves a ResourceMeta from the database by ID
	GetByID(ctx context.Context, resourceID string) (*ResourceMeta, error)
	// UpdateByID updates a ResourceMeta in the database by ID
	UpdateByID(ctx context.Context, resource *ResourceMeta) error
	// DeleteByID deletes a ResourceMeta in the database by ID
	DeleteByID(ctx context.Context, resourceID string) error
	// CountByStatus returns the number of records per publication status
	CountByStatus(ctx context.Context) (map[PublicationStatus]int64, error)
}

// MetadataCodec converts metadata documents between XML and JSON
type MetadataCodec interface {
	// Indent returns a well-formed, indented copy of an XML document
	Indent(xmlDoc []byte) ([]byte, error)
	// XMLToJSON converts an XML document into its JSON representation
	XMLToJSON(xmlDoc []byte) ([]byte, error)
	// JSONToXML converts a JSON document back into XML
	JSONToXML(jsonDoc []byte) ([]byte, error)
}
