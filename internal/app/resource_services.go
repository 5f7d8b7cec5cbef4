package app

import (
	"context"
	"fmt"
	"time"

	"github.com/hpusset/ELRI-sub001/internal/domain/resources"
	"github.com/hpusset/ELRI-sub001/internal/domain/stats"
	"github.com/hpusset/ELRI-sub001/internal/pkg/logger"

	"github.com/google/uuid"
)

// resourceSubmissionService implements the ResourceSubmissionService interface
type resourceSubmissionService struct {
	resourceRepo resources.ResourceRepository
	codec        resources.MetadataCodec
	statsService stats.StatsService
	logger       logger.Logger
}

// NewResourceSubmissionService creates a new instance of ResourceSubmissionService
func NewResourceSubmissionService(resourceRepo resources.ResourceRepository, codec resources.MetadataCodec, statsService stats.StatsService, logger logger.Logger) (resources.ResourceSubmissionService, error) {
	return &resourceSubmissionService{
		resourceRepo: resourceRepo,
		codec:        codec,
		statsService: statsService,
		logger:       logger,
	}, nil
}

// Submit stores the metadata document indented. Element usage statistics are
// refreshed afterwards and a failure there does not fail the submission.
func (s *resourceSubmissionService) Submit(ctx context.Context, req *resources.SubmissionRequest) (*resources.ResourceMeta, error) {
	if req == nil || len(req.MetadataXML) == 0 {
		return nil, fmt.Errorf("%w: empty document", resources.ErrInvalidMetadata)
	}

	indented, err := s.codec.Indent(req.MetadataXML)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = resources.DefaultPublicationStatus
	}
	source := req.Source
	if source == "" {
		source = resources.SourceUpload
	}

	resource := &resources.ResourceMeta{
		ID:                uuid.NewString(),
		ResourceName:      req.ResourceName,
		Description:       req.Description,
		MetadataXML:       string(indented),
		PublicationStatus: status,
		OwnerID:           req.OwnerID,
		Source:            source,
		DateTimeCreated:   time.Now().UTC(),
		Contacts:          make([]resources.ContactPerson, len(req.Contacts)),
	}
	for i, contact := range req.Contacts {
		if contact.ID == "" {
			contact.ID = uuid.NewString()
		}
		resource.Contacts[i] = contact
	}

	if err := s.resourceRepo.Create(ctx, resource); err != nil {
		return nil, fmt.Errorf("failed to store resource: %w", err)
	}

	if err := s.statsService.RefreshUsage(ctx, resource.ID, indented); err != nil {
		s.logger.Warn("failed to refresh element usage", "resource_id", resource.ID, "error", err.Error())
	}

	s.logger.Info("resource submitted",
		"resource_id", resource.ID,
		"source", resource.Source,
		"status", resource.PublicationStatus.Label())
	return resource, nil
}

// resourceMetadataService implements the ResourceMetadataService interface
type resourceMetadataService struct {
	resourceRepo resources.ResourceRepository
	recorder     stats.Recorder
	logger       logger.Logger
}

// NewResourceMetadataService creates a new instance of ResourceMetadataService
func NewResourceMetadataService(resourceRepo resources.ResourceRepository, recorder stats.Recorder, logger logger.Logger) (resources.ResourceMetadataService, error) {
	return &resourceMetadataService{
		resourceRepo: resourceRepo,
		recorder:     recorder,
		logger:       logger,
	}, nil
}

func (s *resourceMetadataService) List(ctx context.Context, query *resources.ResourceQuery) ([]*resources.ResourceMeta, error) {
	return s.resourceRepo.List(ctx, query)
}

func (s *resourceMetadataService) GetByID(ctx context.Context, resourceID, userID string) (*resources.ResourceMeta, error) {
	resource, err := s.resourceRepo.GetByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, userID, resource.ID, "", stats.ActionView)
	return resource, nil
}

// UpdateStatus applies a lifecycle transition. Moving to the current status changes nothing.
func (s *resourceMetadataService) UpdateStatus(ctx context.Context, resourceID, userID string, status resources.PublicationStatus) (*resources.ResourceMeta, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", resources.ErrInvalidTransition, status)
	}

	resource, err := s.resourceRepo.GetByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if resource.PublicationStatus == status {
		return resource, nil
	}
	if !resource.PublicationStatus.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s to %s", resources.ErrInvalidTransition,
			resource.PublicationStatus.Label(), status.Label())
	}

	previous := resource.PublicationStatus
	resource.PublicationStatus = status
	resource.DateTimeUpdated = time.Now().UTC()
	if err := s.resourceRepo.UpdateByID(ctx, resource); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, userID, resource.ID, "", stats.ActionUpdate)
	if status == resources.StatusPublished {
		s.recorder.Record(ctx, userID, resource.ID, "", stats.ActionPublish)
	}

	s.logger.Info("publication status changed",
		"resource_id", resource.ID,
		"from", previous.Label(),
		"to", status.Label())
	return resource, nil
}

func (s *resourceMetadataService) DeleteByID(ctx context.Context, resourceID, userID string) error {
	if err := s.resourceRepo.DeleteByID(ctx, resourceID); err != nil {
		return err
	}
	s.recorder.Record(ctx, userID, resourceID, "", stats.ActionDelete)
	return nil
}

// resourceExportService implements the ResourceExportService interface
type resourceExportService struct {
	resourceRepo      resources.ResourceRepository
	codec             resources.MetadataCodec
	submissionService resources.ResourceSubmissionService
	recorder          stats.Recorder
	logger            logger.Logger
}

// NewResourceExportService creates a new instance of ResourceExportService
func NewResourceExportService(resourceRepo resources.ResourceRepository, codec resources.MetadataCodec, submissionService resources.ResourceSubmissionService, recorder stats.Recorder, logger logger.Logger) (resources.ResourceExportService, error) {
	return &resourceExportService{
		resourceRepo:      resourceRepo,
		codec:             codec,
		submissionService: submissionService,
		recorder:          recorder,
		logger:            logger,
	}, nil
}

func (s *resourceExportService) ExportXML(ctx context.Context, resourceID, userID string) ([]byte, error) {
	return s.export(ctx, resourceID, userID, s.codec.Indent)
}

func (s *resourceExportService) ExportJSON(ctx context.Context, resourceID, userID string) ([]byte, error) {
	return s.export(ctx, resourceID, userID, s.codec.XMLToJSON)
}

func (s *resourceExportService) export(ctx context.Context, resourceID, userID string, encode func([]byte) ([]byte, error)) ([]byte, error) {
	resource, err := s.resourceRepo.GetByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	out, err := encode([]byte(resource.MetadataXML))
	if err != nil {
		return nil, fmt.Errorf("failed to export resource %s: %w", resourceID, err)
	}

	s.recorder.Record(ctx, userID, resource.ID, "", stats.ActionRetrieve)
	return out, nil
}

func (s *resourceExportService) ImportJSON(ctx context.Context, resourceName, ownerID string, document []byte) (*resources.ResourceMeta, error) {
	xmlDoc, err := s.codec.JSONToXML(document)
	if err != nil {
		return nil, err
	}

	return s.submissionService.Submit(ctx, &resources.SubmissionRequest{
		ResourceName: resourceName,
		MetadataXML:  xmlDoc,
		OwnerID:      ownerID,
		Source:       resources.SourceImport,
	})
}
