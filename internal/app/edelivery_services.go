package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/hpusset/ELRI-sub001/internal/domain/edelivery"
	"github.com/hpusset/ELRI-sub001/internal/domain/resources"
	"github.com/hpusset/ELRI-sub001/internal/domain/stats"
	"github.com/hpusset/ELRI-sub001/internal/pkg/logger"
)

// resourceNameProperty is the message property carrying the resource title
const resourceNameProperty = "resourceName"

// eDeliveryIngestService implements the IngestService interface
type eDeliveryIngestService struct {
	client            edelivery.Client
	submissionService resources.ResourceSubmissionService
	recorder          stats.Recorder
	logger            logger.Logger
}

// NewEDeliveryIngestService creates a new instance of IngestService
func NewEDeliveryIngestService(client edelivery.Client, submissionService resources.ResourceSubmissionService, recorder stats.Recorder, logger logger.Logger) (edelivery.IngestService, error) {
	return &eDeliveryIngestService{
		client:            client,
		submissionService: submissionService,
		recorder:          recorder,
		logger:            logger,
	}, nil
}

// Pull ingests the XML payloads of every pending message. A message fails as a
// whole when it cannot be retrieved or one of its XML payloads is rejected.
// Resources stored before the failure stay listed in the report.
func (s *eDeliveryIngestService) Pull(ctx context.Context, userID string) (*edelivery.PullReport, error) {
	messageIDs, err := s.client.ListPendingMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending messages: %w", err)
	}

	report := &edelivery.PullReport{
		Pending:     len(messageIDs),
		Ingested:    []string{},
		Failed:      []string{},
		ResourceIDs: []string{},
	}

	for _, messageID := range messageIDs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if status, err := s.client.GetStatus(ctx, messageID); err == nil && status != "" && status != edelivery.StatusReceived {
			s.logger.Debug("skipping message", "message_id", messageID, "status", status)
			continue
		}

		ids, err := s.ingest(ctx, userID, messageID)
		if err != nil {
			s.logger.Warn("failed to ingest message", "message_id", messageID, "error", err.Error())
			report.Failed = append(report.Failed, messageID)
			report.ResourceIDs = append(report.ResourceIDs, ids...)
			continue
		}
		report.Ingested = append(report.Ingested, messageID)
		report.ResourceIDs = append(report.ResourceIDs, ids...)
	}

	s.logger.Info("e-Delivery pull finished",
		"pending", report.Pending,
		"ingested", len(report.Ingested),
		"failed", len(report.Failed))
	return report, nil
}

func (s *eDeliveryIngestService) ingest(ctx context.Context, userID, messageID string) ([]string, error) {
	message, err := s.client.RetrieveMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}

	var ids []string
	for i, payload := range message.Payloads {
		if !isXMLPayload(payload) {
			continue
		}

		resource, err := s.submissionService.Submit(ctx, &resources.SubmissionRequest{
			ResourceName: resourceName(message, i),
			Description:  fmt.Sprintf("Received from %s (%s/%s)", message.FromParty, message.Service, message.Action),
			MetadataXML:  payload.Value,
			OwnerID:      userID,
			Source:       resources.SourceEDelivery,
			Status:       resources.StatusIngested,
		})
		if err != nil {
			return ids, fmt.Errorf("payload %s: %w", payload.ID, err)
		}

		s.recorder.Record(ctx, userID, resource.ID, messageID, stats.ActionIngest)
		ids = append(ids, resource.ID)
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("message %s carries no XML payload", messageID)
	}
	return ids, nil
}

func isXMLPayload(p edelivery.Payload) bool {
	if strings.Contains(strings.ToLower(p.ContentType), "xml") {
		return true
	}
	return p.ContentType == "" && strings.HasPrefix(strings.TrimSpace(string(p.Value)), "<")
}

func resourceName(message *edelivery.Message, index int) string {
	name := strings.TrimSpace(message.Properties[resourceNameProperty])
	if name == "" {
		name = "e-Delivery message " + message.ID
	}
	if index > 0 {
		name = fmt.Sprintf("%s (%d)", name, index+1)
	}
	return name
}
