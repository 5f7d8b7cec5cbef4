//go:build integration
// +build integration

package app

import (
	"context"
	"testing"

	"github.com/hpusset/ELRI-sub001/internal/domain/processing"
	"github.com/hpusset/ELRI-sub001/internal/domain/resources"
	"github.com/hpusset/ELRI-sub001/internal/domain/stats"
	"github.com/hpusset/ELRI-sub001/internal/infrastructure/metadataxml"
	"github.com/hpusset/ELRI-sub001/internal/infrastructure/persistence"
	"github.com/hpusset/ELRI-sub001/internal/pkg/config"
	"github.com/hpusset/ELRI-sub001/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

// TestMetadataXML is a small well-formed metadata record
const TestMetadataXML = `<?xml version="1.0" encoding="UTF-8"?>
<resourceInfo>
  <identificationInfo>
    <resourceName lang="en">Test corpus</resourceName>
  </identificationInfo>
  <languageInfo><languageId>el</languageId></languageInfo>
  <languageInfo><languageId>en</languageId></languageInfo>
</resourceInfo>`

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	SubmissionService resources.ResourceSubmissionService
	MetadataService   resources.ResourceMetadataService
	ExportService     resources.ResourceExportService
	StatsService      stats.StatsService
	ProcessingService processing.ProcessingService
	WorkerPool        *WorkerPool
	StorageDir        string

	DBContext *persistence.TestContext
}

// SetupTestServices initializes all database backed application services for integration tests
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	dbContext := persistence.SetupTestDB(t, dbType)

	codec, err := metadataxml.NewCodec(&config.MetadataSettings{})
	require.NoError(t, err, "Failed to create metadata codec")

	statsService, err := NewStatsService(dbContext.StatsRepo, dbContext.ResourceRepo, codec, logger)
	require.NoError(t, err, "Failed to create stats service")

	submissionService, err := NewResourceSubmissionService(dbContext.ResourceRepo, codec, statsService, logger)
	require.NoError(t, err, "Failed to create submission service")

	metadataService, err := NewResourceMetadataService(dbContext.ResourceRepo, statsService, logger)
	require.NoError(t, err, "Failed to create metadata service")

	exportService, err := NewResourceExportService(dbContext.ResourceRepo, codec, submissionService, statsService, logger)
	require.NoError(t, err, "Failed to create export service")

	storageDir := t.TempDir()
	pool, err := NewWorkerPool(&config.ProcessingSettings{Workers: 1, QueueSize: 8, StorageDir: storageDir}, logger)
	require.NoError(t, err, "Failed to create worker pool")

	processingService, err := NewProcessingService(
		[]processing.Processor{NewMetadataJSONProcessor(codec), NewXMLValidateProcessor(codec)},
		dbContext.JobRepo,
		dbContext.ResourceRepo,
		pool,
		storageDir,
		logger,
	)
	require.NoError(t, err, "Failed to create processing service")

	return &TestServices{
		SubmissionService: submissionService,
		MetadataService:   metadataService,
		ExportService:     exportService,
		StatsService:      statsService,
		ProcessingService: processingService,
		WorkerPool:        pool,
		StorageDir:        storageDir,
		DBContext:         dbContext,
	}
}

// SubmitTestResource stores TestMetadataXML owned by ownerID
func SubmitTestResource(t *testing.T, services *TestServices, ownerID string) *resources.ResourceMeta {
	t.Helper()

	resource, err := services.SubmissionService.Submit(context.Background(), &resources.SubmissionRequest{
		ResourceName: "Test corpus",
		MetadataXML:  []byte(TestMetadataXML),
		OwnerID:      ownerID,
	})
	require.NoError(t, err)
	return resource
}
