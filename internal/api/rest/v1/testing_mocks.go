//go:build unit
// +build unit

package v1

import (
	"context"
	"io"
	"time"

	"github.com/hpusset/ELRI-sub001/internal/domain/edelivery"
	"github.com/hpusset/ELRI-sub001/internal/domain/processing"
	"github.com/hpusset/ELRI-sub001/internal/domain/resources"
	"github.com/hpusset/ELRI-sub001/internal/domain/stats"
	"github.com/hpusset/ELRI-sub001/internal/domain/tm"

	"github.com/stretchr/testify/mock"
)

// MockResourceSubmissionService is a mock implementation of ResourceSubmissionService
type MockResourceSubmissionService struct {
	mock.Mock
}

func (m *MockResourceSubmissionService) Submit(ctx context.Context, req *resources.SubmissionRequest) (*resources.ResourceMeta, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resources.ResourceMeta), args.Error(1)
}

// MockResourceMetadataService is a mock implementation of ResourceMetadataService
type MockResourceMetadataService struct {
	mock.Mock
}

func (m *MockResourceMetadataService) List(ctx context.Context, query *resources.ResourceQuery) ([]*resources.ResourceMeta, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*resources.ResourceMeta), args.Error(1)
}

func (m *MockResourceMetadataService) GetByID(ctx context.Context, resourceID, userID string) (*resources.ResourceMeta, error) {
	args := m.Called(ctx, resourceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resources.ResourceMeta), args.Error(1)
}

func (m *MockResourceMetadataService) UpdateStatus(ctx context.Context, resourceID, userID string, status resources.PublicationStatus) (*resources.ResourceMeta, error) {
	args := m.Called(ctx, resourceID, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resources.ResourceMeta), args.Error(1)
}

func (m *MockResourceMetadataService) DeleteByID(ctx context.Context, resourceID, userID string) error {
	return m.Called(ctx, resourceID, userID).Error(0)
}

// MockResourceExportService is a mock implementation of ResourceExportService
type MockResourceExportService struct {
	mock.Mock
}

func (m *MockResourceExportService) ExportXML(ctx context.Context, resourceID, userID string) ([]byte, error) {
	args := m.Called(ctx, resourceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockResourceExportService) ExportJSON(ctx context.Context, resourceID, userID string) ([]byte, error) {
	args := m.Called(ctx, resourceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockResourceExportService) ImportJSON(ctx context.Context, resourceName, ownerID string, document []byte) (*resources.ResourceMeta, error) {
	args := m.Called(ctx, resourceName, ownerID, document)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resources.ResourceMeta), args.Error(1)
}

// MockProcessingService is a mock implementation of ProcessingService
type MockProcessingService struct {
	mock.Mock
}

func (m *MockProcessingService) RunJob(ctx context.Context, jobID string) error {
	return m.Called(ctx, jobID).Error(0)
}

func (m *MockProcessingService) Services() []processing.ServiceInfo {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]processing.ServiceInfo)
}

func (m *MockProcessingService) ProcessResource(ctx context.Context, serviceName, resourceID, userID string) (*processing.Job, error) {
	args := m.Called(ctx, serviceName, resourceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*processing.Job), args.Error(1)
}

func (m *MockProcessingService) SubmitData(ctx context.Context, serviceName, userID, fileName string, data io.Reader) (*processing.Job, error) {
	args := m.Called(ctx, serviceName, userID, fileName, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*processing.Job), args.Error(1)
}

func (m *MockProcessingService) GetJob(ctx context.Context, jobID, userID string) (*processing.Job, error) {
	args := m.Called(ctx, jobID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*processing.Job), args.Error(1)
}

func (m *MockProcessingService) OpenResult(ctx context.Context, jobID, userID string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, jobID, userID)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.String(1), args.Error(2)
}

// MockStatsService is a mock implementation of StatsService
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Record(ctx context.Context, userID, resourceID, sessionID string, action stats.Action) {
	m.Called(ctx, userID, resourceID, sessionID, action)
}

func (m *MockStatsService) RecordQuery(ctx context.Context, query *stats.QueryStat) error {
	return m.Called(ctx, query).Error(0)
}

func (m *MockStatsService) Top(ctx context.Context, action stats.Action, limit int) ([]*stats.TopEntry, error) {
	args := m.Called(ctx, action, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stats.TopEntry), args.Error(1)
}

func (m *MockStatsService) UserStats(ctx context.Context, userID string) ([]*stats.LRStat, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stats.LRStat), args.Error(1)
}

func (m *MockStatsService) Usage(ctx context.Context, limit int) ([]*stats.UsageStat, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stats.UsageStat), args.Error(1)
}

func (m *MockStatsService) Daily(ctx context.Context, action stats.Action, since time.Time) ([]*stats.DayCount, error) {
	args := m.Called(ctx, action, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stats.DayCount), args.Error(1)
}

func (m *MockStatsService) Days(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsService) Summary(ctx context.Context, from, to time.Time) (*stats.Summary, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stats.Summary), args.Error(1)
}

func (m *MockStatsService) ResourceStats(ctx context.Context, resourceID string) ([]*stats.LRStat, error) {
	args := m.Called(ctx, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stats.LRStat), args.Error(1)
}

func (m *MockStatsService) RefreshUsage(ctx context.Context, resourceID string, metadataXML []byte) error {
	return m.Called(ctx, resourceID, metadataXML).Error(0)
}

// MockTMService is a mock implementation of TMService
type MockTMService struct {
	mock.Mock
}

func (m *MockTMService) AddDocument(ctx context.Context, name string, tmx []byte) (*tm.Document, error) {
	args := m.Called(ctx, name, tmx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tm.Document), args.Error(1)
}

func (m *MockTMService) Units(ctx context.Context, sourceLang, targetLang string, limit int) ([]*tm.TranslationUnit, error) {
	args := m.Called(ctx, sourceLang, targetLang, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tm.TranslationUnit), args.Error(1)
}

// MockIngestService is a mock implementation of edelivery.IngestService
type MockIngestService struct {
	mock.Mock
}

func (m *MockIngestService) Pull(ctx context.Context, userID string) (*edelivery.PullReport, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*edelivery.PullReport), args.Error(1)
}

// MockVariantLookup is a mock implementation of langtags.VariantLookup
type MockVariantLookup struct {
	mock.Mock
}

func (m *MockVariantLookup) LanguageVariants(lang string) []string {
	args := m.Called(lang)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockVariantLookup) ScriptVariants(lang, script string) []string {
	args := m.Called(lang, script)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockVariantLookup) VariantVariants(lang, variant string) []string {
	args := m.Called(lang, variant)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}
