//go:build unit
// +build unit

package app

import (
	"context"

	"github.com/hpusset/ELRI-sub001/internal/domain/edelivery"
	"github.com/hpusset/ELRI-sub001/internal/domain/resources"
	"github.com/hpusset/ELRI-sub001/internal/domain/stats"
	"github.com/hpusset/ELRI-sub001/internal/domain/tm"

	"github.com/stretchr/testify/mock"
)

// MockEDeliveryClient is a mock implementation of edelivery.Client
type MockEDeliveryClient struct {
	mock.Mock
}

func (m *MockEDeliveryClient) ListPendingMessages(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockEDeliveryClient) RetrieveMessage(ctx context.Context, messageID string) (*edelivery.Message, error) {
	args := m.Called(ctx, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*edelivery.Message), args.Error(1)
}

func (m *MockEDeliveryClient) GetStatus(ctx context.Context, messageID string) (string, error) {
	args := m.Called(ctx, messageID)
	return args.String(0), args.Error(1)
}

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

// MockRecorder is a mock implementation of stats.Recorder
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, userID, resourceID, sessionID string, action stats.Action) {
	m.Called(ctx, userID, resourceID, sessionID, action)
}

// MockSessionOpener is a mock implementation of tm.SessionOpener
type MockSessionOpener struct {
	mock.Mock
}

func (m *MockSessionOpener) Dial(ctx context.Context) (tm.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(tm.Session), args.Error(1)
}

func (m *MockSessionOpener) Open(ctx context.Context, database string) (tm.Session, error) {
	args := m.Called(ctx, database)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(tm.Session), args.Error(1)
}

// MockSession is a mock implementation of tm.Session
type MockSession struct {
	mock.Mock
}

func (m *MockSession) Execute(command string) (string, error) {
	args := m.Called(command)
	return args.String(0), args.Error(1)
}

func (m *MockSession) Add(path, input string) error {
	return m.Called(path, input).Error(0)
}

func (m *MockSession) Replace(path, input string) error {
	return m.Called(path, input).Error(0)
}

func (m *MockSession) Create(name, input string) error {
	return m.Called(name, input).Error(0)
}

func (m *MockSession) Info() string {
	return m.Called().String(0)
}

func (m *MockSession) Close() error {
	return m.Called().Error(0)
}
