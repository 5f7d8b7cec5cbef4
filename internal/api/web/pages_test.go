//go:build unit
// +build unit

package web

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hpusset/ELRI-sub001/internal/domain/resources"
	"github.com/hpusset/ELRI-sub001/internal/pkg/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMetadataService struct {
	mock.Mock
}

func (m *mockMetadataService) List(ctx context.Context, query *resources.ResourceQuery) ([]*resources.ResourceMeta, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*resources.ResourceMeta), args.Error(1)
}

func (m *mockMetadataService) GetByID(ctx context.Context, resourceID, userID string) (*resources.ResourceMeta, error) {
	args := m.Called(ctx, resourceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resources.ResourceMeta), args.Error(1)
}

func (m *mockMetadataService) UpdateStatus(ctx context.Context, resourceID, userID string, status resources.PublicationStatus) (*resources.ResourceMeta, error) {
	args := m.Called(ctx, resourceID, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resources.ResourceMeta), args.Error(1)
}

func (m *mockMetadataService) DeleteByID(ctx context.Context, resourceID, userID string) error {
	args := m.Called(ctx, resourceID, userID)
	return args.Error(0)
}

func newTestPageHandler(t *testing.T, service resources.ResourceMetadataService) PageHandler {
	translator, err := NewTranslator("en", []string{"en", "el"})
	require.NoError(t, err)

	log := testutil.NewRecordingLogger()
	handler, err := NewPageHandler(service, NewContextProcessor(newTestSite(), log), translator, log)
	require.NoError(t, err)
	return handler
}

func newPageContext(url, acceptLanguage string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, url, nil)
	if acceptLanguage != "" {
		ctx.Request.Header.Set("Accept-Language", acceptLanguage)
	}
	return ctx, w
}

func testPublishedResource(status resources.PublicationStatus) *resources.ResourceMeta {
	return &resources.ResourceMeta{
		ID:                "3f1c6f0e-7a43-4b8e-9d57-3c2f0b1f9a11",
		ResourceName:      `The "Greek" public sector corpus`,
		Description:       "Parallel texts from ministries",
		PublicationStatus: status,
		OwnerID:           "alice",
		Source:            resources.SourceUpload,
		DateTimeCreated:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Contacts: []resources.ContactPerson{
			{GivenName: "Maria", Surname: "Papadopoulou", Homepage: "elrc-share.eu"},
		},
	}
}

func TestPageHandler_Home(t *testing.T) {
	service := new(mockMetadataService)
	resource := testPublishedResource(resources.StatusPublished)

	var seen *resources.ResourceQuery
	service.On("List", mock.Anything, mock.AnythingOfType("*resources.ResourceQuery")).
		Run(func(args mock.Arguments) { seen = args.Get(1).(*resources.ResourceQuery) }).
		Return([]*resources.ResourceMeta{resource}, nil)

	handler := newTestPageHandler(t, service)
	ctx, w := newPageContext("/", "")
	handler.Home(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Contains(t, body, `<html lang="en">`)
	assert.Contains(t, body, "Published language resources")
	assert.Contains(t, body, "The “Greek” public sector corpus")
	assert.Contains(t, body, "/repository/browse/"+resource.ID)
	assert.Contains(t, body, `alt="ELRI National Relay Station"`)
	assert.Contains(t, body, `target="_blank"`)
	assert.Contains(t, body, "mailto:info@elri.example.org")

	want := &resources.ResourceQuery{
		PublicationStatus: resources.StatusPublished,
		Limit:             homePageSize,
		SortBy:            "resource_name",
		SortOrder:         "asc",
	}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Errorf("unexpected query (-want +got):\n%s", diff)
	}
	service.AssertExpectations(t)
}

func TestPageHandler_Home_Greek(t *testing.T) {
	service := new(mockMetadataService)
	service.On("List", mock.Anything, mock.Anything).Return([]*resources.ResourceMeta{}, nil)

	handler := newTestPageHandler(t, service)
	ctx, w := newPageContext("/", "el-GR,el;q=0.9")
	handler.Home(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `<html lang="el">`)
	assert.Contains(t, body, "Δεν έχουν δημοσιευθεί ακόμη πόροι.")
}

func TestPageHandler_Home_LangQueryWins(t *testing.T) {
	service := new(mockMetadataService)
	service.On("List", mock.Anything, mock.Anything).Return([]*resources.ResourceMeta{}, nil)

	handler := newTestPageHandler(t, service)
	ctx, w := newPageContext("/?lang=en", "el")
	handler.Home(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No resources have been published yet.")
}

func TestPageHandler_Home_ListError(t *testing.T) {
	service := new(mockMetadataService)
	service.On("List", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("database down"))

	handler := newTestPageHandler(t, service)
	ctx, w := newPageContext("/", "")
	handler.Home(ctx)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPageHandler_Browse(t *testing.T) {
	resource := testPublishedResource(resources.StatusPublished)

	t.Run("Published", func(t *testing.T) {
		service := new(mockMetadataService)
		service.On("GetByID", mock.Anything, resource.ID, "anonymous").Return(resource, nil)

		handler := newTestPageHandler(t, service)
		ctx, w := newPageContext("/repository/browse/"+resource.ID, "")
		ctx.Params = gin.Params{{Key: "id", Value: resource.ID}}
		handler.Browse(ctx)

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Parallel texts from ministries")
		assert.Contains(t, body, "published")
		assert.Contains(t, body, "2024-03-01")
		assert.Contains(t, body, "Papadopoulou")
		assert.Contains(t, body, `href="http://elrc-share.eu"`)
		assert.Contains(t, body, "export?format=json")
		service.AssertExpectations(t)
	})

	t.Run("Unpublished", func(t *testing.T) {
		service := new(mockMetadataService)
		service.On("GetByID", mock.Anything, resource.ID, "anonymous").
			Return(testPublishedResource(resources.StatusInternal), nil)

		handler := newTestPageHandler(t, service)
		ctx, w := newPageContext("/repository/browse/"+resource.ID, "")
		ctx.Params = gin.Params{{Key: "id", Value: resource.ID}}
		handler.Browse(ctx)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		service := new(mockMetadataService)
		service.On("GetByID", mock.Anything, "missing", "anonymous").Return(nil, resources.ErrNotFound)

		handler := newTestPageHandler(t, service)
		ctx, w := newPageContext("/repository/browse/missing", "")
		ctx.Params = gin.Params{{Key: "id", Value: "missing"}}
		handler.Browse(ctx)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRoutes(r, newTestPageHandler(t, new(mockMetadataService)))

	paths := map[string]bool{}
	for _, route := range r.Routes() {
		paths[route.Method+" "+route.Path] = true
	}
	assert.True(t, paths["GET /"])
	assert.True(t, paths["GET /repository/browse/:id"])
}
