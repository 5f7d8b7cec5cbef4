//go:build unit
// +build unit

package v1

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/hpusset/ELRI-sub001/internal/domain/processing"
	"github.com/hpusset/ELRI-sub001/internal/domain/resources"
	"github.com/hpusset/ELRI-sub001/internal/pkg/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testJob() *processing.Job {
	return &processing.Job{
		ID:          "job-1",
		ServiceName: "metadata-json",
		UserID:      "alice",
		InputName:   "corpus.xml",
		Status:      processing.JobPending,
	}
}

func TestProcessingHandler_ListServices(t *testing.T) {
	service := new(MockProcessingService)
	service.On("Services").Return([]processing.ServiceInfo{{Name: "metadata-json", AcceptsResource: true}})
	handler := NewProcessingHandler(service)

	c, w := newTestContext("GET", "/processing/", nil, "")
	handler.ListServices(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"metadata-json"`)
	assert.Contains(t, w.Body.String(), `"accepts_resource":true`)
}

func TestProcessingHandler_ProcessResource(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		serviceErr   error
		expectedCode int
	}{
		{"queued", `{"service":"metadata-json"}`, nil, http.StatusAccepted},
		{"unknown service", `{"service":"metadata-json"}`, processing.ErrUnknownService, http.StatusBadRequest},
		{"queue full", `{"service":"metadata-json"}`, processing.ErrQueueFull, http.StatusServiceUnavailable},
		{"missing resource", `{"service":"metadata-json"}`, fmt.Errorf("wrapped: %w", resources.ErrNotFound), http.StatusNotFound},
		{"missing service", `{}`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockProcessingService)
			if tt.serviceErr != nil {
				service.On("ProcessResource", mock.Anything, "metadata-json", "r-1", "alice").Return(nil, tt.serviceErr)
			} else {
				service.On("ProcessResource", mock.Anything, "metadata-json", "r-1", "alice").Return(testJob(), nil)
			}
			handler := NewProcessingHandler(service)

			c, w := newTestContext("POST", "/processing/process/r-1/", strings.NewReader(tt.body), "application/json")
			c.Request.Header.Set(UserIDHeader, "alice")
			c.Params = gin.Params{gin.Param{Key: "id", Value: "r-1"}}

			handler.ProcessResource(c)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusAccepted {
				assert.Contains(t, w.Body.String(), `"status":"pending"`)
			}
		})
	}
}

func TestProcessingHandler_SubmitData(t *testing.T) {
	service := new(MockProcessingService)
	service.On("SubmitData", mock.Anything, "xml-validate", "alice", "doc.xml", mock.Anything).Return(testJob(), nil)
	handler := NewProcessingHandler(service)

	body, contentType := testutil.CreateMultipartBody(t, "file", "doc.xml", []byte("<a/>"), map[string]string{"service": "xml-validate"})
	c, w := newTestContext("POST", "/processing/data-transaction/", body, contentType)
	c.Request.Header.Set(UserIDHeader, "alice")

	handler.SubmitData(c)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), "job-1")
	service.AssertExpectations(t)
}

func TestProcessingHandler_SubmitData_MissingService(t *testing.T) {
	service := new(MockProcessingService)
	handler := NewProcessingHandler(service)

	body, contentType := testutil.CreateMultipartBody(t, "file", "doc.xml", []byte("<a/>"), nil)
	c, w := newTestContext("POST", "/processing/data-transaction/", body, contentType)

	handler.SubmitData(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "SubmitData", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessingHandler_Download(t *testing.T) {
	service := new(MockProcessingService)
	service.On("OpenResult", mock.Anything, "job-1", AnonymousUser).
		Return(io.NopCloser(strings.NewReader(`{"a":"1"}`)), "corpus.json", nil)
	service.On("OpenResult", mock.Anything, "job-2", AnonymousUser).
		Return(nil, "", processing.ErrResultNotReady)
	handler := NewProcessingHandler(service)

	c, w := newTestContext("GET", "/processing/download/job-1/", nil, "")
	c.Params = gin.Params{gin.Param{Key: "id", Value: "job-1"}}
	handler.Download(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="corpus.json"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, `{"a":"1"}`, w.Body.String())

	c, w = newTestContext("GET", "/processing/download/job-2/", nil, "")
	c.Params = gin.Params{gin.Param{Key: "id", Value: "job-2"}}
	handler.Download(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestProcessingHandler_GetJob(t *testing.T) {
	service := new(MockProcessingService)
	service.On("GetJob", mock.Anything, "job-1", "alice").Return(testJob(), nil)
	service.On("GetJob", mock.Anything, "job-1", AnonymousUser).Return(nil, processing.ErrJobNotFound)
	handler := NewProcessingHandler(service)

	c, w := newTestContext("GET", "/processing/jobs/job-1", nil, "")
	c.Request.Header.Set(UserIDHeader, "alice")
	c.Params = gin.Params{gin.Param{Key: "id", Value: "job-1"}}
	handler.GetJob(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"service":"metadata-json"`)

	c, w = newTestContext("GET", "/processing/jobs/job-1", nil, "")
	c.Params = gin.Params{gin.Param{Key: "id", Value: "job-1"}}
	handler.GetJob(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
