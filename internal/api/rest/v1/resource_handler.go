package v1

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hpusset/ELRI-sub001/internal/domain/resources"
	"github.com/hpusset/ELRI-sub001/internal/domain/stats"
	"github.com/hpusset/ELRI-sub001/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

const maxMetadataSize = 10 << 20

// ResourceHandler defines the interface for handling repository operations
type ResourceHandler interface {
	Upload(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	UpdateStatus(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
	Export(ctx *gin.Context)
	Import(ctx *gin.Context)
}

type resourceHandler struct {
	submissionService resources.ResourceSubmissionService
	metadataService   resources.ResourceMetadataService
	exportService     resources.ResourceExportService
	statsService      stats.StatsService
}

// NewResourceHandler creates a new ResourceHandler. Searches are recorded through statsService.
func NewResourceHandler(submissionService resources.ResourceSubmissionService, metadataService resources.ResourceMetadataService, exportService resources.ResourceExportService, statsService stats.StatsService) ResourceHandler {
	return &resourceHandler{
		submissionService: submissionService,
		metadataService:   metadataService,
		exportService:     exportService,
		statsService:      statsService,
	}
}

// Upload handles the POST request storing a metadata XML file as a new resource
// @Summary Upload a metadata record
// @Description Store an XML metadata document sent as multipart field "file" under the name in "resource_name".
// @Tags Repository
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Metadata XML"
// @Param resource_name formData string true "Resource name"
// @Param description formData string false "Description"
// @Param status formData string false "Initial publication status"
// @Success 201 {object} ResourceResponse
// @Failure 400 {object} ErrorResponse
// @Router /repository/resources [post]
func (handler *resourceHandler) Upload(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid form data: missing file"})
		return
	}

	resourceName := ctx.PostForm("resource_name")
	if resourceName == "" {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid form data: missing resource_name"})
		return
	}

	var status resources.PublicationStatus
	if raw := ctx.PostForm("status"); raw != "" {
		status, err = resources.ParsePublicationStatus(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
			return
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("could not read file: %v", err)})
		return
	}
	defer file.Close()

	document, err := io.ReadAll(io.LimitReader(file, maxMetadataSize))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("could not read file: %v", err)})
		return
	}

	resource, err := handler.submissionService.Submit(ctx, &resources.SubmissionRequest{
		ResourceName: resourceName,
		Description:  ctx.PostForm("description"),
		MetadataXML:  document,
		OwnerID:      userID(ctx),
		Status:       status,
	})
	if err != nil {
		abortWithError(ctx, err, http.StatusBadRequest, "error uploading resource")
		return
	}

	ctx.JSON(http.StatusCreated, newResourceResponse(resource))
}

// List handles the GET request listing resources with optional filters
// @Summary List resource records
// @Tags Repository
// @Produce json
// @Param resource_name query string false "Name contains"
// @Param status query string false "Publication status code or label"
// @Param owner query string false "Owner id"
// @Param source query string false "upload, edelivery or import"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} ResourceResponse
// @Failure 400 {object} ErrorResponse
// @Router /repository/resources [get]
func (handler *resourceHandler) List(ctx *gin.Context) {
	query := resources.NewResourceQuery()

	if resourceName := ctx.Query("resource_name"); len(resourceName) > 0 {
		query.ResourceName = resourceName
	}

	if status := ctx.Query("status"); len(status) > 0 {
		parsed, err := resources.ParsePublicationStatus(status)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("validation failed: %v", err)})
			return
		}
		query.PublicationStatus = parsed
	}

	if owner := ctx.Query("owner"); len(owner) > 0 {
		query.OwnerID = owner
	}

	if source := ctx.Query("source"); len(source) > 0 {
		query.Source = source
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = strutil.ConvertToInt(limit)
	}

	if offset := ctx.Query("offset"); len(offset) > 0 {
		query.Offset = strutil.ConvertToInt(offset)
	}

	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}

	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	if err := query.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	started := time.Now()
	resourceMetas, err := handler.metadataService.List(ctx, query)
	if err != nil {
		abortWithError(ctx, err, http.StatusInternalServerError, "list query failed")
		return
	}
	handler.recordQuery(ctx, query, len(resourceMetas), time.Since(started))

	listResponse := []ResourceResponse{}
	for _, resource := range resourceMetas {
		listResponse = append(listResponse, newResourceResponse(resource))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// recordQuery stores the search in the query statistics. A failure is attached
// to the gin context and does not change the response.
func (handler *resourceHandler) recordQuery(ctx *gin.Context, query *resources.ResourceQuery, found int, elapsed time.Duration) {
	facets := url.Values{}
	if query.PublicationStatus != "" {
		facets.Set("status", query.PublicationStatus.Label())
	}
	if query.OwnerID != "" {
		facets.Set("owner", query.OwnerID)
	}
	if query.Source != "" {
		facets.Set("source", query.Source)
	}

	err := handler.statsService.RecordQuery(ctx, &stats.QueryStat{
		Query:      query.ResourceName,
		Facets:     facets.Encode(),
		Found:      int64(found),
		ExecTimeMs: elapsed.Milliseconds(),
	})
	if err != nil {
		_ = ctx.Error(err)
	}
}

// GetByID handles the GET request for one resource record
// @Summary Retrieve a resource record by ID
// @Tags Repository
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} ResourceResponse
// @Failure 404 {object} ErrorResponse
// @Router /repository/resources/{id} [get]
func (handler *resourceHandler) GetByID(ctx *gin.Context) {
	resourceID := ctx.Param("id")

	resource, err := handler.metadataService.GetByID(ctx, resourceID, userID(ctx))
	if err != nil {
		abortWithError(ctx, err, http.StatusInternalServerError, fmt.Sprintf("could not get resource %s", resourceID))
		return
	}

	ctx.JSON(http.StatusOK, newResourceResponse(resource))
}

// UpdateStatus handles the PATCH request changing the publication status
// @Summary Change the publication status of a resource
// @Tags Repository
// @Accept json
// @Produce json
// @Param id path string true "Resource ID"
// @Param requestBody body UpdateStatusRequest true "New status"
// @Success 200 {object} ResourceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /repository/resources/{id}/status [patch]
func (handler *resourceHandler) UpdateStatus(ctx *gin.Context) {
	resourceID := ctx.Param("id")

	var request UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid status data: %v", err)})
		return
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	status, err := resources.ParsePublicationStatus(request.Status)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	resource, err := handler.metadataService.UpdateStatus(ctx, resourceID, userID(ctx), status)
	if err != nil {
		abortWithError(ctx, err, http.StatusInternalServerError, fmt.Sprintf("could not update resource %s", resourceID))
		return
	}

	ctx.JSON(http.StatusOK, newResourceResponse(resource))
}

// DeleteByID handles the DELETE request for a resource record
// @Summary Delete a resource record by ID
// @Tags Repository
// @Param id path string true "Resource ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /repository/resources/{id} [delete]
func (handler *resourceHandler) DeleteByID(ctx *gin.Context) {
	resourceID := ctx.Param("id")

	if err := handler.metadataService.DeleteByID(ctx, resourceID, userID(ctx)); err != nil {
		abortWithError(ctx, err, http.StatusInternalServerError, fmt.Sprintf("error deleting resource %s", resourceID))
		return
	}

	ctx.Status(http.StatusNoContent)
	ctx.Writer.WriteHeaderNow()
}

// Export handles the GET request downloading the metadata document as XML or JSON
// @Summary Export a metadata record
// @Tags Repository
// @Produce application/xml,application/json
// @Param id path string true "Resource ID"
// @Param format query string false "xml (default) or json"
// @Success 200 {file} file "Metadata document"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /repository/resources/{id}/export [get]
func (handler *resourceHandler) Export(ctx *gin.Context) {
	resourceID := ctx.Param("id")

	var (
		document    []byte
		contentType string
		err         error
	)
	format := ctx.DefaultQuery("format", "xml")
	switch format {
	case "xml":
		document, err = handler.exportService.ExportXML(ctx, resourceID, userID(ctx))
		contentType = "application/xml; charset=utf-8"
	case "json":
		document, err = handler.exportService.ExportJSON(ctx, resourceID, userID(ctx))
		contentType = "application/json; charset=utf-8"
	default:
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("unsupported export format %q", format)})
		return
	}
	if err != nil {
		abortWithError(ctx, err, http.StatusInternalServerError, fmt.Sprintf("could not export resource %s", resourceID))
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.%s", resourceID, format))
	ctx.Data(http.StatusOK, contentType, document)
}

// Import handles the POST request creating a resource from a JSON metadata document
// @Summary Import a JSON metadata record
// @Tags Repository
// @Accept json
// @Produce json
// @Param resource_name query string true "Resource name"
// @Success 201 {object} ResourceResponse
// @Failure 400 {object} ErrorResponse
// @Router /repository/resources/import [post]
func (handler *resourceHandler) Import(ctx *gin.Context) {
	resourceName := ctx.Query("resource_name")
	if resourceName == "" {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "missing resource_name"})
		return
	}

	document, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxMetadataSize))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("could not read body: %v", err)})
		return
	}

	resource, err := handler.exportService.ImportJSON(ctx, resourceName, userID(ctx), document)
	if err != nil {
		abortWithError(ctx, err, http.StatusBadRequest, "error importing resource")
		return
	}

	ctx.JSON(http.StatusCreated, newResourceResponse(resource))
}
