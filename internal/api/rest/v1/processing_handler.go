package v1

import (
	"fmt"
	"io"
	"net/http"

	"github.com/hpusset/ELRI-sub001/internal/domain/processing"

	"github.com/gin-gonic/gin"
)

// ProcessingHandler defines the interface for handling processing area operations
type ProcessingHandler interface {
	ListServices(ctx *gin.Context)
	ProcessResource(ctx *gin.Context)
	SubmitData(ctx *gin.Context)
	Download(ctx *gin.Context)
	GetJob(ctx *gin.Context)
}

type processingHandler struct {
	processingService processing.ProcessingService
}

// NewProcessingHandler creates a new ProcessingHandler
func NewProcessingHandler(processingService processing.ProcessingService) ProcessingHandler {
	return &processingHandler{processingService: processingService}
}

// ListServices returns the registered processing services
func (handler *processingHandler) ListServices(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, handler.processingService.Services())
}

// ProcessResource handles the POST request queueing a service run on a stored resource
// @Summary Process a stored resource
// @Tags Processing
// @Accept json
// @Produce json
// @Param id path string true "Resource ID"
// @Param requestBody body ProcessRequest true "Service to run"
// @Success 202 {object} JobResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /processing/process/{id}/ [post]
func (handler *processingHandler) ProcessResource(ctx *gin.Context) {
	resourceID := ctx.Param("id")

	var request ProcessRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid processing request: %v", err)})
		return
	}
	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	job, err := handler.processingService.ProcessResource(ctx, request.Service, resourceID, userID(ctx))
	if err != nil {
		abortWithError(ctx, err, http.StatusInternalServerError, "could not queue job")
		return
	}

	ctx.JSON(http.StatusAccepted, newJobResponse(job))
}

// SubmitData handles the POST request queueing a service run on an uploaded file
// @Summary Process an uploaded file
// @Tags Processing
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Input file"
// @Param service formData string true "Service to run"
// @Success 202 {object} JobResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /processing/data-transaction/ [post]
func (handler *processingHandler) SubmitData(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid form data: missing file"})
		return
	}

	request := ProcessRequest{Service: ctx.PostForm("service")}
	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("could not read file: %v", err)})
		return
	}
	defer file.Close()

	job, err := handler.processingService.SubmitData(ctx, request.Service, userID(ctx), fileHeader.Filename, file)
	if err != nil {
		abortWithError(ctx, err, http.StatusInternalServerError, "could not queue job")
		return
	}

	ctx.JSON(http.StatusAccepted, newJobResponse(job))
}

// Download streams the result file of a succeeded job
func (handler *processingHandler) Download(ctx *gin.Context) {
	jobID := ctx.Param("id")

	result, name, err := handler.processingService.OpenResult(ctx, jobID, userID(ctx))
	if err != nil {
		abortWithError(ctx, err, http.StatusInternalServerError, fmt.Sprintf("could not download result of job %s", jobID))
		return
	}
	defer result.Close()

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	ctx.Header("Content-Type", "application/octet-stream")
	ctx.Status(http.StatusOK)
	if _, err := io.Copy(ctx.Writer, result); err != nil {
		_ = ctx.Error(err)
	}
}

// GetJob returns the state of a job of the calling user
func (handler *processingHandler) GetJob(ctx *gin.Context) {
	jobID := ctx.Param("id")

	job, err := handler.processingService.GetJob(ctx, jobID, userID(ctx))
	if err != nil {
		abortWithError(ctx, err, http.StatusInternalServerError, fmt.Sprintf("could not get job %s", jobID))
		return
	}

	ctx.JSON(http.StatusOK, newJobResponse(job))
}
