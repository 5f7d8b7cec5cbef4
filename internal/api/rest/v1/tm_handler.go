package v1

import (
	"fmt"
	"io"
	"net/http"

	"github.com/hpusset/ELRI-sub001/internal/domain/tm"
	"github.com/hpusset/ELRI-sub001/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

const maxTMXSize = 64 << 20

// TMHandler defines the interface for handling translation memory operations
type TMHandler interface {
	AddDocument(ctx *gin.Context)
	Units(ctx *gin.Context)
}

type tmHandler struct {
	tmService tm.TMService
}

// NewTMHandler creates a new TMHandler
func NewTMHandler(tmService tm.TMService) TMHandler {
	return &tmHandler{tmService: tmService}
}

// AddDocument handles the POST request storing a TMX file
// @Summary Add a TMX document to the translation memory
// @Tags TM
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "TMX file"
// @Success 201 {object} tm.Document
// @Failure 400 {object} ErrorResponse
// @Router /tm/documents [post]
func (handler *tmHandler) AddDocument(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid form data: missing file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("could not read file: %v", err)})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxTMXSize))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("could not read file: %v", err)})
		return
	}

	document, err := handler.tmService.AddDocument(ctx, fileHeader.Filename, data)
	if err != nil {
		abortWithError(ctx, err, http.StatusInternalServerError, "could not store TMX document")
		return
	}

	ctx.JSON(http.StatusCreated, document)
}

// Units returns translation units for the src and tgt language query parameters
func (handler *tmHandler) Units(ctx *gin.Context) {
	src, tgt := ctx.Query("src"), ctx.Query("tgt")
	if src == "" || tgt == "" {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "src and tgt are required"})
		return
	}

	units, err := handler.tmService.Units(ctx, src, tgt, strutil.ConvertToInt(ctx.Query("limit")))
	if err != nil {
		abortWithError(ctx, err, http.StatusInternalServerError, "could not query translation units")
		return
	}
	if units == nil {
		units = []*tm.TranslationUnit{}
	}

	ctx.JSON(http.StatusOK, units)
}
