package v1

import (
	"net/http"

	"github.com/hpusset/ELRI-sub001/internal/domain/edelivery"

	"github.com/gin-gonic/gin"
)

// EDeliveryHandler defines the interface for handling e-Delivery ingestion
type EDeliveryHandler interface {
	Pull(ctx *gin.Context)
}

type eDeliveryHandler struct {
	ingestService edelivery.IngestService
}

// NewEDeliveryHandler creates a new EDeliveryHandler
func NewEDeliveryHandler(ingestService edelivery.IngestService) EDeliveryHandler {
	return &eDeliveryHandler{ingestService: ingestService}
}

// Pull ingests pending access point messages on behalf of the calling user
// @Summary Pull pending e-Delivery messages
// @Tags eDelivery
// @Produce json
// @Success 200 {object} edelivery.PullReport
// @Failure 500 {object} ErrorResponse
// @Router /edelivery/pull [post]
func (handler *eDeliveryHandler) Pull(ctx *gin.Context) {
	report, err := handler.ingestService.Pull(ctx, userID(ctx))
	if err != nil {
		abortWithError(ctx, err, http.StatusInternalServerError, "could not pull messages")
		return
	}
	ctx.JSON(http.StatusOK, report)
}
