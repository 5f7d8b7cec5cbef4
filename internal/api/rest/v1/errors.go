package v1

import (
	"errors"
	"net/http"

	"github.com/hpusset/ELRI-sub001/internal/domain/processing"
	"github.com/hpusset/ELRI-sub001/internal/domain/resources"
	"github.com/hpusset/ELRI-sub001/internal/domain/tm"

	"github.com/gin-gonic/gin"
)

// UserIDHeader carries the id of the calling user
const UserIDHeader = "X-User-ID"

// AnonymousUser is used when a request carries no user id
const AnonymousUser = "anonymous"

func userID(ctx *gin.Context) string {
	if id := ctx.GetHeader(UserIDHeader); id != "" {
		return id
	}
	return AnonymousUser
}

// statusFor maps domain errors to HTTP status codes. Unknown errors get fallback.
func statusFor(err error, fallback int) int {
	switch {
	case errors.Is(err, resources.ErrNotFound), errors.Is(err, processing.ErrJobNotFound):
		return http.StatusNotFound
	case errors.Is(err, resources.ErrInvalidTransition),
		errors.Is(err, resources.ErrInvalidMetadata),
		errors.Is(err, processing.ErrUnknownService),
		errors.Is(err, processing.ErrUnsupportedInput),
		errors.Is(err, tm.ErrInvalidTMX),
		errors.Is(err, tm.ErrInvalidLanguage):
		return http.StatusBadRequest
	case errors.Is(err, processing.ErrResultNotReady):
		return http.StatusConflict
	case errors.Is(err, processing.ErrQueueFull):
		return http.StatusServiceUnavailable
	}
	return fallback
}

func abortWithError(ctx *gin.Context, err error, fallback int, message string) {
	ctx.JSON(statusFor(err, fallback), ErrorResponse{Message: message + ": " + err.Error()})
}
