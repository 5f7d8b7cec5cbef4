package v1

import (
	"net/http"
	"strings"

	"github.com/hpusset/ELRI-sub001/internal/domain/langtags"

	"github.com/gin-gonic/gin"
)

// VariantSeparator joins variant descriptions in lookup responses
const VariantSeparator = "||"

// XHRHandler answers the language subtag lookups of the metadata editor
type XHRHandler interface {
	LangVariants(ctx *gin.Context)
	ScriptVariants(ctx *gin.Context)
	VariantVariants(ctx *gin.Context)
}

type xhrHandler struct {
	lookup langtags.VariantLookup
}

// NewXHRHandler creates a new XHRHandler
func NewXHRHandler(lookup langtags.VariantLookup) XHRHandler {
	return &xhrHandler{lookup: lookup}
}

func (handler *xhrHandler) LangVariants(ctx *gin.Context) {
	writeVariants(ctx, handler.lookup.LanguageVariants(ctx.PostForm("lang")))
}

func (handler *xhrHandler) ScriptVariants(ctx *gin.Context) {
	writeVariants(ctx, handler.lookup.ScriptVariants(ctx.PostForm("lang"), ctx.PostForm("script")))
}

func (handler *xhrHandler) VariantVariants(ctx *gin.Context) {
	writeVariants(ctx, handler.lookup.VariantVariants(ctx.PostForm("lang"), ctx.PostForm("variant")))
}

func writeVariants(ctx *gin.Context, variants []string) {
	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(strings.Join(variants, VariantSeparator)))
}
