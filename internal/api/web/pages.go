package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/hpusset/ELRI-sub001/internal/domain/resources"
	"github.com/hpusset/ELRI-sub001/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	languageCookie = "lang"
	homePageSize   = 50
)

// PageHandler renders the public HTML pages
type PageHandler interface {
	Home(ctx *gin.Context)
	Browse(ctx *gin.Context)
}

type pageHandler struct {
	templates       *template.Template
	metadataService resources.ResourceMetadataService
	processor       *ContextProcessor
	translator      *Translator
	logger          logger.Logger
}

// NewPageHandler parses the embedded templates and creates a PageHandler
func NewPageHandler(metadataService resources.ResourceMetadataService, processor *ContextProcessor, translator *Translator, logger logger.Logger) (PageHandler, error) {
	templates, err := template.New("pages").Funcs(baseFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &pageHandler{
		templates:       templates,
		metadataService: metadataService,
		processor:       processor,
		translator:      translator,
		logger:          logger,
	}, nil
}

func baseFuncs() template.FuncMap {
	return template.FuncMap{
		"pretty_quotes":      PrettyQuotes,
		"add_attribute":      AddAttribute,
		"links_target_blank": LinksTargetBlank,
		"url_valid":          URLValid,
		// replaced per request
		"trans":     func(key string) string { return key },
		"get_email": func(key string) string { return "" },
	}
}

// Home lists the published resources
func (handler *pageHandler) Home(ctx *gin.Context) {
	query := resources.NewResourceQuery()
	query.PublicationStatus = resources.StatusPublished
	query.SortBy = "resource_name"
	query.SortOrder = "asc"
	query.Limit = homePageSize

	published, err := handler.metadataService.List(ctx, query)
	if err != nil {
		handler.logger.Error("failed to list published resources", "error", err.Error())
		ctx.String(http.StatusInternalServerError, "internal server error")
		return
	}

	handler.render(ctx, http.StatusOK, "home.html", map[string]interface{}{"Resources": published})
}

// Browse shows one published resource
func (handler *pageHandler) Browse(ctx *gin.Context) {
	resourceID := ctx.Param("id")

	resource, err := handler.metadataService.GetByID(ctx, resourceID, userID(ctx))
	if err != nil {
		if errors.Is(err, resources.ErrNotFound) {
			ctx.String(http.StatusNotFound, "resource not found")
			return
		}
		handler.logger.Error("failed to load resource", "resource_id", resourceID, "error", err.Error())
		ctx.String(http.StatusInternalServerError, "internal server error")
		return
	}
	if !resource.IsPublished() {
		ctx.String(http.StatusNotFound, "resource not found")
		return
	}

	handler.render(ctx, http.StatusOK, "browse.html", map[string]interface{}{"Resource": resource})
}

func (handler *pageHandler) render(ctx *gin.Context, status int, name string, data map[string]interface{}) {
	lang := handler.language(ctx)

	page, err := handler.templates.Clone()
	if err != nil {
		handler.logger.Error("failed to clone templates", "error", err.Error())
		ctx.String(http.StatusInternalServerError, "internal server error")
		return
	}
	page.Funcs(template.FuncMap{
		"trans":     func(key string) string { return handler.translator.Translate(lang, key) },
		"get_email": handler.processor.Email,
	})

	values := handler.processor.Context(lang)
	for k, v := range data {
		values[k] = v
	}

	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, name, values); err != nil {
		handler.logger.Error("failed to render page", "template", name, "error", err.Error())
		ctx.String(http.StatusInternalServerError, "internal server error")
		return
	}
	ctx.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (handler *pageHandler) language(ctx *gin.Context) language.Tag {
	choice := ctx.Query(languageCookie)
	if choice == "" {
		choice, _ = ctx.Cookie(languageCookie)
	}
	return handler.translator.Negotiate(choice, ctx.GetHeader("Accept-Language"))
}

func userID(ctx *gin.Context) string {
	if id := ctx.GetHeader("X-User-ID"); id != "" {
		return id
	}
	return "anonymous"
}

// SetupRoutes registers the HTML pages
func SetupRoutes(r *gin.Engine, pages PageHandler) {
	r.GET("/", pages.Home)
	r.GET("/repository/browse/:id", pages.Browse)
}
