package v1

import (
	"github.com/hpusset/ELRI-sub001/internal/domain/edelivery"
	"github.com/hpusset/ELRI-sub001/internal/domain/langtags"
	"github.com/hpusset/ELRI-sub001/internal/domain/processing"
	"github.com/hpusset/ELRI-sub001/internal/domain/resources"
	"github.com/hpusset/ELRI-sub001/internal/domain/stats"
	"github.com/hpusset/ELRI-sub001/internal/domain/tm"

	"github.com/gin-gonic/gin"
)

// Services bundles the application services behind the API. TM and EDelivery
// are optional; their routes are only registered when set.
type Services struct {
	Submission resources.ResourceSubmissionService
	Metadata   resources.ResourceMetadataService
	Export     resources.ResourceExportService
	Processing processing.ProcessingService
	Stats      stats.StatsService
	Variants   langtags.VariantLookup
	TM         tm.TMService
	EDelivery  edelivery.IngestService
}

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine, services *Services) {
	v1 := r.Group(BasePath) // lookup in version file

	// Repository Routes
	resourceHandler := NewResourceHandler(services.Submission, services.Metadata, services.Export, services.Stats)
	v1.POST("/repository/resources", resourceHandler.Upload)
	v1.GET("/repository/resources", resourceHandler.List)
	v1.POST("/repository/resources/import", resourceHandler.Import)
	v1.GET("/repository/resources/:id", resourceHandler.GetByID)
	v1.PATCH("/repository/resources/:id/status", resourceHandler.UpdateStatus)
	v1.DELETE("/repository/resources/:id", resourceHandler.DeleteByID)
	v1.GET("/repository/resources/:id/export", resourceHandler.Export)

	// Processing Routes
	processingHandler := NewProcessingHandler(services.Processing)
	v1.GET("/processing/", processingHandler.ListServices)
	v1.POST("/processing/process/:id/", processingHandler.ProcessResource)
	v1.POST("/processing/data-transaction/", processingHandler.SubmitData)
	v1.GET("/processing/download/:id/", processingHandler.Download)
	v1.GET("/processing/jobs/:id", processingHandler.GetJob)

	// Statistics Routes
	statsHandler := NewStatsHandler(services.Stats)
	v1.GET("/stats/top/", statsHandler.Top)
	v1.GET("/stats/mystats/", statsHandler.MyStats)
	v1.GET("/stats/usage/", statsHandler.Usage)
	v1.GET("/stats/charts/:kind", statsHandler.Chart)
	v1.GET("/stats/days", statsHandler.Days)
	v1.GET("/stats/get", statsHandler.Summary)
	v1.GET("/stats/getlrstats", statsHandler.ResourceStats)

	if services.TM != nil {
		tmHandler := NewTMHandler(services.TM)
		v1.POST("/tm/documents", tmHandler.AddDocument)
		v1.GET("/tm/units", tmHandler.Units)
	}

	if services.EDelivery != nil {
		eDeliveryHandler := NewEDeliveryHandler(services.EDelivery)
		v1.POST("/edelivery/pull", eDeliveryHandler.Pull)
	}

	// Editor lookups
	xhr := r.Group(XHRPath)
	xhrHandler := NewXHRHandler(services.Variants)
	xhr.POST("/lang_variants", xhrHandler.LangVariants)
	xhr.POST("/script_variants", xhrHandler.ScriptVariants)
	xhr.POST("/variant_variants", xhrHandler.VariantVariants)
}
