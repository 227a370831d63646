package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"meeting-scribe/internal/api/v1/handlers"
	"meeting-scribe/internal/api/v1/services"
	"meeting-scribe/internal/app/storage"
	"meeting-scribe/internal/config"
)

// ServiceContainer holds all services needed by handlers. Archive may be
// nil when no object storage is configured.
type ServiceContainer struct {
	Settings             *config.Settings
	TranscriptionService services.TranscriptionService
	AnalysisService      services.AnalysisService
	ExportService        services.ExportService
	Archive              storage.AudioArchive
	Logger               *slog.Logger
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	transcriptionHandler := handlers.NewTranscriptionHandler(
		container.TranscriptionService, container.Settings, container.Archive, container.Logger)
	router.POST("/transcribe", transcriptionHandler.Transcribe)

	analysisHandler := handlers.NewAnalysisHandler(
		container.AnalysisService, container.Settings, container.Archive, container.Logger)
	analyses := router.Group("/analyses")
	{
		analyses.POST("", analysisHandler.Create)
		analyses.GET("", analysisHandler.List)
		analyses.GET("/:id", analysisHandler.Get)
	}

	if container.ExportService != nil {
		exportHandler := handlers.NewExportHandler(container.ExportService)
		analyses.GET("/:id/export", exportHandler.Export)
		router.GET("/exports/analyses", exportHandler.ExportExcel)
	}
}
