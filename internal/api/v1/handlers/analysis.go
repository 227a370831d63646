package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"meeting-scribe/internal/api/errors"
	"meeting-scribe/internal/api/middleware"
	"meeting-scribe/internal/api/v1/dto"
	"meeting-scribe/internal/api/v1/services"
	"meeting-scribe/internal/app/storage"
	"meeting-scribe/internal/config"
)

// AnalysisHandler exposes the model-driven analysis pipeline and its
// stored results.
type AnalysisHandler struct {
	service  services.AnalysisService
	settings *config.Settings
	archive  storage.AudioArchive
	logger   *slog.Logger
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(service services.AnalysisService, settings *config.Settings, archive storage.AudioArchive, logger *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{service: service, settings: settings, archive: archive, logger: logger}
}

// Create handles POST /api/v1/analyses. Accepts a multipart upload with
// optional target_language, transcription_model, analysis_model, and
// backend fields.
func (h *AnalysisHandler) Create(c *gin.Context) {
	path, file, cleanup, err := stageUpload(c, h.settings)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	defer cleanup()

	archiveUpload(c, h.archive, file, h.logger)

	response, err := h.service.Analyze(c.Request.Context(), &services.AnalyzeRequest{
		AudioPath:          path,
		FileName:           file.Filename,
		TargetLanguage:     c.PostForm("target_language"),
		TranscriptionModel: c.PostForm("transcription_model"),
		AnalysisModel:      c.PostForm("analysis_model"),
		Backend:            c.PostForm("backend"),
		LanguageHint:       c.PostForm("language_hint"),
	})
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Get handles GET /api/v1/analyses/:id
func (h *AnalysisHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// List handles GET /api/v1/analyses
func (h *AnalysisHandler) List(c *gin.Context) {
	var query dto.ListAnalysesQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	items, err := h.service.List(c.Request.Context(), query.Limit)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Header("X-Total-Count", strconv.Itoa(len(items)))
	c.JSON(http.StatusOK, gin.H{"analyses": items})
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewBadRequestError("invalid analysis ID")
	}
	return id, nil
}
