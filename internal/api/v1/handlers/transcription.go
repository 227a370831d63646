package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"meeting-scribe/internal/api/middleware"
	"meeting-scribe/internal/api/v1/services"
	"meeting-scribe/internal/app/storage"
	"meeting-scribe/internal/config"
)

// TranscriptionHandler exposes the local WhisperX pipeline.
type TranscriptionHandler struct {
	service  services.TranscriptionService
	settings *config.Settings
	archive  storage.AudioArchive
	logger   *slog.Logger
}

// NewTranscriptionHandler creates a new transcription handler. A nil
// archive disables recording archival.
func NewTranscriptionHandler(service services.TranscriptionService, settings *config.Settings, archive storage.AudioArchive, logger *slog.Logger) *TranscriptionHandler {
	return &TranscriptionHandler{service: service, settings: settings, archive: archive, logger: logger}
}

// Transcribe handles POST /api/v1/transcribe. Accepts a multipart upload
// with optional translate and target_lang fields.
func (h *TranscriptionHandler) Transcribe(c *gin.Context) {
	path, file, cleanup, err := stageUpload(c, h.settings)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	defer cleanup()

	archiveUpload(c, h.archive, file, h.logger)

	translate, _ := strconv.ParseBool(c.PostForm("translate"))
	response, err := h.service.Transcribe(c.Request.Context(), &services.TranscribeRequest{
		AudioPath:  path,
		FileName:   file.Filename,
		Translate:  translate,
		TargetLang: c.PostForm("target_language"),
	})
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
