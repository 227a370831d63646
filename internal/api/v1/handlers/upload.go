package handlers

import (
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"meeting-scribe/internal/api/errors"
	"meeting-scribe/internal/app/storage"
	"meeting-scribe/internal/config"
)

// stageUpload validates the uploaded audio file and writes it to a scoped
// temp directory. The returned cleanup removes the staged copy and runs on
// every path, success or failure.
func stageUpload(c *gin.Context, settings *config.Settings) (string, *multipart.FileHeader, func(), error) {
	file, err := c.FormFile("file")
	if err != nil {
		return "", nil, nil, errors.NewBadRequestError("missing file upload")
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(file.Filename)), ".")
	if ext == "" {
		return "", nil, nil, errors.NewBadRequestError("uploaded file has no extension")
	}
	if !settings.ExtensionAllowed(ext) {
		return "", nil, nil, errors.NewUnsupportedMediaError(ext, settings.AllowedExtensions)
	}

	dir, err := os.MkdirTemp("", "mscribe-upload-")
	if err != nil {
		return "", nil, nil, errors.NewInternalError("stage upload")
	}
	cleanup := func() { os.RemoveAll(dir) }

	path := filepath.Join(dir, filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		cleanup()
		return "", nil, nil, errors.NewInternalError("stage upload")
	}
	return path, file, cleanup, nil
}

// archiveUpload stores the original recording when an archive is
// configured. Archiving is best effort and never fails the request.
func archiveUpload(c *gin.Context, archive storage.AudioArchive, file *multipart.FileHeader, logger *slog.Logger) {
	if archive == nil {
		return
	}
	src, err := file.Open()
	if err != nil {
		logger.Warn("archive skipped", "file", file.Filename, "error", err)
		return
	}
	defer src.Close()

	key, err := archive.Store(c.Request.Context(), src, file.Size,
		file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		logger.Warn("archive failed", "file", file.Filename, "error", err)
		return
	}
	logger.Info("recording archived", "file", file.Filename, "key", key)
}
