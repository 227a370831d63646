package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"meeting-scribe/internal/api/middleware"
	"meeting-scribe/internal/api/v1/dto"
	"meeting-scribe/internal/api/v1/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves stored analyses in downloadable formats.
type ExportHandler struct {
	service services.ExportService
}

// NewExportHandler creates a new export handler.
func NewExportHandler(service services.ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Export handles GET /api/v1/analyses/:id/export?format=json|docx
func (h *ExportHandler) Export(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	var query dto.ExportQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	switch query.Format {
	case "xlsx":
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="analysis-%d.xlsx"`, id))
		c.Header("Content-Type", xlsxContentType)
		if err := h.service.ExportExcelRecord(c.Request.Context(), id, c.Writer); err != nil {
			middleware.HandleError(c, err)
			return
		}
	case "docx":
		path, cleanup, err := h.service.ExportDocx(c.Request.Context(), id)
		if err != nil {
			middleware.HandleError(c, err)
			return
		}
		defer cleanup()
		c.FileAttachment(path, filepath.Base(path))
	default:
		payload, name, err := h.service.ExportJSON(c.Request.Context(), id)
		if err != nil {
			middleware.HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
		c.Data(http.StatusOK, "application/json", payload)
	}
}

// ExportExcel handles GET /api/v1/exports/analyses
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	var query dto.ListAnalysesQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="analyses.xlsx"`)
	c.Header("Content-Type", xlsxContentType)
	if err := h.service.ExportExcel(c.Request.Context(), c.Writer, query.Limit); err != nil {
		middleware.HandleError(c, err)
		return
	}
}
