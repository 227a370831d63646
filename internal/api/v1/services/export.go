package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	apierrors "meeting-scribe/internal/api/errors"
	"meeting-scribe/internal/app/export"
	"meeting-scribe/internal/app/model"
	"meeting-scribe/internal/app/repository"
)

// exportService renders stored analyses as JSON, Word minutes, or an Excel
// sheet of recent runs.
type exportService struct {
	dao repository.AnalysisDAO
}

// NewExportService creates an export service over the analysis store.
func NewExportService(dao repository.AnalysisDAO) ExportService {
	return &exportService{dao: dao}
}

// ExportJSON returns the stored payload bytes and a download file name.
func (s *exportService) ExportJSON(ctx context.Context, id int64) ([]byte, string, error) {
	record, err := s.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return []byte(record.Payload), exportName(record, "json"), nil
}

// ExportDocx writes the meeting minutes to a temp file and returns its path
// together with a cleanup func the caller runs after streaming.
func (s *exportService) ExportDocx(ctx context.Context, id int64) (string, func(), error) {
	record, err := s.load(ctx, id)
	if err != nil {
		return "", nil, err
	}

	var stored model.MeetingAnalysis
	if err := json.Unmarshal([]byte(record.Payload), &stored); err != nil {
		return "", nil, apierrors.NewInternalError("decode stored analysis")
	}

	dir, err := os.MkdirTemp("", "mscribe-export-")
	if err != nil {
		return "", nil, apierrors.NewInternalError("create export workspace")
	}
	cleanup := func() { os.RemoveAll(dir) }

	path := filepath.Join(dir, exportName(record, "docx"))
	if err := export.WriteDocx(stored, record.FileName, path); err != nil {
		cleanup()
		return "", nil, apierrors.NewInternalError("render document")
	}
	return path, cleanup, nil
}

// ExportExcelRecord streams one analysis as a single-row spreadsheet.
func (s *exportService) ExportExcelRecord(ctx context.Context, id int64, w io.Writer) error {
	record, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := export.ToExcel([]model.AnalysisRecord{*record}, w); err != nil {
		return apierrors.NewInternalError("render spreadsheet")
	}
	return nil
}

// ExportExcel streams recent analyses as a spreadsheet.
func (s *exportService) ExportExcel(ctx context.Context, w io.Writer, limit int) error {
	records, err := s.dao.FindRecent(ctx, limit)
	if err != nil {
		return apierrors.NewInternalError("list analyses")
	}
	if err := export.ToExcel(records, w); err != nil {
		return apierrors.NewInternalError("render spreadsheet")
	}
	return nil
}

func (s *exportService) load(ctx context.Context, id int64) (*model.AnalysisRecord, error) {
	record, err := s.dao.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierrors.NewNotFoundError("analysis")
		}
		return nil, apierrors.NewInternalError("load analysis")
	}
	return record, nil
}

func exportName(record *model.AnalysisRecord, ext string) string {
	return fmt.Sprintf("analysis-%d.%s", record.ID, ext)
}
