package services

import (
	"context"
	"io"

	"meeting-scribe/internal/api/v1/dto"
)

// TranscribeRequest describes one local-pipeline run over an uploaded file
// already staged on disk.
type TranscribeRequest struct {
	AudioPath  string
	FileName   string
	Translate  bool
	TargetLang string
}

// AnalyzeRequest describes one model-driven analysis of an uploaded file.
// Empty fields fall back to configured defaults.
type AnalyzeRequest struct {
	AudioPath          string
	FileName           string
	TargetLanguage     string
	TranscriptionModel string
	AnalysisModel      string
	Backend            string
	LanguageHint       string
}

// TranscriptionService runs the local WhisperX pipeline.
type TranscriptionService interface {
	Transcribe(ctx context.Context, req *TranscribeRequest) (*dto.TranscriptionResponse, error)
}

// AnalysisService runs the verified model rewrite and persists results.
type AnalysisService interface {
	Analyze(ctx context.Context, req *AnalyzeRequest) (*dto.AnalysisResponse, error)
	Get(ctx context.Context, id int64) (*dto.AnalysisResponse, error)
	List(ctx context.Context, limit int) ([]dto.AnalysisListItem, error)
}

// ExportService renders stored analyses in downloadable formats.
type ExportService interface {
	ExportJSON(ctx context.Context, id int64) ([]byte, string, error)
	ExportDocx(ctx context.Context, id int64) (string, func(), error)
	ExportExcelRecord(ctx context.Context, id int64, w io.Writer) error
	ExportExcel(ctx context.Context, w io.Writer, limit int) error
}
