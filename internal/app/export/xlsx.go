package export

import (
	"fmt"
	"io"
	"time"

	"github.com/tealeg/xlsx"

	"meeting-scribe/internal/app/model"
)

// ToExcel writes stored analyses as a spreadsheet, one row per analysis.
func ToExcel(records []model.AnalysisRecord, w io.Writer) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Analyses")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "ID"
	headerRow.AddCell().Value = "File"
	headerRow.AddCell().Value = "Language"
	headerRow.AddCell().Value = "Transcription Model"
	headerRow.AddCell().Value = "Analysis Model"
	headerRow.AddCell().Value = "Coverage"
	headerRow.AddCell().Value = "Similarity"
	headerRow.AddCell().Value = "Fallback"
	headerRow.AddCell().Value = "Created At"
	headerRow.AddCell().Value = "Transcript"

	for _, record := range records {
		row := sheet.AddRow()
		row.AddCell().Value = fmt.Sprint(record.ID)
		row.AddCell().Value = record.FileName
		row.AddCell().Value = record.Language
		row.AddCell().Value = record.TranscriptionModel
		row.AddCell().Value = record.AnalysisModel
		row.AddCell().Value = fmt.Sprintf("%.2f", record.CoverageRatio)
		row.AddCell().Value = fmt.Sprintf("%.2f", record.Similarity)
		row.AddCell().Value = fmt.Sprint(record.Fallback)
		row.AddCell().Value = record.CreatedAt.Format(time.RFC3339)
		row.AddCell().Value = record.Transcript
	}

	return file.Write(w)
}
