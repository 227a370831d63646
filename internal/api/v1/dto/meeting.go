package dto

import (
	"time"

	"meeting-scribe/internal/app/model"
)

// TranscriptSegment is one diarized segment in API responses.
type TranscriptSegment struct {
	Start          float64 `json:"start"`
	End            float64 `json:"end"`
	Speaker        string  `json:"speaker"`
	Text           string  `json:"text"`
	TranslatedText *string `json:"translated_text,omitempty"`
}

// ConversationTurn is one merged utterance of the dialogue view.
type ConversationTurn struct {
	Speaker        string  `json:"speaker"`
	OriginalText   string  `json:"original_text"`
	TranslatedText *string `json:"translated_text,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// SummaryPayload carries the extractive summary artefacts.
type SummaryPayload struct {
	Sentences []string `json:"sentences"`
	Keywords  []string `json:"keywords"`
}

// TranscriptionResponse is the full result of the local pipeline.
type TranscriptionResponse struct {
	FileName     string              `json:"file_name"`
	Language     string              `json:"language"`
	Translated   bool                `json:"translated"`
	Transcript   []TranscriptSegment `json:"transcript"`
	Conversation []ConversationTurn  `json:"conversation"`
	Summary      SummaryPayload      `json:"summary"`
}

// AnalysisResponse is a completed model-driven meeting analysis.
type AnalysisResponse struct {
	ID                 int64                 `json:"id"`
	FileName           string                `json:"file_name"`
	Language           string                `json:"language"`
	TranscriptionModel string                `json:"transcription_model"`
	AnalysisModel      string                `json:"analysis_model"`
	TargetLanguage     string                `json:"target_language"`
	Outcome            string                `json:"outcome"`
	Attempts           int                   `json:"attempts"`
	Analysis           model.MeetingAnalysis `json:"analysis"`
	CreatedAt          time.Time             `json:"created_at"`
}

// AnalysisListItem is the compact row used by list endpoints.
type AnalysisListItem struct {
	ID            int64     `json:"id"`
	FileName      string    `json:"file_name"`
	Language      string    `json:"language"`
	AnalysisModel string    `json:"analysis_model"`
	CoverageRatio float64   `json:"coverage_ratio"`
	Similarity    float64   `json:"similarity"`
	Fallback      bool      `json:"fallback"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListAnalysesQuery bounds list pagination.
type ListAnalysesQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
}

// ExportQuery selects the export format for one analysis.
type ExportQuery struct {
	Format string `form:"format" binding:"omitempty,oneof=json docx xlsx"`
}
