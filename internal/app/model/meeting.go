package model

import "time"

// TranscriptChunk is a single diarized segment produced by an ASR backend.
// Chunks are immutable once created; the conversation formatter consumes
// them in order.
type TranscriptChunk struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Speaker string  `json:"speaker,omitempty"`
}

// ConversationTurn is one merged utterance in the dialogue view. It is
// produced either by merging consecutive same-speaker chunks or by the
// analysis model's structured output.
type ConversationTurn struct {
	Speaker        string  `json:"speaker"`
	OriginalText   string  `json:"original_text"`
	TranslatedText *string `json:"translated_text,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// MeetingAnalysis aggregates everything derived from one recording. Built
// once per request.
type MeetingAnalysis struct {
	Language             string             `json:"language"`
	Transcript           string             `json:"transcript"`
	SummaryPoints        []string           `json:"summary_points"`
	Keywords             []string           `json:"keywords"`
	ActionItems          []string           `json:"action_items"`
	Conversation         []ConversationTurn `json:"conversation"`
	CoverageRatio        float64            `json:"coverage_ratio"`
	Similarity           float64            `json:"similarity"`
	ConversationFallback bool               `json:"conversation_fallback"`
}

// AnalysisRecord is the persisted form of a completed meeting analysis.
type AnalysisRecord struct {
	ID                 int64     `json:"id"`
	FileName           string    `json:"file_name"`
	Language           string    `json:"language"`
	TranscriptionModel string    `json:"transcription_model"`
	AnalysisModel      string    `json:"analysis_model"`
	TargetLanguage     string    `json:"target_language"`
	Transcript         string    `json:"transcript"`
	Payload            string    `json:"payload"`
	CoverageRatio      float64   `json:"coverage_ratio"`
	Similarity         float64   `json:"similarity"`
	Fallback           bool      `json:"fallback"`
	CreatedAt          time.Time `json:"created_at"`
}
