package asr

import (
	"context"

	"meeting-scribe/internal/app/model"
)

// Transcript bundles the detected language with the diarized chunks.
type Transcript struct {
	Language string
	Chunks   []model.TranscriptChunk
}

// Text concatenates chunk texts into the plain transcript.
func (t *Transcript) Text() string {
	out := ""
	for i, chunk := range t.Chunks {
		if i > 0 {
			out += " "
		}
		out += chunk.Text
	}
	return out
}

// Transcriber runs speech recognition over a local audio file.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*Transcript, error)
}
