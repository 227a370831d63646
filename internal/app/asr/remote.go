package asr

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"meeting-scribe/internal/app/model"
)

// RemoteTranscriber implements remote transcription using the OpenAI audio
// API. Segment timestamps come back only from whisper-1 (verbose JSON); the
// gpt-4o transcribe models return plain text, which becomes a single chunk.
type RemoteTranscriber struct {
	client       *openai.Client
	model        string
	languageHint string
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client, modelName, languageHint string) *RemoteTranscriber {
	if modelName == "" {
		modelName = openai.Whisper1
	}
	return &RemoteTranscriber{client: client, model: modelName, languageHint: languageHint}
}

// Transcribe uses the OpenAI API for remote transcription.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, audioPath string) (*Transcript, error) {
	req := openai.AudioRequest{
		Model:    rt.model,
		FilePath: audioPath,
		Language: rt.languageHint,
	}
	if rt.model == openai.Whisper1 {
		req.Format = openai.AudioResponseFormatVerboseJSON
	}

	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("createTranscription failed: %w", err)
	}

	language := resp.Language
	if language == "" {
		language = "unknown"
	}

	var chunks []model.TranscriptChunk
	for _, segment := range resp.Segments {
		if segment.Text == "" {
			continue
		}
		chunks = append(chunks, model.TranscriptChunk{
			Start: segment.Start,
			End:   segment.End,
			Text:  segment.Text,
		})
	}
	if len(chunks) == 0 && resp.Text != "" {
		chunks = append(chunks, model.TranscriptChunk{Text: resp.Text})
	}

	return &Transcript{Language: language, Chunks: chunks}, nil
}
