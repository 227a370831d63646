package whisperx

import (
	"context"
	"encoding/json"
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"meeting-scribe/internal/app/asr"
	"meeting-scribe/internal/app/model"
)

//go:embed assets/whisperx_helper.py
var helperScript []byte

// Config selects the WhisperX model and diarization behavior. Distinct
// configurations load distinct model instances, so callers memoise
// transcribers per configuration.
type Config struct {
	ModelSize   string
	ComputeType string
	MaxSpeakers int
	HFToken     string
	Python      string
}

// Key identifies this configuration in a model cache.
func (c Config) Key() string {
	return strings.Join([]string{"whisperx", c.ModelSize, c.ComputeType, strconv.Itoa(c.MaxSpeakers)}, "/")
}

// Transcriber shells out to a Python helper that runs WhisperX: ASR,
// optional alignment, and pyannote diarization.
type Transcriber struct {
	cfg Config
}

// NewTranscriber validates the configuration. Diarization needs a Hugging
// Face token; a missing token is a configuration error, not a degrade path.
func NewTranscriber(cfg Config) (*Transcriber, error) {
	if cfg.HFToken == "" {
		return nil, fmt.Errorf("speaker diarization requires a Hugging Face token; set HF_TOKEN")
	}
	if cfg.ModelSize == "" {
		cfg.ModelSize = "medium"
	}
	if cfg.ComputeType == "" {
		cfg.ComputeType = "int8"
	}
	if cfg.Python == "" {
		cfg.Python = "python3"
	}
	return &Transcriber{cfg: cfg}, nil
}

type helperOutput struct {
	Language string `json:"language"`
	Diarized bool   `json:"diarized"`
	Segments []struct {
		Start   float64 `json:"start"`
		End     float64 `json:"end"`
		Text    string  `json:"text"`
		Speaker string  `json:"speaker"`
	} `json:"segments"`
}

// Transcribe runs the helper and converts its JSON output into chunks.
// Chunks without recognized text are dropped; chunks the helper could not
// attribute keep an empty speaker and share the default label downstream.
func (t *Transcriber) Transcribe(ctx context.Context, audioPath string) (*asr.Transcript, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return nil, fmt.Errorf("audio file: %w", err)
	}

	scriptPath := filepath.Join(os.TempDir(), "mscribe_whisperx.py")
	if err := os.WriteFile(scriptPath, helperScript, 0o755); err != nil {
		return nil, fmt.Errorf("write helper script: %w", err)
	}
	defer os.Remove(scriptPath)

	args := []string{
		scriptPath,
		"--audio", audioPath,
		"--model", t.cfg.ModelSize,
		"--compute-type", t.cfg.ComputeType,
	}
	if t.cfg.MaxSpeakers > 0 {
		args = append(args, "--max-speakers", strconv.Itoa(t.cfg.MaxSpeakers))
	}

	cmd := exec.CommandContext(ctx, t.cfg.Python, args...)
	cmd.Env = append(os.Environ(), "HF_TOKEN="+t.cfg.HFToken)

	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("whisperx helper failed: %s", strings.TrimSpace(string(ee.Stderr)))
		}
		return nil, fmt.Errorf("whisperx helper failed: %w", err)
	}

	var parsed helperOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return nil, fmt.Errorf("parse helper output: %w", err)
	}

	language := parsed.Language
	if language == "" {
		language = "unknown"
	}

	var chunks []model.TranscriptChunk
	for _, segment := range parsed.Segments {
		text := strings.TrimSpace(segment.Text)
		if text == "" {
			continue
		}
		chunks = append(chunks, model.TranscriptChunk{
			Start:   segment.Start,
			End:     segment.End,
			Text:    text,
			Speaker: segment.Speaker,
		})
	}

	return &asr.Transcript{Language: language, Chunks: chunks}, nil
}
