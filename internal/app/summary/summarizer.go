package summary

import (
	"context"
	_ "embed"
	"encoding/json"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

//go:embed assets/textrank_summary.py
var helperScript []byte

// Payload holds the derived summary artefacts.
type Payload struct {
	KeyPoints []string `json:"key_points"`
	Keywords  []string `json:"keywords"`
}

// Service generates lightweight extractive summaries through a TextRank
// helper, degrading to a naive sentence split when the helper fails.
type Service struct {
	sentences int
	keywords  int
	python    string
	logger    *slog.Logger
}

// Key identifies this configuration in a model cache.
func (s *Service) Key() string {
	return strings.Join([]string{"summary", strconv.Itoa(s.sentences), strconv.Itoa(s.keywords)}, "/")
}

// NewService creates a summarizer targeting the given sentence and keyword
// budgets (floored at one each).
func NewService(sentences, keywords int, python string, logger *slog.Logger) *Service {
	if sentences < 1 {
		sentences = 1
	}
	if keywords < 1 {
		keywords = 1
	}
	if python == "" {
		python = "python3"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{sentences: sentences, keywords: keywords, python: python, logger: logger}
}

// Summarize extracts key sentences and keywords. Helper failure falls back
// to a naive sentence split plus a keyword-only helper run; if that also
// fails, the keyword list is empty. Never returns an error.
func (s *Service) Summarize(ctx context.Context, text string) Payload {
	cleaned := strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
	if cleaned == "" {
		return Payload{KeyPoints: []string{}, Keywords: []string{}}
	}

	payload, err := s.runHelper(ctx, cleaned, "summary")
	if err == nil {
		return payload
	}
	s.logger.Warn("summarization failed; using sentence-split fallback", "error", err)

	keyPoints := s.fallbackSentences(cleaned)
	keywords := []string{}
	if kw, err := s.runHelper(ctx, cleaned, "keywords"); err == nil {
		keywords = kw.Keywords
	}
	return Payload{KeyPoints: keyPoints, Keywords: keywords}
}

// sentenceDelimiters covers both full-width and half-width terminators.
var sentenceDelimiters = map[rune]bool{
	'。': true, '！': true, '？': true,
	'.': true, '!': true, '?': true,
}

func (s *Service) fallbackSentences(text string) []string {
	var segments []string
	var current []rune
	for _, r := range text {
		current = append(current, r)
		if sentenceDelimiters[r] {
			if segment := strings.TrimSpace(string(current)); segment != "" {
				segments = append(segments, segment)
			}
			current = current[:0]
		}
	}
	if segment := strings.TrimSpace(string(current)); segment != "" {
		segments = append(segments, segment)
	}
	if len(segments) == 0 {
		runes := []rune(text)
		if len(runes) > 80 {
			runes = runes[:80]
		}
		segments = []string{string(runes)}
	}
	if len(segments) > s.sentences {
		segments = segments[:s.sentences]
	}
	return segments
}

func (s *Service) runHelper(ctx context.Context, text, mode string) (Payload, error) {
	scriptPath := filepath.Join(os.TempDir(), "mscribe_textrank.py")
	if err := os.WriteFile(scriptPath, helperScript, 0o755); err != nil {
		return Payload{}, err
	}
	defer os.Remove(scriptPath)

	cmd := exec.CommandContext(ctx, s.python, scriptPath,
		"--mode", mode,
		"--sentences", strconv.Itoa(s.sentences),
		"--keywords", strconv.Itoa(s.keywords),
	)
	cmd.Stdin = strings.NewReader(text)
	out, err := cmd.Output()
	if err != nil {
		return Payload{}, err
	}

	var payload Payload
	if err := json.Unmarshal(out, &payload); err != nil {
		return Payload{}, err
	}
	if payload.KeyPoints == nil {
		payload.KeyPoints = []string{}
	}
	if payload.Keywords == nil {
		payload.Keywords = []string{}
	}
	return payload, nil
}
