package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"meeting-scribe/internal/app/conversation"
	"meeting-scribe/internal/app/model"
)

// Client issues one structured-rewrite request against an analysis model.
// Implementations exist for OpenAI chat completions and Gemini.
type Client interface {
	RebuildConversation(ctx context.Context, req Request) (Payload, error)
}

// Request carries one attempt's worth of context for the analysis model.
// Feedback is nil on the first attempt and holds the previous attempt's
// metrics on retries.
type Request struct {
	Transcript     string
	TargetLanguage string
	Model          string
	Feedback       *conversation.Metrics
}

// Config bounds the verification loop. The thresholds are heuristics with
// no stated derivation, so they stay configurable rather than hard-coded.
type Config struct {
	CoverageThreshold   float64
	SimilarityThreshold float64
	MaxAttempts         int
}

// DefaultConfig mirrors the shipped acceptance thresholds.
func DefaultConfig() Config {
	return Config{
		CoverageThreshold:   0.95,
		SimilarityThreshold: 0.85,
		MaxAttempts:         3,
	}
}

// Outcome is the terminal state of the verification loop.
type Outcome string

const (
	// OutcomeAccepted means an attempt passed the coverage and similarity
	// thresholds.
	OutcomeAccepted Outcome = "accepted"
	// OutcomeFallback means every attempt failed and the single-turn
	// fallback was applied.
	OutcomeFallback Outcome = "fallback"
)

// Result is the typed outcome of one full analysis run.
type Result struct {
	Analysis model.MeetingAnalysis
	Outcome  Outcome
	Attempts int
}

// Analyzer drives the bounded retry loop: request a structured rewrite,
// verify coverage and similarity, retry with corrective feedback, and fall
// back to a single untranslated block when retries exhaust. Low coverage is
// a recoverable condition, never a request failure.
type Analyzer struct {
	client Client
	cfg    Config
	logger *slog.Logger
}

// NewAnalyzer wires a client to a loop configuration.
func NewAnalyzer(client Client, cfg Config, logger *slog.Logger) *Analyzer {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{client: client, cfg: cfg, logger: logger}
}

// Analyze rebuilds the transcript into a verified conversation. Transport
// errors from the client abort the run; verification failures do not.
func (a *Analyzer) Analyze(ctx context.Context, transcript, targetLanguage, modelName string) (*Result, error) {
	req := Request{
		Transcript:     transcript,
		TargetLanguage: targetLanguage,
		Model:          modelName,
	}

	var (
		payload model.MeetingAnalysis
		metrics conversation.Metrics
		last    Payload
	)

	for attempt := 1; attempt <= a.cfg.MaxAttempts; attempt++ {
		raw, err := a.client.RebuildConversation(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("analysis attempt %d: %w", attempt, err)
		}
		last = raw

		turns := SanitizeConversation(raw.Conversation)
		metrics = conversation.ScoreCoverage(turns, transcript)

		if a.accepted(turns, metrics) {
			payload = buildAnalysis(raw, transcript, turns, metrics, false)
			return &Result{Analysis: payload, Outcome: OutcomeAccepted, Attempts: attempt}, nil
		}

		a.logger.Warn("conversation failed verification",
			"attempt", attempt,
			"coverage_ratio", metrics.CoverageRatio,
			"similarity", metrics.Similarity,
		)
		feedback := metrics
		req.Feedback = &feedback
	}

	turns := FallbackConversation(transcript)
	metrics = conversation.ScoreCoverage(turns, transcript)
	payload = buildAnalysis(last, transcript, turns, metrics, true)
	return &Result{Analysis: payload, Outcome: OutcomeFallback, Attempts: a.cfg.MaxAttempts}, nil
}

func (a *Analyzer) accepted(turns []model.ConversationTurn, m conversation.Metrics) bool {
	return len(turns) > 0 &&
		m.CoverageRatio >= a.cfg.CoverageThreshold &&
		m.Similarity >= a.cfg.SimilarityThreshold
}

func buildAnalysis(raw Payload, transcript string, turns []model.ConversationTurn, m conversation.Metrics, fallback bool) model.MeetingAnalysis {
	language := raw.Language
	if language == "" {
		language = "unknown"
	}
	return model.MeetingAnalysis{
		Language:             language,
		Transcript:           transcript,
		SummaryPoints:        ensureStrings(raw.Summary.KeyPoints),
		Keywords:             ensureStrings(raw.Summary.Keywords),
		ActionItems:          ensureStrings(raw.Summary.ActionItems),
		Conversation:         turns,
		CoverageRatio:        m.CoverageRatio,
		Similarity:           m.Similarity,
		ConversationFallback: fallback,
	}
}
