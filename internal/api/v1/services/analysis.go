package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	apierrors "meeting-scribe/internal/api/errors"
	"meeting-scribe/internal/api/v1/dto"
	"meeting-scribe/internal/app/analysis"
	"meeting-scribe/internal/app/asr"
	"meeting-scribe/internal/app/metrics"
	"meeting-scribe/internal/app/model"
	"meeting-scribe/internal/app/repository"
	"meeting-scribe/internal/config"
)

// analysisService transcribes through the OpenAI audio API, rebuilds the
// transcript into a verified conversation, and persists the result.
type analysisService struct {
	settings   *config.Settings
	dao        repository.AnalysisDAO
	collectors *metrics.Collectors
	logger     *slog.Logger
}

// NewAnalysisService wires the model-driven pipeline to its store.
func NewAnalysisService(settings *config.Settings, dao repository.AnalysisDAO, collectors *metrics.Collectors, logger *slog.Logger) AnalysisService {
	return &analysisService{settings: settings, dao: dao, collectors: collectors, logger: logger}
}

func (s *analysisService) Analyze(ctx context.Context, req *AnalyzeRequest) (*dto.AnalysisResponse, error) {
	if err := s.settings.RequireOpenAIKey(); err != nil {
		return nil, apierrors.NewUnavailableError(err.Error())
	}
	s.applyDefaults(req)

	openaiClient := openai.NewClient(s.settings.OpenAIKey)

	transcript, err := asr.NewRemoteTranscriber(openaiClient, req.TranscriptionModel, req.LanguageHint).
		Transcribe(ctx, req.AudioPath)
	if err != nil {
		s.logger.Error("remote transcription failed", "file", req.FileName, "error", err)
		return nil, apierrors.NewInternalError("transcription failed")
	}

	text := strings.TrimSpace(transcript.Text())
	if text == "" {
		return nil, apierrors.NewBadRequestError("no speech recognized in upload")
	}

	client, err := s.analysisClient(ctx, req.Backend, openaiClient)
	if err != nil {
		return nil, err
	}
	analyzer := analysis.NewAnalyzer(client, analysis.Config{
		CoverageThreshold:   s.settings.CoverageThreshold,
		SimilarityThreshold: s.settings.SimilarityThreshold,
		MaxAttempts:         s.settings.MaxAnalysisAttempts,
	}, s.logger)

	var timer *prometheus.Timer
	if s.collectors != nil {
		timer = prometheus.NewTimer(s.collectors.AnalysisDuration)
	}
	result, err := analyzer.Analyze(ctx, text, req.TargetLanguage, req.AnalysisModel)
	if timer != nil {
		timer.ObserveDuration()
	}
	if err != nil {
		s.logger.Error("analysis failed", "file", req.FileName, "error", err)
		return nil, apierrors.NewInternalError("analysis failed")
	}
	s.observe(result)

	payload, err := json.Marshal(result.Analysis)
	if err != nil {
		return nil, apierrors.NewInternalError("encode analysis payload")
	}

	record := &model.AnalysisRecord{
		FileName:           req.FileName,
		Language:           result.Analysis.Language,
		TranscriptionModel: req.TranscriptionModel,
		AnalysisModel:      req.AnalysisModel,
		TargetLanguage:     req.TargetLanguage,
		Transcript:         text,
		Payload:            string(payload),
		CoverageRatio:      result.Analysis.CoverageRatio,
		Similarity:         result.Analysis.Similarity,
		Fallback:           result.Outcome == analysis.OutcomeFallback,
	}
	if _, err := s.dao.Save(ctx, record); err != nil {
		s.logger.Error("persist analysis failed", "file", req.FileName, "error", err)
		return nil, apierrors.NewInternalError("persist analysis")
	}

	return &dto.AnalysisResponse{
		ID:                 record.ID,
		FileName:           record.FileName,
		Language:           record.Language,
		TranscriptionModel: record.TranscriptionModel,
		AnalysisModel:      record.AnalysisModel,
		TargetLanguage:     record.TargetLanguage,
		Outcome:            string(result.Outcome),
		Attempts:           result.Attempts,
		Analysis:           result.Analysis,
		CreatedAt:          record.CreatedAt,
	}, nil
}

func (s *analysisService) Get(ctx context.Context, id int64) (*dto.AnalysisResponse, error) {
	record, err := s.dao.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierrors.NewNotFoundError("analysis")
		}
		return nil, apierrors.NewInternalError("load analysis")
	}

	var stored model.MeetingAnalysis
	if err := json.Unmarshal([]byte(record.Payload), &stored); err != nil {
		return nil, apierrors.NewInternalError("decode stored analysis")
	}

	outcome := string(analysis.OutcomeAccepted)
	if record.Fallback {
		outcome = string(analysis.OutcomeFallback)
	}
	return &dto.AnalysisResponse{
		ID:                 record.ID,
		FileName:           record.FileName,
		Language:           record.Language,
		TranscriptionModel: record.TranscriptionModel,
		AnalysisModel:      record.AnalysisModel,
		TargetLanguage:     record.TargetLanguage,
		Outcome:            outcome,
		Analysis:           stored,
		CreatedAt:          record.CreatedAt,
	}, nil
}

func (s *analysisService) List(ctx context.Context, limit int) ([]dto.AnalysisListItem, error) {
	records, err := s.dao.FindRecent(ctx, limit)
	if err != nil {
		return nil, apierrors.NewInternalError("list analyses")
	}
	return lo.Map(records, func(record model.AnalysisRecord, _ int) dto.AnalysisListItem {
		return dto.AnalysisListItem{
			ID:            record.ID,
			FileName:      record.FileName,
			Language:      record.Language,
			AnalysisModel: record.AnalysisModel,
			CoverageRatio: record.CoverageRatio,
			Similarity:    record.Similarity,
			Fallback:      record.Fallback,
			CreatedAt:     record.CreatedAt,
		}
	}), nil
}

func (s *analysisService) applyDefaults(req *AnalyzeRequest) {
	if req.TargetLanguage == "" {
		req.TargetLanguage = s.settings.TargetLanguage
	}
	if req.TranscriptionModel == "" {
		req.TranscriptionModel = s.settings.TranscriptionModel
	}
	if req.AnalysisModel == "" {
		req.AnalysisModel = s.settings.AnalysisModel
	}
	if req.Backend == "" {
		req.Backend = s.settings.AnalysisBackend
	}
}

func (s *analysisService) analysisClient(ctx context.Context, backend string, openaiClient *openai.Client) (analysis.Client, error) {
	switch backend {
	case "gemini":
		if err := s.settings.RequireGeminiKey(); err != nil {
			return nil, apierrors.NewUnavailableError(err.Error())
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  s.settings.GeminiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, apierrors.NewUnavailableError("gemini client: " + err.Error())
		}
		return analysis.NewGeminiClient(client), nil
	case "", "openai":
		return analysis.NewOpenAIClient(openaiClient), nil
	default:
		return nil, apierrors.NewBadRequestError("unknown analysis backend " + backend)
	}
}

func (s *analysisService) observe(result *analysis.Result) {
	if s.collectors == nil {
		return
	}
	s.collectors.AnalysisAttempts.Add(float64(result.Attempts))
	if result.Outcome == analysis.OutcomeFallback {
		s.collectors.AnalysisFallbacks.Inc()
	}
}
