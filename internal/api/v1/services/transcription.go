package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	apierrors "meeting-scribe/internal/api/errors"
	"meeting-scribe/internal/api/v1/dto"
	"meeting-scribe/internal/app/asr"
	"meeting-scribe/internal/app/asr/whisperx"
	"meeting-scribe/internal/app/cache"
	"meeting-scribe/internal/app/conversation"
	"meeting-scribe/internal/app/metrics"
	"meeting-scribe/internal/app/model"
	"meeting-scribe/internal/app/summary"
	"meeting-scribe/internal/app/translate"
	"meeting-scribe/internal/config"
)

// transcriptionService runs the local pipeline: WhisperX transcription with
// diarization, optional translation, speaker-run merging, and an extractive
// summary. Heavyweight backends are memoised per configuration so repeated
// requests reuse loaded models.
type transcriptionService struct {
	settings     *config.Settings
	transcribers *cache.Registry[asr.Transcriber]
	translators  *cache.Registry[translate.Translator]
	summarizers  *cache.Registry[*summary.Service]
	collectors   *metrics.Collectors
	logger       *slog.Logger
}

// NewTranscriptionService creates the local-pipeline service with empty
// model caches.
func NewTranscriptionService(settings *config.Settings, collectors *metrics.Collectors, logger *slog.Logger) TranscriptionService {
	return &transcriptionService{
		settings:     settings,
		transcribers: cache.NewRegistry[asr.Transcriber](),
		translators:  cache.NewRegistry[translate.Translator](),
		summarizers:  cache.NewRegistry[*summary.Service](),
		collectors:   collectors,
		logger:       logger,
	}
}

func (s *transcriptionService) Transcribe(ctx context.Context, req *TranscribeRequest) (*dto.TranscriptionResponse, error) {
	if err := s.settings.RequireHFToken(); err != nil {
		s.count("config_error")
		return nil, apierrors.NewUnavailableError(err.Error())
	}

	transcriber, err := s.transcriber()
	if err != nil {
		s.count("config_error")
		return nil, apierrors.NewUnavailableError(err.Error())
	}

	transcript, err := transcriber.Transcribe(ctx, req.AudioPath)
	if err != nil {
		s.count("error")
		s.logger.Error("transcription failed", "file", req.FileName, "error", err)
		return nil, apierrors.NewInternalError("transcription failed")
	}

	labeled, _ := conversation.LabelSpeakers(transcript.Chunks)
	texts := lo.Map(labeled, func(chunk model.TranscriptChunk, _ int) string {
		return chunk.Text
	})

	var translations []string
	if req.Translate {
		translations = s.translator(req.TargetLang).
			TranslateSegments(ctx, texts, translate.ResolveLanguage(transcript.Language))
	}

	summarySource := strings.Join(texts, " ")
	if len(translations) == len(texts) && req.Translate {
		summarySource = strings.Join(translations, " ")
	}
	summarized := s.summarizer().Summarize(ctx, summarySource)

	s.count("ok")
	return &dto.TranscriptionResponse{
		FileName:   req.FileName,
		Language:   transcript.Language,
		Translated: req.Translate,
		Transcript: lo.Map(labeled, func(chunk model.TranscriptChunk, i int) dto.TranscriptSegment {
			segment := dto.TranscriptSegment{
				Start:   chunk.Start,
				End:     chunk.End,
				Speaker: chunk.Speaker,
				Text:    chunk.Text,
			}
			if len(translations) == len(labeled) {
				segment.TranslatedText = &translations[i]
			}
			return segment
		}),
		Conversation: toConversationDTO(conversation.MergeRuns(labeled, translations)),
		Summary: dto.SummaryPayload{
			Sentences: summarized.KeyPoints,
			Keywords:  summarized.Keywords,
		},
	}, nil
}

func (s *transcriptionService) transcriber() (asr.Transcriber, error) {
	cfg := whisperx.Config{
		ModelSize:   s.settings.WhisperModelSize,
		ComputeType: s.settings.WhisperComputeType,
		MaxSpeakers: s.settings.MaxSpeakers,
		HFToken:     s.settings.HFToken,
		Python:      s.settings.PythonBin,
	}
	return s.transcribers.GetOrCreate(cfg.Key(), func() (asr.Transcriber, error) {
		s.logger.Info("loading transcription backend",
			"model_size", cfg.ModelSize, "compute_type", cfg.ComputeType)
		return whisperx.NewTranscriber(cfg)
	})
}

func (s *transcriptionService) translator(targetLang string) translate.Translator {
	if targetLang == "" {
		targetLang = s.settings.TranslatorTargetLang
	}
	candidate := translate.NewNLLB(s.settings.TranslatorModel, targetLang, s.settings.PythonBin, s.logger)
	translator, _ := s.translators.GetOrCreate(candidate.Key(), func() (translate.Translator, error) {
		return candidate, nil
	})
	return translator
}

func (s *transcriptionService) summarizer() *summary.Service {
	candidate := summary.NewService(
		s.settings.SummarySentences, s.settings.SummaryKeywords, s.settings.PythonBin, s.logger)
	summarizer, _ := s.summarizers.GetOrCreate(candidate.Key(), func() (*summary.Service, error) {
		return candidate, nil
	})
	return summarizer
}

func (s *transcriptionService) count(status string) {
	if s.collectors != nil {
		s.collectors.TranscribeRequests.WithLabelValues(status).Inc()
	}
}

func toConversationDTO(turns []model.ConversationTurn) []dto.ConversationTurn {
	return lo.Map(turns, func(turn model.ConversationTurn, _ int) dto.ConversationTurn {
		return dto.ConversationTurn{
			Speaker:        turn.Speaker,
			OriginalText:   turn.OriginalText,
			TranslatedText: turn.TranslatedText,
			Notes:          turn.Notes,
		}
	})
}
