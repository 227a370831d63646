package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	s := Load()

	assert.Equal(t, "medium", s.WhisperModelSize)
	assert.Equal(t, "int8", s.WhisperComputeType)
	assert.Equal(t, "zho_Hant", s.TranslatorTargetLang)
	assert.Equal(t, 4, s.SummarySentences)
	assert.Equal(t, 6, s.SummaryKeywords)
	assert.Equal(t, 0.95, s.CoverageThreshold)
	assert.Equal(t, 0.85, s.SimilarityThreshold)
	assert.Equal(t, 3, s.MaxAnalysisAttempts)
	assert.Contains(t, s.AllowedExtensions, "wav")
	assert.Contains(t, s.AllowedExtensions, "ogg")
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_WHISPER_MODEL_SIZE", "large-v3")
	t.Setenv("APP_COVERAGE_THRESHOLD", "0.8")
	t.Setenv("APP_MAX_ANALYSIS_ATTEMPTS", "5")
	t.Setenv("APP_ALLOWED_EXTENSIONS", "WAV, flac")

	s := Load()

	assert.Equal(t, "large-v3", s.WhisperModelSize)
	assert.Equal(t, 0.8, s.CoverageThreshold)
	assert.Equal(t, 5, s.MaxAnalysisAttempts)
	assert.Equal(t, []string{"wav", "flac"}, s.AllowedExtensions)
}

func TestLoad_MalformedNumbersFallBack(t *testing.T) {
	t.Setenv("APP_SUMMARY_SENTENCES", "many")
	t.Setenv("APP_SIMILARITY_THRESHOLD", "high")

	s := Load()

	assert.Equal(t, 4, s.SummarySentences)
	assert.Equal(t, 0.85, s.SimilarityThreshold)
}

func TestExtensionAllowed(t *testing.T) {
	s := Load()

	assert.True(t, s.ExtensionAllowed("mp3"))
	assert.True(t, s.ExtensionAllowed("MP3"))
	assert.False(t, s.ExtensionAllowed("exe"))
	assert.False(t, s.ExtensionAllowed(""))
}

func TestRequireOpenAIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	require.Error(t, Load().RequireOpenAIKey())

	t.Setenv("OPENAI_API_KEY", "not-a-key")
	require.Error(t, Load().RequireOpenAIKey())

	t.Setenv("OPENAI_API_KEY", "sk-test-0123456789abcdef")
	require.NoError(t, Load().RequireOpenAIKey())
}

func TestRequireHFToken(t *testing.T) {
	t.Setenv("HF_TOKEN", "")
	require.Error(t, Load().RequireHFToken())

	t.Setenv("HF_TOKEN", "hf_token_value")
	require.NoError(t, Load().RequireHFToken())
}
