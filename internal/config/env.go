package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings holds the runtime configuration, sourced from APP_-prefixed
// environment variables with defaults matching the shipped behavior.
type Settings struct {
	Host        string
	Port        string
	Environment string

	WhisperModelSize   string
	WhisperComputeType string
	MaxSpeakers        int
	HFToken            string

	TranslatorModel      string
	TranslatorTargetLang string

	SummarySentences int
	SummaryKeywords  int

	AllowedExtensions []string

	TranscriptionModel string
	AnalysisModel      string
	AnalysisBackend    string
	TargetLanguage     string

	CoverageThreshold   float64
	SimilarityThreshold float64
	MaxAnalysisAttempts int

	OpenAIKey string
	GeminiKey string

	PythonBin string
	DBPath    string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

// LoadEnv loads environment variables from a .env file if one exists.
// Absence is not an error; variables may be set system-wide.
func LoadEnv() error {
	envPaths := []string{".env", ".env.local", "../.env", "../../.env"}
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}
	return nil
}

// Load reads settings from the environment.
func Load() *Settings {
	return &Settings{
		Host:        getEnv("APP_HOST", "0.0.0.0"),
		Port:        getEnv("APP_PORT", "8000"),
		Environment: getEnv("APP_ENV", "development"),

		WhisperModelSize:   getEnv("APP_WHISPER_MODEL_SIZE", "medium"),
		WhisperComputeType: getEnv("APP_WHISPER_COMPUTE_TYPE", "int8"),
		MaxSpeakers:        getEnvInt("APP_MAX_SPEAKERS", 0),
		HFToken:            strings.TrimSpace(os.Getenv("HF_TOKEN")),

		TranslatorModel:      getEnv("APP_TRANSLATOR_MODEL", "facebook/nllb-200-distilled-600M"),
		TranslatorTargetLang: getEnv("APP_TRANSLATOR_TARGET_LANG", "zho_Hant"),

		SummarySentences: getEnvInt("APP_SUMMARY_SENTENCES", 4),
		SummaryKeywords:  getEnvInt("APP_SUMMARY_KEYWORDS", 6),

		AllowedExtensions: getEnvList("APP_ALLOWED_EXTENSIONS", []string{"wav", "mp3", "m4a", "aac", "flac", "ogg"}),

		TranscriptionModel: getEnv("APP_TRANSCRIPTION_MODEL", "whisper-1"),
		AnalysisModel:      getEnv("APP_ANALYSIS_MODEL", "gpt-4o-mini"),
		AnalysisBackend:    getEnv("APP_ANALYSIS_BACKEND", "openai"),
		TargetLanguage:     getEnv("APP_TARGET_LANGUAGE", "Traditional Chinese"),

		CoverageThreshold:   getEnvFloat("APP_COVERAGE_THRESHOLD", 0.95),
		SimilarityThreshold: getEnvFloat("APP_SIMILARITY_THRESHOLD", 0.85),
		MaxAnalysisAttempts: getEnvInt("APP_MAX_ANALYSIS_ATTEMPTS", 3),

		OpenAIKey: strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		GeminiKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),

		PythonBin: getEnv("APP_PYTHON_BIN", "python3"),
		DBPath:    getEnv("APP_DB_PATH", "data/analyses.db"),

		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:    getEnv("MINIO_BUCKET", "mscribe-audio"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
	}
}

// RequireOpenAIKey fails fast for operations that call the OpenAI API.
func (s *Settings) RequireOpenAIKey() error {
	if s.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY must be set for remote transcription and analysis")
	}
	if !strings.HasPrefix(s.OpenAIKey, "sk-") {
		return fmt.Errorf("invalid OPENAI_API_KEY format: must start with 'sk-'")
	}
	return nil
}

// RequireGeminiKey fails fast when the Gemini analysis backend is selected.
func (s *Settings) RequireGeminiKey() error {
	if s.GeminiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY must be set for the gemini analysis backend")
	}
	return nil
}

// RequireHFToken fails fast for operations that run speaker diarization.
func (s *Settings) RequireHFToken() error {
	if s.HFToken == "" {
		return fmt.Errorf("speaker diarization requires a Hugging Face token; set HF_TOKEN")
	}
	return nil
}

// ExtensionAllowed reports whether ext (without dot) passes the allow-list.
func (s *Settings) ExtensionAllowed(ext string) bool {
	ext = strings.ToLower(ext)
	for _, allowed := range s.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.ToLower(strings.TrimSpace(item)); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
