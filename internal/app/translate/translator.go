package translate

import (
	"context"
	"strings"
)

// Translator converts recognized text into the configured target language.
// Implementations degrade rather than fail: a segment that cannot be
// translated comes back unchanged.
type Translator interface {
	TranslateSegments(ctx context.Context, segments []string, sourceLang string) []string
}

// languageCodeMap maps Whisper language tags to NLLB language codes.
var languageCodeMap = map[string]string{
	"zh":     "zho_Hant",
	"zh-cn":  "zho_Hans",
	"zh_tw":  "zho_Hant",
	"yue":    "yue_Hant",
	"en":     "eng_Latn",
	"nan":    "nan_Latn",
	"nan-tw": "nan_Latn",
}

// ResolveLanguage maps a detected language tag to its NLLB code, passing
// unknown tags through unchanged.
func ResolveLanguage(detected string) string {
	if detected == "" {
		return ""
	}
	normalized := strings.ToLower(detected)
	if code, ok := languageCodeMap[normalized]; ok {
		return code
	}
	return normalized
}

// Noop returns every segment untranslated. Used when translation is
// disabled for a request.
type Noop struct{}

func (Noop) TranslateSegments(_ context.Context, segments []string, _ string) []string {
	return segments
}
