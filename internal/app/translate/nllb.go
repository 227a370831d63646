package translate

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

//go:embed assets/nllb_translate.py
var helperScript []byte

// NLLB translates through a Python helper wrapping an open-source NMT model
// (NLLB-200 by default). The helper keeps the model loaded only for one
// batch; per-configuration instances are memoised by the caller.
type NLLB struct {
	modelName  string
	targetLang string
	python     string
	logger     *slog.Logger
}

// Key identifies this configuration in a model cache.
func (t *NLLB) Key() string {
	return strings.Join([]string{"nllb", t.modelName, t.targetLang}, "/")
}

// NewNLLB creates a translator for one model/target-language pair.
func NewNLLB(modelName, targetLang, python string, logger *slog.Logger) *NLLB {
	if python == "" {
		python = "python3"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NLLB{modelName: modelName, targetLang: targetLang, python: python, logger: logger}
}

type helperRequest struct {
	Model      string   `json:"model"`
	TargetLang string   `json:"target_lang"`
	SourceLang string   `json:"source_lang,omitempty"`
	Segments   []string `json:"segments"`
}

type helperResponse struct {
	Translations []string `json:"translations"`
}

// TranslateSegments translates each segment, returning originals untouched
// whenever the helper fails or returns a short batch.
func (t *NLLB) TranslateSegments(ctx context.Context, segments []string, sourceLang string) []string {
	if len(segments) == 0 {
		return nil
	}

	translations, err := t.runHelper(ctx, segments, ResolveLanguage(sourceLang))
	if err != nil {
		t.logger.Warn("translation failed; returning original text", "error", err)
		return segments
	}

	out := make([]string, len(segments))
	for i := range segments {
		if i < len(translations) && strings.TrimSpace(translations[i]) != "" {
			out[i] = translations[i]
		} else {
			out[i] = segments[i]
		}
	}
	return out
}

func (t *NLLB) runHelper(ctx context.Context, segments []string, sourceLang string) ([]string, error) {
	scriptPath := filepath.Join(os.TempDir(), "mscribe_nllb.py")
	if err := os.WriteFile(scriptPath, helperScript, 0o755); err != nil {
		return nil, err
	}
	defer os.Remove(scriptPath)

	payload, err := json.Marshal(helperRequest{
		Model:      t.modelName,
		TargetLang: t.targetLang,
		SourceLang: sourceLang,
		Segments:   segments,
	})
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, t.python, scriptPath)
	cmd.Stdin = bytes.NewReader(payload)
	out, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	var resp helperResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		return nil, err
	}
	return resp.Translations, nil
}
