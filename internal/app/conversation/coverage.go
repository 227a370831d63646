package conversation

import (
	"math"
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"

	"meeting-scribe/internal/app/model"
)

// Metrics scores how faithfully a candidate conversation reproduces the
// source transcript.
type Metrics struct {
	CoverageRatio float64 `json:"coverage_ratio"`
	Similarity    float64 `json:"similarity"`
}

// NormalizeForComparison drops punctuation, separators and control runes so
// that re-punctuated or re-wrapped text still compares equal.
func NormalizeForComparison(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.In(r, unicode.P, unicode.Z, unicode.C) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ScoreCoverage computes the coverage ratio (normalized length fraction,
// capped at 1.0) and the edit-similarity ratio between the transcript and
// the concatenated original texts of the candidate turns. An empty
// transcript scores 1.0 on both axes.
func ScoreCoverage(turns []model.ConversationTurn, transcript string) Metrics {
	var joined strings.Builder
	for _, turn := range turns {
		joined.WriteString(turn.OriginalText)
	}

	transcriptNorm := NormalizeForComparison(transcript)
	conversationNorm := NormalizeForComparison(joined.String())

	if transcriptNorm == "" {
		return Metrics{CoverageRatio: 1.0, Similarity: 1.0}
	}

	coverage := math.Min(
		float64(len([]rune(conversationNorm)))/float64(len([]rune(transcriptNorm))),
		1.0,
	)

	similarity := 0.0
	if conversationNorm != "" {
		similarity = similarityRatio(transcriptNorm, conversationNorm)
	}
	return Metrics{CoverageRatio: coverage, Similarity: similarity}
}

// similarityRatio is difflib's longest-matching-blocks ratio computed over
// individual runes.
func similarityRatio(a, b string) float64 {
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}
