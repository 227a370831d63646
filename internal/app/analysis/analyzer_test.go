package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meeting-scribe/internal/app/conversation"
)

// scriptedClient returns one canned payload per attempt and records the
// requests it received.
type scriptedClient struct {
	payloads []Payload
	err      error
	requests []Request
}

func (c *scriptedClient) RebuildConversation(_ context.Context, req Request) (Payload, error) {
	c.requests = append(c.requests, req)
	if c.err != nil {
		return Payload{}, c.err
	}
	idx := len(c.requests) - 1
	if idx >= len(c.payloads) {
		idx = len(c.payloads) - 1
	}
	return c.payloads[idx], nil
}

func fullPayload(transcript string) Payload {
	return Payload{
		Language: "zh",
		Summary: Summary{
			KeyPoints:   []string{"point one"},
			Keywords:    []string{"keyword"},
			ActionItems: []string{"follow up"},
		},
		Conversation: []RawTurn{
			{Speaker: "Speaker A", OriginalText: transcript, TranslatedText: "translated"},
		},
	}
}

func truncatedPayload(transcript string) Payload {
	runes := []rune(transcript)
	return Payload{
		Language: "zh",
		Conversation: []RawTurn{
			{Speaker: "Speaker A", OriginalText: string(runes[:len(runes)/3])},
		},
	}
}

const testTranscript = "今天的會議討論了預算與時程 大家同意下週五前提交各自的估算結果 並且由採購部門負責跟供應商確認報價"

func TestAnalyze_AcceptsExactCoverageOnFirstAttempt(t *testing.T) {
	client := &scriptedClient{payloads: []Payload{fullPayload(testTranscript)}}
	analyzer := NewAnalyzer(client, DefaultConfig(), nil)

	result, err := analyzer.Analyze(context.Background(), testTranscript, "English", "gpt-4o-mini")
	require.NoError(t, err)

	assert.Equal(t, OutcomeAccepted, result.Outcome)
	assert.Equal(t, 1, result.Attempts)
	assert.False(t, result.Analysis.ConversationFallback)
	assert.GreaterOrEqual(t, result.Analysis.CoverageRatio, 0.95)
	assert.GreaterOrEqual(t, result.Analysis.Similarity, 0.85)
	assert.Equal(t, []string{"point one"}, result.Analysis.SummaryPoints)
	assert.Equal(t, []string{"follow up"}, result.Analysis.ActionItems)
	require.Len(t, client.requests, 1)
	assert.Nil(t, client.requests[0].Feedback)
}

func TestAnalyze_TruncatedOutputFallsBackAfterThreeAttempts(t *testing.T) {
	client := &scriptedClient{payloads: []Payload{truncatedPayload(testTranscript)}}
	analyzer := NewAnalyzer(client, DefaultConfig(), nil)

	result, err := analyzer.Analyze(context.Background(), testTranscript, "English", "gpt-4o-mini")
	require.NoError(t, err)

	assert.Equal(t, OutcomeFallback, result.Outcome)
	assert.Equal(t, 3, result.Attempts)
	assert.Len(t, client.requests, 3)

	require.True(t, result.Analysis.ConversationFallback)
	require.Len(t, result.Analysis.Conversation, 1)
	turn := result.Analysis.Conversation[0]
	assert.Equal(t, strings.TrimSpace(testTranscript), turn.OriginalText)
	require.NotNil(t, turn.TranslatedText)
	assert.Equal(t, turn.OriginalText, *turn.TranslatedText)

	// The fallback turn reproduces the transcript verbatim.
	assert.Equal(t, 1.0, result.Analysis.CoverageRatio)
	assert.Equal(t, 1.0, result.Analysis.Similarity)
}

func TestAnalyze_RetriesCarryCorrectiveFeedback(t *testing.T) {
	client := &scriptedClient{payloads: []Payload{
		truncatedPayload(testTranscript),
		fullPayload(testTranscript),
	}}
	analyzer := NewAnalyzer(client, DefaultConfig(), nil)

	result, err := analyzer.Analyze(context.Background(), testTranscript, "English", "gpt-4o-mini")
	require.NoError(t, err)

	assert.Equal(t, OutcomeAccepted, result.Outcome)
	assert.Equal(t, 2, result.Attempts)
	require.Len(t, client.requests, 2)
	assert.Nil(t, client.requests[0].Feedback)
	require.NotNil(t, client.requests[1].Feedback)
	assert.Less(t, client.requests[1].Feedback.CoverageRatio, 0.95)
}

func TestAnalyze_EmptyConversationNeverAccepted(t *testing.T) {
	client := &scriptedClient{payloads: []Payload{{Language: "en"}}}
	analyzer := NewAnalyzer(client, DefaultConfig(), nil)

	result, err := analyzer.Analyze(context.Background(), "", "English", "gpt-4o-mini")
	require.NoError(t, err)

	// Empty transcript scores 1.0 on both axes, but an empty conversation
	// still falls through to the fallback turn.
	assert.Equal(t, OutcomeFallback, result.Outcome)
	assert.True(t, result.Analysis.ConversationFallback)
}

func TestAnalyze_TransportErrorAborts(t *testing.T) {
	client := &scriptedClient{err: errors.New("connection refused")}
	analyzer := NewAnalyzer(client, DefaultConfig(), nil)

	_, err := analyzer.Analyze(context.Background(), testTranscript, "English", "gpt-4o-mini")
	require.Error(t, err)
	assert.Len(t, client.requests, 1)
}

func TestAnalyze_ThresholdsAreConfigurable(t *testing.T) {
	cfg := Config{CoverageThreshold: 0.1, SimilarityThreshold: 0.1, MaxAttempts: 3}
	client := &scriptedClient{payloads: []Payload{truncatedPayload(testTranscript)}}
	analyzer := NewAnalyzer(client, cfg, nil)

	result, err := analyzer.Analyze(context.Background(), testTranscript, "English", "gpt-4o-mini")
	require.NoError(t, err)
	assert.Equal(t, OutcomeAccepted, result.Outcome)
	assert.Equal(t, 1, result.Attempts)
}

func TestSanitizeConversation(t *testing.T) {
	note := "  context  "
	empty := ""
	raw := []RawTurn{
		{Speaker: "", OriginalText: " hello ", TranslatedText: "", Notes: &note},
		{Speaker: "Bob", OriginalText: "hi", TranslatedText: "嗨", Notes: &empty},
	}

	turns := SanitizeConversation(raw)
	require.Len(t, turns, 2)

	assert.Equal(t, "Speaker A", turns[0].Speaker)
	assert.Equal(t, "hello", turns[0].OriginalText)
	require.NotNil(t, turns[0].TranslatedText)
	assert.Equal(t, "hello", *turns[0].TranslatedText)
	require.NotNil(t, turns[0].Notes)
	assert.Equal(t, "context", *turns[0].Notes)

	assert.Equal(t, "Bob", turns[1].Speaker)
	assert.Equal(t, "嗨", *turns[1].TranslatedText)
	assert.Nil(t, turns[1].Notes)
}

func TestParsePayload_InvalidJSONYieldsEmptyPayload(t *testing.T) {
	p := ParsePayload("not json at all")
	assert.Empty(t, p.Conversation)
	assert.Empty(t, p.Language)
}

func TestScoreMatchesScoreCoverage(t *testing.T) {
	// Guard against the analyzer diverging from the scoring helper.
	turns := SanitizeConversation(fullPayload(testTranscript).Conversation)
	m := conversation.ScoreCoverage(turns, testTranscript)
	assert.Equal(t, 1.0, m.CoverageRatio)
}
