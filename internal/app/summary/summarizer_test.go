package summary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenPython forces every helper invocation down the fallback path.
const brokenPython = "/nonexistent/python3"

func TestSummarize_EmptyInput(t *testing.T) {
	svc := NewService(4, 6, brokenPython, nil)

	payload := svc.Summarize(context.Background(), "   \n  ")

	assert.Empty(t, payload.KeyPoints)
	assert.Empty(t, payload.Keywords)
}

func TestSummarize_FallbackSplitsOnSentencePunctuation(t *testing.T) {
	svc := NewService(4, 6, brokenPython, nil)

	payload := svc.Summarize(context.Background(), "第一句。第二句！Third sentence? Fourth.")

	require.Len(t, payload.KeyPoints, 4)
	assert.Equal(t, "第一句。", payload.KeyPoints[0])
	assert.Equal(t, "第二句！", payload.KeyPoints[1])
	assert.Equal(t, "Third sentence?", payload.KeyPoints[2])
	assert.Equal(t, "Fourth.", payload.KeyPoints[3])
	// Keyword helper also fails, so the keyword list degrades to empty.
	assert.Empty(t, payload.Keywords)
}

func TestSummarize_FallbackTruncatesToSentenceBudget(t *testing.T) {
	svc := NewService(2, 6, brokenPython, nil)

	payload := svc.Summarize(context.Background(), "one. two. three. four.")

	require.Len(t, payload.KeyPoints, 2)
	assert.Equal(t, "one.", payload.KeyPoints[0])
	assert.Equal(t, "two.", payload.KeyPoints[1])
}

func TestSummarize_FallbackKeepsTrailingFragment(t *testing.T) {
	svc := NewService(4, 6, brokenPython, nil)

	payload := svc.Summarize(context.Background(), "完整的一句。沒有結尾的一句")

	require.Len(t, payload.KeyPoints, 2)
	assert.Equal(t, "沒有結尾的一句", payload.KeyPoints[1])
}

func TestSummarize_NoDelimitersTruncatesToEightyRunes(t *testing.T) {
	svc := NewService(4, 6, brokenPython, nil)

	long := ""
	for i := 0; i < 100; i++ {
		long += "字"
	}
	payload := svc.Summarize(context.Background(), long)

	require.Len(t, payload.KeyPoints, 1)
	assert.Len(t, []rune(payload.KeyPoints[0]), 80)
}

func TestNewService_FloorsBudgets(t *testing.T) {
	svc := NewService(0, -3, brokenPython, nil)
	assert.Equal(t, 1, svc.sentences)
	assert.Equal(t, 1, svc.keywords)
}
