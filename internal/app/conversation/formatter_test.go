package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meeting-scribe/internal/app/model"
)

func chunk(start, end float64, text, speaker string) model.TranscriptChunk {
	return model.TranscriptChunk{Start: start, End: end, Text: text, Speaker: speaker}
}

func TestLabelSpeakers_AssignsIncrementalLabels(t *testing.T) {
	chunks := []model.TranscriptChunk{
		chunk(0, 1, "你好", "SPEAKER_00"),
		chunk(1, 2, "大家好", "SPEAKER_01"),
		chunk(2, 3, "很高興見到你", "SPEAKER_00"),
	}

	relabeled, mapping := LabelSpeakers(chunks)

	assert.Equal(t, map[string]string{
		"SPEAKER_00": "Speaker A",
		"SPEAKER_01": "Speaker B",
	}, mapping)
	assert.Equal(t, "Speaker A", relabeled[0].Speaker)
	assert.Equal(t, "Speaker B", relabeled[1].Speaker)
	assert.Equal(t, "Speaker A", relabeled[2].Speaker)
}

func TestLabelSpeakers_MissingTagSharesDefaultKey(t *testing.T) {
	chunks := []model.TranscriptChunk{
		chunk(0, 1, "hello", ""),
		chunk(1, 2, "world", ""),
	}

	relabeled, mapping := LabelSpeakers(chunks)

	require.Len(t, mapping, 1)
	assert.Equal(t, "Speaker A", relabeled[0].Speaker)
	assert.Equal(t, "Speaker A", relabeled[1].Speaker)
}

func TestLabelSpeakers_ManySpeakersFallBackToNumericLabels(t *testing.T) {
	var chunks []model.TranscriptChunk
	for i := 0; i < 28; i++ {
		chunks = append(chunks, chunk(float64(i), float64(i+1), "x", string(rune('a'+i))))
	}

	relabeled, _ := LabelSpeakers(chunks)

	assert.Equal(t, "Speaker A", relabeled[0].Speaker)
	assert.Equal(t, "Speaker Z", relabeled[25].Speaker)
	assert.Equal(t, "Speaker X26", relabeled[26].Speaker)
	assert.Equal(t, "Speaker X27", relabeled[27].Speaker)
}

func TestMergeRuns_ConcatenatesTextAndTranslations(t *testing.T) {
	chunks := []model.TranscriptChunk{
		chunk(0, 1, "你好", "Speaker A"),
		chunk(1, 2, "嗎", "Speaker A"),
		chunk(2, 3, "我很好", "Speaker B"),
	}
	translations := []string{"hello", "there", "I'm fine"}

	dialogue := MergeRuns(chunks, translations)

	require.Len(t, dialogue, 2)
	assert.Equal(t, "Speaker A", dialogue[0].Speaker)
	assert.Equal(t, "你好 嗎", dialogue[0].OriginalText)
	require.NotNil(t, dialogue[0].TranslatedText)
	assert.Equal(t, "hello there", *dialogue[0].TranslatedText)
	assert.Equal(t, "Speaker B", dialogue[1].Speaker)
	assert.Equal(t, "我很好", dialogue[1].OriginalText)
	require.NotNil(t, dialogue[1].TranslatedText)
	assert.Equal(t, "I'm fine", *dialogue[1].TranslatedText)
}

func TestMergeRuns_NilTranslationsLeaveFieldNil(t *testing.T) {
	chunks := []model.TranscriptChunk{
		chunk(0, 1, "one", "Speaker A"),
		chunk(1, 2, "two", "Speaker A"),
	}

	dialogue := MergeRuns(chunks, nil)

	require.Len(t, dialogue, 1)
	assert.Equal(t, "one two", dialogue[0].OriginalText)
	assert.Nil(t, dialogue[0].TranslatedText)
}

func TestMergeRuns_NeverMergesAcrossInterveningSpeaker(t *testing.T) {
	chunks := []model.TranscriptChunk{
		chunk(0, 1, "first", "Speaker A"),
		chunk(1, 2, "interject", "Speaker B"),
		chunk(2, 3, "second", "Speaker A"),
	}

	dialogue := MergeRuns(chunks, nil)

	require.Len(t, dialogue, 3)
	assert.Equal(t, "Speaker A", dialogue[0].Speaker)
	assert.Equal(t, "Speaker B", dialogue[1].Speaker)
	assert.Equal(t, "Speaker A", dialogue[2].Speaker)
	assert.Equal(t, "first", dialogue[0].OriginalText)
	assert.Equal(t, "second", dialogue[2].OriginalText)
}

func TestMergeRuns_PreservesChunkOrder(t *testing.T) {
	chunks := []model.TranscriptChunk{
		chunk(0, 1, "a", "Speaker B"),
		chunk(1, 2, "b", "Speaker A"),
		chunk(2, 3, "c", "Speaker A"),
		chunk(3, 4, "d", "Speaker C"),
	}

	dialogue := MergeRuns(chunks, nil)

	require.Len(t, dialogue, 3)
	assert.Equal(t, []string{"a", "b c", "d"}, []string{
		dialogue[0].OriginalText,
		dialogue[1].OriginalText,
		dialogue[2].OriginalText,
	})
}

func TestMergeRuns_Empty(t *testing.T) {
	assert.Empty(t, MergeRuns(nil, nil))
}
